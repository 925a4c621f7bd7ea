package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"infinivox/internal/camera"
)

func processInput(window *glfw.Window, cam *camera.Camera, deltaTime float32) {
	if window.GetKey(glfw.KeyEscape) == glfw.Press {
		window.SetShouldClose(true)
	}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		cam.Move(camera.Forward, deltaTime)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		cam.Move(camera.Backward, deltaTime)
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		cam.Move(camera.Left, deltaTime)
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		cam.Move(camera.Right, deltaTime)
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		cam.Move(camera.Up, deltaTime)
	}
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		cam.Move(camera.Down, deltaTime)
	}
}

// installMouseHandler wires cursor movement into camera look. The first
// event only records the cursor position so the view does not jump.
func installMouseHandler(window *glfw.Window, cam *camera.Camera) {
	var lastX, lastY float64
	first := true
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if first {
			lastX, lastY = xpos, ypos
			first = false
		}
		dx := float32(xpos - lastX)
		dy := float32(lastY - ypos) // reversed: window Y grows downward
		lastX, lastY = xpos, ypos
		cam.Look(dx, dy)
	})
}
