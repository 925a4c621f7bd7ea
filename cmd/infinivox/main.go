package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/camera"
	"infinivox/internal/config"
	"infinivox/internal/graphics"
	"infinivox/internal/profiling"
	"infinivox/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(settings.Window)
	if err != nil {
		log.Fatalf("window: %v", err)
	}

	renderer, err := graphics.NewChunkRenderer()
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer renderer.Dispose()

	w := world.NewWorld(settings.World)
	defer w.Close()

	spawn := mgl32.Vec3{8, 40, 8}
	cam := camera.New(spawn)
	installMouseHandler(window, cam)

	// Load the spawn area before the first frame.
	w.Update(cam.Position)
	w.WaitStreaming()
	log.Printf("world ready: %d chunks resident", w.LoadedChunkCount())

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	aspect := float32(settings.Window.Width) / float32(settings.Window.Height)
	projection := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 1000)

	lastFrame := glfw.GetTime()
	lastReport := lastFrame
	frames := 0

	for !window.ShouldClose() {
		now := glfw.GetTime()
		deltaTime := float32(now - lastFrame)
		lastFrame = now

		profiling.ResetFrame()
		processInput(window, cam, deltaTime)

		w.Update(cam.Position)

		gl.ClearColor(0.5, 0.8, 1.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		view := cam.ViewMatrix()
		lightPos := cam.Position.Add(mgl32.Vec3{100, 100, 100})
		renderer.Begin(view, projection, lightPos)
		drawn := w.Render(projection.Mul4(view), renderer)
		renderer.Prune(w.ChunkCoords())

		window.SwapBuffers()
		glfw.PollEvents()

		frames++
		if now-lastReport >= 1.0 {
			log.Printf("fps=%d chunks=%d drawn=%d", frames, w.LoadedChunkCount(), drawn)
			frames = 0
			lastReport = now
		}
		if deltaTime > 0.05 {
			log.Printf("slow frame %.1fms: %s", deltaTime*1000, profiling.TopN(3))
		}
	}
}
