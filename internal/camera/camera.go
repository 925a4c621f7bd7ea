// Package camera implements a free-flying first person camera.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction selects a movement axis for Move.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera is a yaw/pitch fly camera. Movement follows the view vectors,
// so Forward drifts vertically when pitched.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	UpVec    mgl32.Vec3
	RightVec mgl32.Vec3
	worldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
}

// New returns a camera at pos looking down negative Z.
func New(pos mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         pos,
		worldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              -90,
		Pitch:            0,
		MovementSpeed:    15,
		MouseSensitivity: 0.1,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the camera's view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.UpVec)
}

// Move displaces the camera along a view axis, scaled by the frame's
// delta time.
func (c *Camera) Move(dir Direction, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.RightVec.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.RightVec.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.UpVec.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.UpVec.Mul(velocity))
	}
}

// Look applies a mouse delta to yaw and pitch. Pitch is clamped just
// short of straight up and down to keep the view basis well defined.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.RightVec = c.Front.Cross(c.worldUp).Normalize()
	c.UpVec = c.RightVec.Cross(c.Front).Normalize()
}
