package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Type identifies the material a voxel is made of.
type Type uint8

const (
	Air Type = iota
	Stone
	Grass
	Dirt
	Sand
	Water
	Snow
	Log
	Leaves
)

var names = [...]string{
	Air:    "air",
	Stone:  "stone",
	Grass:  "grass",
	Dirt:   "dirt",
	Sand:   "sand",
	Water:  "water",
	Snow:   "snow",
	Log:    "log",
	Leaves: "leaves",
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// IsSolid reports whether the voxel occupies space. Everything except air
// counts as solid, water included.
func (t Type) IsSolid() bool {
	return t != Air
}

// Color returns the base render color for the voxel type. Orientation
// shading is applied later by the mesher.
func (t Type) Color() mgl32.Vec3 {
	switch t {
	case Stone:
		return mgl32.Vec3{0.5, 0.5, 0.5}
	case Grass:
		return mgl32.Vec3{0.0, 0.8, 0.0}
	case Dirt:
		return mgl32.Vec3{0.6, 0.4, 0.2}
	case Sand:
		return mgl32.Vec3{0.9, 0.8, 0.5}
	case Water:
		return mgl32.Vec3{0.2, 0.4, 0.8}
	case Snow:
		return mgl32.Vec3{0.95, 0.98, 1.0}
	case Log:
		return mgl32.Vec3{0.55, 0.27, 0.07}
	case Leaves:
		return mgl32.Vec3{0.13, 0.55, 0.13}
	default:
		return mgl32.Vec3{1.0, 1.0, 1.0}
	}
}
