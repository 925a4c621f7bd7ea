// Package meshing turns voxel grids into interleaved triangle meshes
// using greedy face merging. A slice mask is built per depth layer and
// per face direction; runs of identical voxel types are merged into one
// quad, growing width first and then height.
package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/voxel"
)

// VertexStride is the number of floats per vertex: position, normal,
// color, three each.
const VertexStride = 9

// FloatsPerQuad is the output size of one merged quad (two triangles).
const FloatsPerQuad = 6 * VertexStride

// Grid answers voxel queries in local chunk coordinates. Queries may
// fall one voxel outside the grid bounds; implementations resolve those
// against neighbouring chunks or return Air.
type Grid interface {
	VoxelAt(x, y, z int) voxel.Type
}

// Face shading multipliers. Tops are full brightness, bottoms darkest,
// sides in between, giving cheap directional contrast without lighting.
const (
	shadeTop    = 1.0
	shadeBottom = 0.7
	shadeSide   = 0.85
)

// BuildChunkMesh produces the interleaved vertex data for a grid of the
// given dimensions, offset into world space by origin. Water and air
// are never meshed; faces between a meshable voxel and air or water are
// emitted. Returns an empty (possibly nil) slice for a fully hidden grid.
func BuildChunkMesh(g Grid, sizeX, sizeY, sizeZ int, origin mgl32.Vec3) []float32 {
	m := &mesher{
		grid:   g,
		dims:   [3]int{sizeX, sizeY, sizeZ},
		origin: origin,
	}
	for axis := 0; axis < 3; axis++ {
		m.meshAxis(axis, 1)
		m.meshAxis(axis, -1)
	}
	return m.out
}

type mesher struct {
	grid   Grid
	dims   [3]int
	origin mgl32.Vec3
	mask   []voxel.Type
	out    []float32
}

// meshable reports whether a voxel type produces geometry. Water is
// treated like air so lake beds render instead of water surfaces.
func meshable(t voxel.Type) bool {
	return t != voxel.Air && t != voxel.Water
}

// meshAxis merges faces pointing along one axis and direction. The in-
// plane axes u and v index the slice mask; w is the depth axis.
func (m *mesher) meshAxis(axis, dir int) {
	var u, v, w int
	switch axis {
	case 0:
		u, v, w = 1, 2, 0
	case 1:
		u, v, w = 0, 2, 1
	default:
		u, v, w = 0, 1, 2
	}
	du, dv := m.dims[u], m.dims[v]
	if len(m.mask) < du*dv {
		m.mask = make([]voxel.Type, du*dv)
	}
	mask := m.mask[:du*dv]

	for d := 0; d < m.dims[axis]; d++ {
		for j := 0; j < dv; j++ {
			for i := 0; i < du; i++ {
				var pos, adj [3]int
				pos[u], pos[v], pos[w] = i, j, d
				adj[u], adj[v], adj[w] = i, j, d+dir

				// The underside of the world floor can never be seen.
				if axis == 1 && dir == -1 && pos[1] == 0 {
					mask[j*du+i] = voxel.Air
					continue
				}

				cur := m.grid.VoxelAt(pos[0], pos[1], pos[2])
				next := m.grid.VoxelAt(adj[0], adj[1], adj[2])
				if meshable(cur) && !meshable(next) {
					mask[j*du+i] = cur
				} else {
					mask[j*du+i] = voxel.Air
				}
			}
		}

		for j := 0; j < dv; j++ {
			for i := 0; i < du; {
				t := mask[j*du+i]
				if t == voxel.Air {
					i++
					continue
				}

				width := 1
				for i+width < du && mask[j*du+i+width] == t {
					width++
				}

				height := 1
				for j+height < dv && rowMatches(mask, (j+height)*du+i, width, t) {
					height++
				}

				m.emitQuad(axis, dir, i, j, d, width, height, u, v, w, t)

				for dj := 0; dj < height; dj++ {
					for di := 0; di < width; di++ {
						mask[(j+dj)*du+i+di] = voxel.Air
					}
				}
				i += width
			}
		}
	}
}

func rowMatches(mask []voxel.Type, off, width int, t voxel.Type) bool {
	for k := 0; k < width; k++ {
		if mask[off+k] != t {
			return false
		}
	}
	return true
}

// emitQuad appends one merged quad as two triangles.
func (m *mesher) emitQuad(axis, dir, i, j, d, width, height, u, v, w int, t voxel.Type) {
	shade := float32(shadeSide)
	if axis == 1 {
		if dir > 0 {
			shade = shadeTop
		} else {
			shade = shadeBottom
		}
	}
	color := t.Color().Mul(shade)

	var pos [3]int
	pos[u], pos[v], pos[w] = i, j, d

	faceOffset := 0
	if dir > 0 {
		faceOffset = 1
	}

	var corners [4]mgl32.Vec3
	for c := 0; c < 4; c++ {
		corner := pos
		if c == 1 || c == 2 {
			corner[u] += width
		}
		if c == 2 || c == 3 {
			corner[v] += height
		}
		corner[w] += faceOffset
		corners[c] = mgl32.Vec3{
			float32(corner[0]) + m.origin.X(),
			float32(corner[1]) + m.origin.Y(),
			float32(corner[2]) + m.origin.Z(),
		}
	}

	var normal mgl32.Vec3
	normal[axis] = float32(dir)

	// Counter-clockwise winding as seen from outside the face.
	order := [4]int{0, 1, 2, 3}
	if dir < 0 || axis == 1 {
		order[1], order[3] = order[3], order[1]
	}

	tris := [2][3]int{
		{order[0], order[1], order[2]},
		{order[0], order[2], order[3]},
	}
	for _, tri := range tris {
		for _, c := range tri {
			p := corners[c]
			m.out = append(m.out,
				p.X(), p.Y(), p.Z(),
				normal.X(), normal.Y(), normal.Z(),
				color.X(), color.Y(), color.Z(),
			)
		}
	}
}
