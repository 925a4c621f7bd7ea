// Package culling provides view-frustum visibility tests for axis-
// aligned bounding boxes.
package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a camera. The zero value rejects
// nothing useful; call Update with a projection*view matrix first.
type Frustum struct {
	planes [6]plane
}

// Update extracts the six planes from the combined projection*view
// matrix. Planes are stored in order: left, right, bottom, top, near,
// far, with normals pointing into the frustum.
func (f *Frustum) Update(clip mgl32.Mat4) {
	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	f.planes[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03})
	f.planes[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03})
	f.planes[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13})
	f.planes[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13})
	f.planes[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23})
	f.planes[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23})
}

func normalizePlane(p plane) plane {
	len := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if len == 0 {
		return p
	}
	return plane{p.a / len, p.b / len, p.c / len, p.d / len}
}

// IsBoxVisible reports whether the AABB intersects the frustum. The
// test picks the positive vertex per plane, so boxes partially inside
// count as visible; it can keep a box that is outside but straddles two
// plane half-spaces, which only costs a draw, never drops one.
func (f *Frustum) IsBoxVisible(min, max mgl32.Vec3) bool {
	for i := 0; i < 6; i++ {
		p := f.planes[i]
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
