package world

import (
	"infinivox/internal/voxel"
)

// ChunkCoord addresses a chunk column in the XZ plane.
type ChunkCoord struct {
	X, Z int
}

// VoxelSource answers voxel queries in absolute world coordinates. Chunks
// receive it at construction so boundary-face checks can cross into
// neighbouring chunks without holding a reference to the whole World.
type VoxelSource interface {
	VoxelTypeAt(worldX, worldY, worldZ int) voxel.Type
}

// RenderSink consumes the vertex stream of a visible chunk. It is
// responsible for GPU upload and drawing; the world guarantees the stream
// is regenerated only when the chunk's mesh was dirty.
type RenderSink interface {
	DrawChunk(coord ChunkCoord, vertices []float32)
}

// floorDiv divides rounding toward negative infinity, so that negative
// world coordinates map to the correct chunk.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns the non-negative remainder of a/b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
