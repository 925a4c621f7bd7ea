package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/voxel"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(testConfig())
	t.Cleanup(w.Close)
	return w
}

func TestUpdateLoadsRadiusAroundObserver(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})
	r := w.cfg.RenderDistance
	want := (2*r + 1) * (2*r + 1)
	if got := w.LoadedChunkCount(); got != want {
		t.Fatalf("resident chunks after first update: got %d, want %d", got, want)
	}
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if w.ChunkAt(ChunkCoord{dx, dz}) == nil {
				t.Fatalf("chunk (%d,%d) not resident", dx, dz)
			}
		}
	}
}

func TestUpdateThrottledWithinChunk(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})
	before := w.LoadedChunkCount()

	// Moving inside the same chunk must not change residency.
	w.Update(mgl32.Vec3{5, 30, 5})
	if got := w.LoadedChunkCount(); got != before {
		t.Fatalf("residency changed within a chunk: %d -> %d", before, got)
	}
}

func TestUpdateLoadsOnBoundaryCrossing(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})
	r := w.cfg.RenderDistance

	// Cross into the next chunk along +X.
	w.Update(mgl32.Vec3{float32(w.cfg.ChunkSize), 30, 0})
	if w.ChunkAt(ChunkCoord{r + 1, 0}) == nil {
		t.Fatal("crossing a boundary did not load the leading edge")
	}
}

func TestUnloadKeepsMargin(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})

	// Jump far away; everything around the old position is past the
	// unload limit.
	far := float32((w.cfg.RenderDistance + w.cfg.UnloadMargin + 5) * w.cfg.ChunkSize)
	w.Update(mgl32.Vec3{far, 30, far})

	limit := w.cfg.RenderDistance + w.cfg.UnloadMargin
	center := w.ChunkCoordAt(int(far), int(far))
	for _, coord := range w.ChunkCoords() {
		if chebyshev(coord, center) > limit {
			t.Fatalf("chunk %v resident beyond unload limit %d", coord, limit)
		}
	}
	if w.ChunkAt(ChunkCoord{0, 0}) != nil {
		t.Fatal("origin chunk survived a far teleport")
	}
}

func TestUnloadMarginPreventsThrashing(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})
	r := w.cfg.RenderDistance

	// One chunk step: the trailing edge is outside the load radius but
	// inside the margin, so it stays.
	w.Update(mgl32.Vec3{float32(w.cfg.ChunkSize), 30, 0})
	if w.ChunkAt(ChunkCoord{-r, 0}) == nil {
		t.Fatal("trailing chunk inside unload margin was evicted")
	}
}

func TestVoxelQueriesNeutralValues(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})

	if v := w.VoxelTypeAt(0, -1, 0); v != voxel.Air {
		t.Errorf("below world: got %v, want Air", v)
	}
	if v := w.VoxelTypeAt(0, w.cfg.ChunkHeight, 0); v != voxel.Air {
		t.Errorf("above world: got %v, want Air", v)
	}
	farAway := (w.cfg.RenderDistance + 10) * w.cfg.ChunkSize
	if v := w.VoxelTypeAt(farAway, 5, farAway); v != voxel.Air {
		t.Errorf("unloaded chunk: got %v, want Air", v)
	}
	if w.IsVoxelSolidAt(farAway, 5, farAway) {
		t.Error("unloaded chunk reported solid")
	}
}

func TestSetVoxelRoundTripAndDirtying(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})

	// Build meshes so the dirty flags start clean.
	target := ChunkCoord{0, 0}
	chunks := []*Chunk{
		w.ChunkAt(target),
		w.ChunkAt(ChunkCoord{1, 0}),
		w.ChunkAt(ChunkCoord{-1, 0}),
		w.ChunkAt(ChunkCoord{0, 1}),
		w.ChunkAt(ChunkCoord{0, -1}),
	}
	for _, c := range chunks {
		c.RenderData()
	}

	w.SetVoxel(3, 10, 3, voxel.Snow)
	if v := w.VoxelTypeAt(3, 10, 3); v != voxel.Snow {
		t.Fatalf("SetVoxel round trip: got %v, want Snow", v)
	}
	for i, c := range chunks {
		if !c.MeshDirty() {
			t.Errorf("chunk %d (%v) not marked dirty after edit", i, c.Coord())
		}
	}
}

func TestSetVoxelNegativeCoordinates(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})

	w.SetVoxel(-1, 10, -1, voxel.Log)
	if v := w.VoxelTypeAt(-1, 10, -1); v != voxel.Log {
		t.Fatalf("negative coordinate round trip: got %v, want Log", v)
	}
	// The write landed in chunk (-1,-1), local (size-1, size-1).
	c := w.ChunkAt(ChunkCoord{-1, -1})
	if v := c.LocalVoxel(w.cfg.ChunkSize-1, 10, w.cfg.ChunkSize-1); v != voxel.Log {
		t.Fatalf("write landed at wrong local position: got %v", v)
	}
}

func TestSetVoxelUnloadedIgnored(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})
	far := (w.cfg.RenderDistance + 10) * w.cfg.ChunkSize
	w.SetVoxel(far, 10, far, voxel.Stone)
	if w.ChunkAt(w.ChunkCoordAt(far, far)) != nil {
		t.Fatal("write into unloaded space created a chunk")
	}
}

type collectingSink struct {
	coords []ChunkCoord
	verts  map[ChunkCoord]int
}

func (s *collectingSink) DrawChunk(coord ChunkCoord, vertices []float32) {
	if s.verts == nil {
		s.verts = make(map[ChunkCoord]int)
	}
	s.coords = append(s.coords, coord)
	s.verts[coord] = len(vertices)
}

func TestRenderCullsBehindCamera(t *testing.T) {
	w := newTestWorld(t)
	w.Update(mgl32.Vec3{0, 30, 0})

	proj := mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{8, 30, 8}, mgl32.Vec3{8, 30, -100}, mgl32.Vec3{0, 1, 0})

	sink := &collectingSink{}
	drawn := w.Render(proj.Mul4(view), sink)
	if drawn == 0 {
		t.Fatal("nothing drawn looking into loaded terrain")
	}
	if drawn != len(sink.coords) {
		t.Fatalf("drawn count %d != sink calls %d", drawn, len(sink.coords))
	}
	if drawn == w.LoadedChunkCount() {
		t.Fatal("no chunks culled with half the world behind the camera")
	}
	for coord, n := range sink.verts {
		if n == 0 {
			t.Errorf("chunk %v drawn with empty mesh", coord)
		}
		// Chunks fully behind the near plane must not be drawn. The
		// camera sits at z=8 in chunk (0,0), so chunks with Z >= 1
		// start at z=16, well behind it.
		if coord.Z >= 1 {
			t.Errorf("chunk %v behind the camera was drawn", coord)
		}
	}
}

func TestAsyncStreamingMatchesSync(t *testing.T) {
	cfg := testConfig()
	sync := NewWorld(cfg)
	defer sync.Close()

	cfg.AsyncStreaming = true
	async := NewWorld(cfg)
	defer async.Close()

	pos := mgl32.Vec3{0, 30, 0}
	sync.Update(pos)
	async.Update(pos)
	async.WaitStreaming()
	async.Update(pos) // install any chunks finished after the wait

	if got, want := async.LoadedChunkCount(), sync.LoadedChunkCount(); got != want {
		t.Fatalf("async resident %d, sync resident %d", got, want)
	}
	for _, coord := range sync.ChunkCoords() {
		a := async.ChunkAt(coord)
		s := sync.ChunkAt(coord)
		if a == nil {
			t.Fatalf("chunk %v missing from async world", coord)
		}
		for i := range s.voxels {
			if a.voxels[i] != s.voxels[i] {
				t.Fatalf("chunk %v voxel %d differs between sync and async generation", coord, i)
			}
		}
	}
}
