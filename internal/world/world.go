package world

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/culling"
	"infinivox/internal/profiling"
	"infinivox/internal/voxel"
)

// World owns the loaded chunk set and streams chunks in and out around
// an observer. Chunk residency only changes inside Update; rendering and
// voxel queries see a stable map between updates.
type World struct {
	cfg   Config
	noise *NoiseField

	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk

	lastObserver ChunkCoord
	hasObserver  bool

	streamer *streamer
	frustum  culling.Frustum
}

// NewWorld creates a world with no resident chunks. The first Update
// call loads the area around the observer.
func NewWorld(cfg Config) *World {
	cfg.Normalize()
	w := &World{
		cfg:    cfg,
		noise:  NewNoiseField(cfg.Seed),
		chunks: make(map[ChunkCoord]*Chunk),
	}
	if cfg.AsyncStreaming {
		w.streamer = newStreamer(w)
	}
	return w
}

// Config returns the world's settings.
func (w *World) Config() Config { return w.cfg }

// Close stops background generation workers, if any.
func (w *World) Close() {
	if w.streamer != nil {
		w.streamer.close()
	}
}

// ChunkCoordAt translates a world position to the containing chunk.
func (w *World) ChunkCoordAt(worldX, worldZ int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(worldX, w.cfg.ChunkSize),
		Z: floorDiv(worldZ, w.cfg.ChunkSize),
	}
}

// Update streams chunks around the observer position. Residency only
// changes when the observer has crossed a chunk boundary since the last
// call, or on the very first call.
func (w *World) Update(observer mgl32.Vec3) {
	defer profiling.Track("world.Update")()

	if w.streamer != nil {
		w.streamer.install()
	}

	oc := w.ChunkCoordAt(floorInt(observer.X()), floorInt(observer.Z()))
	if w.hasObserver && oc == w.lastObserver {
		return
	}
	w.lastObserver = oc
	w.hasObserver = true

	w.loadAround(oc)
	w.unloadDistant(oc)
}

// WaitStreaming blocks until every queued chunk has been generated and
// installed. It is a no-op for synchronous worlds.
func (w *World) WaitStreaming() {
	if w.streamer == nil {
		return
	}
	w.streamer.wait()
}

func (w *World) loadAround(center ChunkCoord) {
	r := w.cfg.RenderDistance
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if w.streamer != nil {
				w.streamer.request(coord)
				continue
			}
			w.GetOrCreateChunk(coord)
		}
	}
}

func (w *World) unloadDistant(center ChunkCoord) {
	limit := w.cfg.RenderDistance + w.cfg.UnloadMargin
	w.mu.Lock()
	defer w.mu.Unlock()
	for coord := range w.chunks {
		if chebyshev(coord, center) > limit {
			delete(w.chunks, coord)
		}
	}
}

func chebyshev(a, b ChunkCoord) int {
	dx := abs(a.X - b.X)
	dz := abs(a.Z - b.Z)
	if dx > dz {
		return dx
	}
	return dz
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

// GetOrCreateChunk returns the chunk at coord, generating it on the
// spot if it is not resident. Freshly generated chunks dirty their four
// axis neighbours so border faces get rebuilt.
func (w *World) GetOrCreateChunk(coord ChunkCoord) *Chunk {
	w.mu.RLock()
	c, ok := w.chunks[coord]
	w.mu.RUnlock()
	if ok {
		return c
	}

	c = NewChunk(coord, w.cfg, w.noise, w)
	w.installChunk(c)
	return c
}

// installChunk adds a generated chunk to the resident set. If a chunk
// already occupies the coordinate it wins and the new one is dropped.
func (w *World) installChunk(c *Chunk) *Chunk {
	w.mu.Lock()
	if existing, ok := w.chunks[c.coord]; ok {
		w.mu.Unlock()
		return existing
	}
	w.chunks[c.coord] = c
	w.mu.Unlock()

	w.markNeighborsDirty(c.coord)
	return c
}

// ChunkAt returns the resident chunk at coord, or nil.
func (w *World) ChunkAt(coord ChunkCoord) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[coord]
}

// LoadedChunkCount returns the number of resident chunks.
func (w *World) LoadedChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// ChunkCoords returns the coordinates of all resident chunks.
func (w *World) ChunkCoords() []ChunkCoord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	coords := make([]ChunkCoord, 0, len(w.chunks))
	for c := range w.chunks {
		coords = append(coords, c)
	}
	return coords
}

// VoxelTypeAt returns the voxel at a world position. Positions outside
// the vertical range or in unloaded chunks read as Air.
func (w *World) VoxelTypeAt(worldX, worldY, worldZ int) voxel.Type {
	if worldY < 0 || worldY >= w.cfg.ChunkHeight {
		return voxel.Air
	}
	c := w.ChunkAt(w.ChunkCoordAt(worldX, worldZ))
	if c == nil {
		return voxel.Air
	}
	return c.LocalVoxel(mod(worldX, w.cfg.ChunkSize), worldY, mod(worldZ, w.cfg.ChunkSize))
}

// IsVoxelSolidAt reports whether the voxel at a world position blocks
// movement. Unloaded space reads as empty.
func (w *World) IsVoxelSolidAt(worldX, worldY, worldZ int) bool {
	return w.VoxelTypeAt(worldX, worldY, worldZ).IsSolid()
}

// SetVoxel writes a voxel at a world position. Writes into unloaded
// chunks or outside the vertical range are ignored. The containing
// chunk and its four axis neighbours are marked for remeshing, since a
// border edit changes which neighbour faces are exposed.
func (w *World) SetVoxel(worldX, worldY, worldZ int, t voxel.Type) {
	if worldY < 0 || worldY >= w.cfg.ChunkHeight {
		return
	}
	coord := w.ChunkCoordAt(worldX, worldZ)
	c := w.ChunkAt(coord)
	if c == nil {
		return
	}
	c.SetVoxel(mod(worldX, w.cfg.ChunkSize), worldY, mod(worldZ, w.cfg.ChunkSize), t)
	w.markNeighborsDirty(coord)
}

func (w *World) markNeighborsDirty(coord ChunkCoord) {
	neighbors := [4]ChunkCoord{
		{coord.X + 1, coord.Z},
		{coord.X - 1, coord.Z},
		{coord.X, coord.Z + 1},
		{coord.X, coord.Z - 1},
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, n := range neighbors {
		if c, ok := w.chunks[n]; ok {
			c.MarkDirty()
		}
	}
}

// Render hands every frustum-visible chunk's mesh to the sink and
// returns how many chunks were drawn. Meshes are rebuilt lazily as they
// are encountered.
func (w *World) Render(viewProj mgl32.Mat4, sink RenderSink) int {
	defer profiling.Track("world.Render")()

	w.frustum.Update(viewProj)

	w.mu.RLock()
	resident := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		resident = append(resident, c)
	}
	w.mu.RUnlock()

	size := float32(w.cfg.ChunkSize)
	height := float32(w.cfg.ChunkHeight)
	drawn := 0
	for _, c := range resident {
		min := c.WorldPosition()
		max := mgl32.Vec3{min.X() + size, height, min.Z() + size}
		if !w.frustum.IsBoxVisible(min, max) {
			continue
		}
		verts := c.RenderData()
		if len(verts) == 0 {
			continue
		}
		sink.DrawChunk(c.coord, verts)
		drawn++
	}
	return drawn
}
