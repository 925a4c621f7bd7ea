package world

// Config carries every tunable the world needs at construction. There is
// no process-wide state; tests run many worlds with different settings
// side by side.
type Config struct {
	// ChunkSize is the horizontal extent (width and depth) of a chunk.
	ChunkSize int `yaml:"chunk_size"`
	// ChunkHeight is the vertical extent of a chunk column.
	ChunkHeight int `yaml:"chunk_height"`
	// RenderDistance is the Chebyshev radius, in chunks, kept resident
	// around the observer.
	RenderDistance int `yaml:"render_distance"`
	// UnloadMargin is added to RenderDistance before a chunk is evicted,
	// preventing load/unload thrashing at the boundary.
	UnloadMargin int `yaml:"unload_margin"`
	// SeaLevel is the world Y below which wet biomes fill with water.
	SeaLevel int `yaml:"sea_level"`
	// Seed drives all noise sampling.
	Seed int64 `yaml:"seed"`
	// AsyncStreaming generates chunk terrain on background workers,
	// installing finished chunks on the next Update.
	AsyncStreaming bool `yaml:"async_streaming"`
}

// DefaultConfig returns the settings the demo app ships with.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      16,
		ChunkHeight:    64,
		RenderDistance: 8,
		UnloadMargin:   2,
		SeaLevel:       15,
		Seed:           12345,
		AsyncStreaming: false,
	}
}

// Normalize clamps settings into workable ranges.
func (c *Config) Normalize() {
	if c.ChunkSize < 4 {
		c.ChunkSize = 4
	}
	if c.ChunkHeight < 8 {
		c.ChunkHeight = 8
	}
	if c.RenderDistance < 1 {
		c.RenderDistance = 1
	}
	if c.RenderDistance > 50 {
		c.RenderDistance = 50
	}
	if c.UnloadMargin < 0 {
		c.UnloadMargin = 0
	}
	if c.SeaLevel < 0 {
		c.SeaLevel = 0
	}
	if c.SeaLevel >= c.ChunkHeight {
		c.SeaLevel = c.ChunkHeight - 1
	}
}
