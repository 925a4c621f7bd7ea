package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/meshing"
	"infinivox/internal/voxel"
)

// Chunk is a fixed-size column of voxels at a chunk coordinate. Voxels
// are stored in a flat slice indexed x-major, then y, then z.
type Chunk struct {
	coord     ChunkCoord
	sizeX     int
	sizeY     int
	sizeZ     int
	voxels    []voxel.Type
	source    VoxelSource
	worldPos  mgl32.Vec3
	mesh      []float32
	meshDirty bool
	meshBuilt bool
}

// NewChunk generates a chunk's terrain for the given coordinate. The
// source answers voxel queries that fall outside this chunk (used by
// meshing at chunk borders).
func NewChunk(coord ChunkCoord, cfg Config, noise *NoiseField, source VoxelSource) *Chunk {
	c := &Chunk{
		coord:     coord,
		sizeX:     cfg.ChunkSize,
		sizeY:     cfg.ChunkHeight,
		sizeZ:     cfg.ChunkSize,
		voxels:    make([]voxel.Type, cfg.ChunkSize*cfg.ChunkHeight*cfg.ChunkSize),
		source:    source,
		worldPos:  mgl32.Vec3{float32(coord.X * cfg.ChunkSize), 0, float32(coord.Z * cfg.ChunkSize)},
		meshDirty: true,
	}
	c.generateTerrain(cfg, noise)
	return c
}

// Coord returns the chunk's coordinate.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// WorldPosition returns the world-space origin of the chunk's minimum corner.
func (c *Chunk) WorldPosition() mgl32.Vec3 { return c.worldPos }

func (c *Chunk) index(x, y, z int) int {
	return x*c.sizeY*c.sizeZ + y*c.sizeZ + z
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.sizeX && y >= 0 && y < c.sizeY && z >= 0 && z < c.sizeZ
}

// VoxelAt returns the voxel at local coordinates. Out-of-bounds queries
// are forwarded to the world through the VoxelSource, so meshing sees
// the neighbouring chunk's voxels across the seam.
func (c *Chunk) VoxelAt(x, y, z int) voxel.Type {
	if c.inBounds(x, y, z) {
		return c.voxels[c.index(x, y, z)]
	}
	if c.source == nil {
		return voxel.Air
	}
	return c.source.VoxelTypeAt(c.coord.X*c.sizeX+x, y, c.coord.Z*c.sizeZ+z)
}

// LocalVoxel reads a voxel without cross-chunk fallback. Out-of-bounds
// returns Air.
func (c *Chunk) LocalVoxel(x, y, z int) voxel.Type {
	if !c.inBounds(x, y, z) {
		return voxel.Air
	}
	return c.voxels[c.index(x, y, z)]
}

// SetVoxel writes a voxel at local coordinates and marks the mesh dirty.
// Out-of-bounds writes are ignored.
func (c *Chunk) SetVoxel(x, y, z int, t voxel.Type) {
	if !c.inBounds(x, y, z) {
		return
	}
	c.voxels[c.index(x, y, z)] = t
	c.meshDirty = true
}

// MarkDirty forces a mesh rebuild on the next RenderData call.
func (c *Chunk) MarkDirty() { c.meshDirty = true }

// MeshDirty reports whether the mesh needs rebuilding.
func (c *Chunk) MeshDirty() bool { return c.meshDirty }

// MeshBuilt reports whether RenderData has ever produced a mesh.
func (c *Chunk) MeshBuilt() bool { return c.meshBuilt }

// RenderData returns the chunk's interleaved vertex data, rebuilding it
// when dirty. The returned slice is owned by the chunk and valid until
// the next rebuild.
func (c *Chunk) RenderData() []float32 {
	if c.meshDirty || !c.meshBuilt {
		c.mesh = meshing.BuildChunkMesh(c, c.sizeX, c.sizeY, c.sizeZ, c.worldPos)
		c.meshDirty = false
		c.meshBuilt = true
	}
	return c.mesh
}

func (c *Chunk) generateTerrain(cfg Config, noise *NoiseField) {
	for x := 0; x < c.sizeX; x++ {
		for z := 0; z < c.sizeZ; z++ {
			worldX := c.coord.X*c.sizeX + x
			worldZ := c.coord.Z*c.sizeZ + z

			biome := SelectBiome(noise, worldX, worldZ)

			heightNoise := noise.Sample(float64(worldX)*heightFreq, float64(worldZ)*heightFreq)
			height := biome.BaseHeight + int(float64(biome.Variation)*heightNoise)
			if height < 1 {
				height = 1
			}
			if height > c.sizeY-1 {
				height = c.sizeY - 1
			}

			for y := 0; y < c.sizeY; y++ {
				var t voxel.Type
				switch {
				case y < height-5:
					t = biome.Filler
				case y < height-1:
					t = biome.Subsurface
				case y < height:
					t = biome.Surface
				case y < cfg.SeaLevel && biome.Surface != voxel.Sand:
					t = voxel.Water
				default:
					t = voxel.Air
				}
				c.voxels[c.index(x, y, z)] = t
			}

			c.placeTree(noise, biome, x, z, worldX, worldZ, height)
		}
	}
}

// placeTree grows a log trunk with a diamond leaf canopy on forested
// columns. The canopy is clipped at chunk borders; trees never span
// chunks.
func (c *Chunk) placeTree(noise *NoiseField, biome *Biome, x, z, worldX, worldZ, height int) {
	if biome.Name != "Mountains" && biome.Name != "Forest" {
		return
	}
	if height >= c.sizeY-6 {
		return
	}
	treeNoise := noise.Sample(float64(worldX)*treeFreq, float64(worldZ)*treeFreq)
	if treeNoise <= treeThreshold {
		return
	}
	for t := 0; t < 4; t++ {
		c.voxels[c.index(x, height+t, z)] = voxel.Log
	}
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			for dy := 3; dy <= 5; dy++ {
				if x+dx < 0 || x+dx >= c.sizeX || z+dz < 0 || z+dz >= c.sizeZ {
					continue
				}
				if abs(dx)+abs(dz)+(dy-3) < 5 {
					c.voxels[c.index(x+dx, height+dy, z+dz)] = voxel.Leaves
				}
			}
		}
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
