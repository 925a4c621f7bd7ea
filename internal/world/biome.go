package world

import "infinivox/internal/voxel"

// Biome describes the surface layering and relief of a terrain region.
type Biome struct {
	Name       string
	Surface    voxel.Type
	Subsurface voxel.Type
	Filler     voxel.Type
	BaseHeight int
	Variation  int
}

// Biomes is the fixed biome table; SelectBiome indexes into it.
var Biomes = []Biome{
	{Name: "Plains", Surface: voxel.Grass, Subsurface: voxel.Dirt, Filler: voxel.Stone, BaseHeight: 20, Variation: 4},
	{Name: "Mountains", Surface: voxel.Snow, Subsurface: voxel.Grass, Filler: voxel.Stone, BaseHeight: 32, Variation: 18},
	{Name: "Desert", Surface: voxel.Sand, Subsurface: voxel.Sand, Filler: voxel.Stone, BaseHeight: 18, Variation: 2},
	{Name: "Forest", Surface: voxel.Grass, Subsurface: voxel.Dirt, Filler: voxel.Stone, BaseHeight: 22, Variation: 5},
}

// Sampling frequencies for the generation noise fields.
const (
	biomeFreq     = 0.001
	heightFreq    = 0.01
	treeFreq      = 0.1
	treeThreshold = 0.6
)

// SelectBiome maps a world column to a biome using very low frequency
// noise, so regions span on the order of a thousand voxels.
func SelectBiome(n *NoiseField, worldX, worldZ int) *Biome {
	v := n.Sample(float64(worldX)*biomeFreq, float64(worldZ)*biomeFreq) // [-1,1]
	idx := int((v + 1) * 0.5 * float64(len(Biomes)))
	idx %= len(Biomes)
	return &Biomes[idx]
}
