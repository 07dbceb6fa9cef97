// Place names for landmarks the colony discovers.
package world

// Name syllables combine into names like "Ashford" or "Stonehollow".
var (
	namePrefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	nameSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}
)

// PlaceName returns the name of the landmark at a coordinate. Names depend
// only on the map seed and the coordinate, so a regenerated map keeps them.
func PlaceName(seed int64, c HexCoord) string {
	p := int(HashNoise(seed+4000, c.Q, c.R) * float64(len(namePrefixes)))
	s := int(HashNoise(seed+5000, c.Q, c.R) * float64(len(nameSuffixes)))
	return namePrefixes[p] + nameSuffixes[s]
}

// Landmark describes a tile's terrain the way the chronicle reports discoveries.
func Landmark(t Terrain) string {
	switch t {
	case TerrainWater:
		return "a great water"
	case TerrainMountain:
		return "towering peaks"
	case TerrainForest:
		return "dense woodlands"
	case TerrainField:
		return "fertile fields"
	default:
		return "unknown lands"
	}
}
