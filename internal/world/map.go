package world

import (
	"fmt"
	"sort"
)

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainField    Terrain = iota // Open ground: grain, berries, small game
	TerrainForest                  // Timber, berries, large game
	TerrainMountain                // Stone
	TerrainWater                   // Impassable; never a colony site
)

// NumTerrains is the size of the closed terrain set.
const NumTerrains = 4

// AllTerrains lists every terrain in declaration order.
var AllTerrains = [NumTerrains]Terrain{TerrainField, TerrainForest, TerrainMountain, TerrainWater}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainField:
		return "field"
	case TerrainForest:
		return "forest"
	case TerrainMountain:
		return "mountain"
	case TerrainWater:
		return "water"
	default:
		return "unknown"
	}
}

func (t Terrain) String() string { return TerrainName(t) }

// ParseTerrain is the inverse of TerrainName.
func ParseTerrain(name string) (Terrain, error) {
	for _, t := range AllTerrains {
		if TerrainName(t) == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

func (t Terrain) MarshalText() ([]byte, error) { return []byte(TerrainName(t)), nil }

func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Tile is a single hex on the colony map.
type Tile struct {
	Coord    HexCoord `json:"coord"`
	Terrain  Terrain  `json:"terrain"`
	Revealed bool     `json:"revealed"`
}

// TerrainCounts holds one count per terrain type.
type TerrainCounts [NumTerrains]int

// Total returns the sum over all terrains.
func (c TerrainCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Map holds the hex tiles of one generated region.
// Tile composition and terrain are fixed after generation; only Revealed changes.
type Map struct {
	Tiles  map[HexCoord]*Tile `json:"-"`
	Radius int                `json:"radius"`

	Seed          int64    `json:"seed"`           // Authoritative seed that produced the tiles
	RequestedSeed int64    `json:"requested_seed"` // Seed the caller asked for (drawn at random when 0)
	Attempts      int      `json:"attempts"`       // Candidates generated before acceptance
	Fallback      bool     `json:"fallback"`       // True when rejection sampling was exhausted
	Colony        HexCoord `json:"colony"`

	counts   TerrainCounts // All tiles, by terrain
	revealed TerrainCounts // Revealed tiles, by terrain; maintained on every reveal
}

// NewMap creates an empty map with the given radius.
// A hex region of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func NewMap(radius int) *Map {
	return &Map{
		Tiles:  make(map[HexCoord]*Tile, 1+3*radius*(radius+1)),
		Radius: radius,
	}
}

// Get returns the tile at the given coordinate, or nil if out of bounds.
func (m *Map) Get(coord HexCoord) *Tile {
	return m.Tiles[coord]
}

// Set places a tile, replacing any tile already at its coordinate.
func (m *Map) Set(tile *Tile) {
	if old := m.Tiles[tile.Coord]; old != nil {
		m.counts[old.Terrain]--
		if old.Revealed {
			m.revealed[old.Terrain]--
		}
	}
	m.Tiles[tile.Coord] = tile
	m.counts[tile.Terrain]++
	if tile.Revealed {
		m.revealed[tile.Terrain]++
	}
}

// setTerrain changes a tile's terrain while keeping the counters exact.
// Only generation uses it (colony site correction).
func (m *Map) setTerrain(coord HexCoord, t Terrain) {
	tile := m.Tiles[coord]
	if tile == nil || tile.Terrain == t {
		return
	}
	m.counts[tile.Terrain]--
	m.counts[t]++
	if tile.Revealed {
		m.revealed[tile.Terrain]--
		m.revealed[t]++
	}
	tile.Terrain = t
}

// Reveal marks a tile as revealed. Returns true only if the tile exists and
// was hidden; revealed tiles never become hidden again.
func (m *Map) Reveal(coord HexCoord) bool {
	tile := m.Tiles[coord]
	if tile == nil || tile.Revealed {
		return false
	}
	tile.Revealed = true
	m.revealed[tile.Terrain]++
	return true
}

// RevealRadius reveals every tile within radius of center and returns how
// many were newly revealed.
func (m *Map) RevealRadius(center HexCoord, radius int) int {
	n := 0
	for _, c := range Spiral(center, radius) {
		if m.Reveal(c) {
			n++
		}
	}
	return n
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map) InBounds(coord HexCoord) bool {
	return InRadius(HexCoord{}, coord, m.Radius)
}

// HexCount returns the total number of tiles in the map.
func (m *Map) HexCount() int {
	return len(m.Tiles)
}

// Counts returns the terrain distribution over all tiles.
func (m *Map) Counts() TerrainCounts {
	return m.counts
}

// RevealedCounts returns the terrain distribution over revealed tiles.
// Constant time: the counters are maintained on every reveal.
func (m *Map) RevealedCounts() TerrainCounts {
	return m.revealed
}

// RevealedTotal returns how many tiles are revealed.
func (m *Map) RevealedTotal() int {
	return m.revealed.Total()
}

// Recount scans every tile. Used to cross-check the incremental counters.
func (m *Map) Recount() (all, revealed TerrainCounts) {
	for _, t := range m.Tiles {
		all[t.Terrain]++
		if t.Revealed {
			revealed[t.Terrain]++
		}
	}
	return all, revealed
}

// Snapshot returns copies of all tiles sorted by (q, r).
func (m *Map) Snapshot() []Tile {
	out := make([]Tile, 0, len(m.Tiles))
	for _, t := range m.Tiles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Q != out[j].Coord.Q {
			return out[i].Coord.Q < out[j].Coord.Q
		}
		return out[i].Coord.R < out[j].Coord.R
	})
	return out
}

// Stats summarizes the map for the debug readout.
type Stats struct {
	Total    int                  `json:"total"`
	Revealed int                  `json:"revealed"`
	Counts   TerrainCounts        `json:"counts"`
	Percent  [NumTerrains]float64 `json:"percent"`
}

// Stats returns per-terrain counts and percentages.
func (m *Map) Stats() Stats {
	st := Stats{
		Total:    m.HexCount(),
		Revealed: m.RevealedTotal(),
		Counts:   m.counts,
	}
	if st.Total > 0 {
		for i, c := range st.Counts {
			st.Percent[i] = float64(c) * 100 / float64(st.Total)
		}
	}
	return st
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, hexes=%d, seed=%d)", m.Radius, m.HexCount(), m.Seed)
}
