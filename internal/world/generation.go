// Map generation: seeded terrain noise, ratio validation by rejection
// sampling, colony site selection, and a guaranteed-valid fallback map.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseKind selects the terrain noise source.
type NoiseKind string

const (
	NoiseHash    NoiseKind = "hash"    // Per-tile seeded hash, bucketed by threshold
	NoiseSimplex NoiseKind = "simplex" // Octave simplex noise, bucketed by rank
)

// Thresholds are cumulative cut points on a [0,1) noise value:
// below Water is water, below Mountain is mountain, below Forest is forest,
// and everything above is field.
type Thresholds struct {
	Water    float64 `yaml:"water"`
	Mountain float64 `yaml:"mountain"`
	Forest   float64 `yaml:"forest"`
}

// Bounds are the acceptable terrain proportions of a playable map.
type Bounds struct {
	WaterMin    float64 `yaml:"water_min"`
	WaterMax    float64 `yaml:"water_max"`
	FieldMin    float64 `yaml:"field_min"`
	ForestMin   float64 `yaml:"forest_min"`
	MountainMin float64 `yaml:"mountain_min"`
}

// DefaultBounds returns the playable-map ratio bounds.
func DefaultBounds() Bounds {
	return Bounds{
		WaterMin:    0.05,
		WaterMax:    0.20,
		FieldMin:    0.25,
		ForestMin:   0.20,
		MountainMin: 0.10,
	}
}

// Check reports whether the counts satisfy the bounds. Every terrain must
// also be present at least once.
func (b Bounds) Check(c TerrainCounts) bool {
	total := c.Total()
	if total == 0 {
		return false
	}
	for _, n := range c {
		if n == 0 {
			return false
		}
	}
	pct := func(t Terrain) float64 { return float64(c[t]) / float64(total) }

	water := pct(TerrainWater)
	return water >= b.WaterMin &&
		water <= b.WaterMax &&
		pct(TerrainField) >= b.FieldMin &&
		pct(TerrainForest) >= b.ForestMin &&
		pct(TerrainMountain) >= b.MountainMin
}

// Validate rejects bounds that no map could satisfy.
func (b Bounds) Validate() error {
	if b.WaterMin < 0 || b.WaterMax > 1 || b.WaterMin > b.WaterMax {
		return fmt.Errorf("water bounds [%.2f, %.2f] invalid", b.WaterMin, b.WaterMax)
	}
	if b.FieldMin < 0 || b.ForestMin < 0 || b.MountainMin < 0 {
		return fmt.Errorf("terrain minimums must be non-negative")
	}
	// The fallback map targets the middle of the water band and one tile
	// above each minimum; leave room for rounding.
	need := (b.WaterMin+b.WaterMax)/2 + b.FieldMin + b.ForestMin + b.MountainMin
	if need > 0.9 {
		return fmt.Errorf("terrain bounds leave no room (need %.2f of the map)", need)
	}
	return nil
}

// GenConfig holds map generation parameters.
type GenConfig struct {
	Radius       int        `yaml:"radius"`        // Hex radius of the region (7 → 169 tiles)
	Seed         int64      `yaml:"seed"`          // Requested seed (0 = random)
	Noise        NoiseKind  `yaml:"noise"`         // Terrain noise source
	Thresholds   Thresholds `yaml:"thresholds"`    // Bucket cut points
	MutationRate float64    `yaml:"mutation_rate"` // Fraction of land turned to mountain in the secondary pass
	ClumpChance  float64    `yaml:"clump_chance"`  // Chance a tile copies its coarse cell's value (hash noise only)
	MaxAttempts  int        `yaml:"max_attempts"`  // Rejection sampling budget
	Bounds       Bounds     `yaml:"bounds"`        // Acceptable terrain proportions
}

// MinRadius is the smallest region whose tile count can satisfy the bounds.
const MinRadius = 3

// Validate rejects configurations the generator cannot honor.
func (c GenConfig) Validate() error {
	if c.Radius < MinRadius {
		return fmt.Errorf("radius %d below minimum %d", c.Radius, MinRadius)
	}
	switch c.Noise {
	case NoiseHash, NoiseSimplex:
	default:
		return fmt.Errorf("unknown noise kind %q", c.Noise)
	}
	th := c.Thresholds
	if th.Water < 0 || th.Water > th.Mountain || th.Mountain > th.Forest || th.Forest > 1 {
		return fmt.Errorf("thresholds must satisfy 0 <= water <= mountain <= forest <= 1, got %+v", th)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 || c.ClumpChance < 0 || c.ClumpChance > 1 {
		return fmt.Errorf("mutation rate and clump chance must be in [0, 1]")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1")
	}
	return c.Bounds.Validate()
}

// DefaultGenConfig returns the standard colony map configuration.
// Thresholds were tuned for radius 7; wider regions may need retuning.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius: 7,
		Seed:   0,
		Noise:  NoiseHash,
		Thresholds: Thresholds{
			Water:    0.12,
			Mountain: 0.30,
			Forest:   0.60,
		},
		MutationRate: 0.04,
		ClumpChance:  0.5,
		MaxAttempts:  100,
		Bounds:       DefaultBounds(),
	}
}

// Generate produces a validated map. A zero seed draws one at random.
//
// Candidates are generated from seeds derived from the requested one (the
// first candidate uses the requested seed itself) until one satisfies the
// bounds. The returned map's Seed is the accepted candidate's seed and is
// authoritative: Generate with that seed reproduces the same map on the
// first attempt. If the budget runs out, a deterministic fallback map built
// from the requested seed is returned instead.
func Generate(cfg GenConfig) *Map {
	requested := cfg.Seed
	if requested == 0 {
		requested = rand.Int63n(1_000_000) + 1
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		seed := candidateSeed(requested, attempt)
		m := generateCandidate(cfg, seed)
		if !cfg.Bounds.Check(m.Counts()) {
			slog.Debug("map candidate rejected", "seed", seed, "attempt", attempt+1)
			continue
		}
		m.Seed = seed
		m.RequestedSeed = requested
		m.Attempts = attempt + 1
		placeColony(m)
		return m
	}

	slog.Warn("map generation exhausted attempt budget, using fallback",
		"requested_seed", requested,
		"attempts", attempts,
	)
	m := fallbackMap(cfg, requested)
	m.Seed = requested
	m.RequestedSeed = requested
	m.Attempts = attempts
	m.Fallback = true
	placeColony(m)
	if !cfg.Bounds.Check(m.Counts()) {
		panic(fmt.Sprintf("world: fallback map violates terrain bounds: %v", m.Counts()))
	}
	return m
}

// candidateSeed returns the seed for a given attempt. Attempt 0 is the
// requested seed; later attempts are scrambled from it.
func candidateSeed(requested int64, attempt int) int64 {
	if attempt == 0 {
		return requested
	}
	s := int64(fmix64(uint64(requested)+uint64(attempt)*0x9E3779B97F4A7C15) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// generateCandidate assigns terrain to every tile of the region.
func generateCandidate(cfg GenConfig, seed int64) *Map {
	m := NewMap(cfg.Radius)
	coords := Spiral(HexCoord{}, cfg.Radius)

	var terrain map[HexCoord]Terrain
	switch cfg.Noise {
	case NoiseSimplex:
		terrain = simplexTerrain(coords, seed, cfg.Thresholds)
	default:
		terrain = hashTerrain(coords, seed, cfg)
	}

	for _, c := range coords {
		m.Set(&Tile{Coord: c, Terrain: terrain[c]})
	}
	return m
}

// hashTerrain buckets a per-tile hash value. Half the tiles (by default)
// take their coarse 2×2 cell's value instead of their own, which clumps
// terrain while keeping the value uniformly distributed.
func hashTerrain(coords []HexCoord, seed int64, cfg GenConfig) map[HexCoord]Terrain {
	out := make(map[HexCoord]Terrain, len(coords))
	for _, c := range coords {
		v := HashNoise(seed, c.Q, c.R)
		if HashNoise(seed+1000, c.Q, c.R) < cfg.ClumpChance {
			v = HashNoise(seed+2000, floorDiv(c.Q, 2), floorDiv(c.R, 2))
		}
		t := bucket(v, cfg.Thresholds)

		// Secondary pass: a small share of land becomes mountain.
		if t != TerrainWater && HashNoise(seed+3000, c.Q, c.R) < cfg.MutationRate {
			t = TerrainMountain
		}
		out[c] = t
	}
	return out
}

// simplexTerrain samples octave simplex noise and buckets tiles by rank, so
// each terrain's share equals the width of its threshold band.
func simplexTerrain(coords []HexCoord, seed int64, th Thresholds) map[HexCoord]Terrain {
	noise := opensimplex.NewNormalized(seed)

	type sample struct {
		coord HexCoord
		value float64
	}
	samples := make([]sample, len(coords))
	for i, c := range coords {
		// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
		x := float64(c.Q) + float64(c.R)*0.5
		y := float64(c.R) * math.Sqrt(3.0) / 2.0
		samples[i] = sample{coord: c, value: octaveNoise(noise, x, y, 3, 0.18, 0.5)}
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].value < samples[j].value
	})

	out := make(map[HexCoord]Terrain, len(coords))
	n := float64(len(samples))
	for rank, s := range samples {
		out[s.coord] = bucket(float64(rank)/n, th)
	}
	return out
}

func bucket(v float64, th Thresholds) Terrain {
	switch {
	case v < th.Water:
		return TerrainWater
	case v < th.Mountain:
		return TerrainMountain
	case v < th.Forest:
		return TerrainForest
	default:
		return TerrainField
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// placeColony picks the colony site: the origin when it is land, otherwise
// the nearest land tile searching outward ring by ring. A site that is still
// water is forced to field.
func placeColony(m *Map) {
	origin := HexCoord{}
	site := origin
	found := false
	for k := 0; k <= m.Radius && !found; k++ {
		for _, c := range Ring(origin, k) {
			t := m.Get(c)
			if t != nil && t.Terrain != TerrainWater {
				site = c
				found = true
				break
			}
		}
	}
	m.Colony = site
	if t := m.Get(site); t != nil && t.Terrain == TerrainWater {
		m.setTerrain(site, TerrainField)
	}
}

// fallbackMap builds a map that satisfies the bounds by construction.
// Outer rings take the water quota, then mountain and forest; the interior
// is field. Within a ring, tiles are ordered by a seeded hash.
func fallbackMap(cfg GenConfig, seed int64) *Map {
	coords := Spiral(HexCoord{}, cfg.Radius)
	origin := HexCoord{}
	sort.SliceStable(coords, func(i, j int) bool {
		di, dj := Distance(coords[i], origin), Distance(coords[j], origin)
		if di != dj {
			return di > dj
		}
		return HashNoise(seed, coords[i].Q, coords[i].R) < HashNoise(seed, coords[j].Q, coords[j].R)
	})

	n := len(coords)
	b := cfg.Bounds
	quota := []struct {
		terrain Terrain
		count   int
	}{
		{TerrainWater, ceilShare(n, (b.WaterMin+b.WaterMax)/2)},
		{TerrainMountain, ceilShare(n, b.MountainMin) + 1},
		{TerrainForest, ceilShare(n, b.ForestMin) + 1},
	}

	m := NewMap(cfg.Radius)
	i := 0
	for _, q := range quota {
		for k := 0; k < q.count && i < n; k++ {
			m.Set(&Tile{Coord: coords[i], Terrain: q.terrain})
			i++
		}
	}
	for ; i < n; i++ {
		m.Set(&Tile{Coord: coords[i], Terrain: TerrainField})
	}
	return m
}

func ceilShare(n int, frac float64) int {
	return int(math.Ceil(float64(n) * frac))
}

// HashNoise maps (seed, q, r) to a uniformly distributed value in [0, 1).
// It is a pure function: the same inputs always give the same value.
func HashNoise(seed int64, q, r int) float64 {
	h := uint64(seed) * 0x9E3779B97F4A7C15
	h ^= uint64(int64(q)) * 0xC2B2AE3D27D4EB4F
	h = h<<31 | h>>33
	h ^= uint64(int64(r)) * 0x165667B19E3779F9
	h = fmix64(h)
	return float64(h>>11) / (1 << 53)
}

// fmix64 is the murmur3 64-bit finalizer.
func fmix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
