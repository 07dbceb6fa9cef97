package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSatisfiesBounds(t *testing.T) {
	cfg := DefaultGenConfig()
	for _, seed := range []int64{1, 42, 1234, 99999, 424242, 7} {
		cfg.Seed = seed
		m := Generate(cfg)

		assert.Equal(t, 169, m.HexCount())
		assert.True(t, cfg.Bounds.Check(m.Counts()), "seed %d counts %v", seed, m.Counts())

		colony := m.Get(m.Colony)
		require.NotNil(t, colony, "seed %d colony off map", seed)
		assert.NotEqual(t, TerrainWater, colony.Terrain, "seed %d colony on water", seed)
		assert.Equal(t, seed, m.RequestedSeed)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 31337

	a := Generate(cfg)
	b := Generate(cfg)
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, a.Colony, b.Colony)
	assert.Equal(t, a.Seed, b.Seed)
}

func TestReturnedSeedIsAuthoritative(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 555
	first := Generate(cfg)

	cfg.Seed = first.Seed
	again := Generate(cfg)
	assert.Equal(t, first.Snapshot(), again.Snapshot())
	assert.Equal(t, first.Colony, again.Colony)
	if !first.Fallback {
		assert.Equal(t, 1, again.Attempts)
	}
}

func TestGenerateRandomSeed(t *testing.T) {
	m := Generate(DefaultGenConfig())
	assert.NotZero(t, m.RequestedSeed)
	assert.NotZero(t, m.Seed)
	assert.True(t, DefaultBounds().Check(m.Counts()))
}

func TestGenerateSimplex(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Noise = NoiseSimplex
	cfg.Seed = 2024
	m := Generate(cfg)
	assert.False(t, m.Fallback)
	assert.Equal(t, 1, m.Attempts)
	assert.True(t, cfg.Bounds.Check(m.Counts()), "counts %v", m.Counts())
	assert.NotEqual(t, TerrainWater, m.Get(m.Colony).Terrain)
}

func TestFallbackWhenBudgetExhausted(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 77
	// Thresholds that can never yield water force the fallback.
	cfg.Thresholds = Thresholds{Water: 0, Mountain: 0.3, Forest: 0.6}
	cfg.MaxAttempts = 5

	m := Generate(cfg)
	assert.True(t, m.Fallback)
	assert.Equal(t, int64(77), m.Seed)
	assert.True(t, cfg.Bounds.Check(m.Counts()), "counts %v", m.Counts())
	assert.Equal(t, HexCoord{}, m.Colony)
	assert.Equal(t, TerrainField, m.Get(m.Colony).Terrain)

	again := Generate(cfg)
	assert.Equal(t, m.Snapshot(), again.Snapshot())
}

func TestFallbackSmallestRadius(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Radius = MinRadius
	cfg.Seed = 9
	m := fallbackMap(cfg, cfg.Seed)
	assert.Equal(t, 37, m.HexCount())
	assert.True(t, cfg.Bounds.Check(m.Counts()), "counts %v", m.Counts())
}

func TestPlaceColonySearchesOutward(t *testing.T) {
	m := NewMap(2)
	for _, c := range Spiral(HexCoord{}, 2) {
		m.Set(&Tile{Coord: c, Terrain: TerrainWater})
	}
	m.setTerrain(HexCoord{Q: 2, R: -1}, TerrainForest)
	placeColony(m)
	assert.Equal(t, HexCoord{Q: 2, R: -1}, m.Colony)

	allWater := NewMap(1)
	for _, c := range Spiral(HexCoord{}, 1) {
		allWater.Set(&Tile{Coord: c, Terrain: TerrainWater})
	}
	placeColony(allWater)
	assert.Equal(t, HexCoord{}, allWater.Colony)
	assert.Equal(t, TerrainField, allWater.Get(HexCoord{}).Terrain)
	assert.Equal(t, 1, allWater.Counts()[TerrainField])
}

func TestBoundsCheck(t *testing.T) {
	b := DefaultBounds()
	assert.True(t, b.Check(TerrainCounts{40, 30, 20, 10}))
	assert.False(t, b.Check(TerrainCounts{40, 30, 30, 0}), "no water")
	assert.False(t, b.Check(TerrainCounts{30, 30, 15, 25}), "too much water")
	assert.False(t, b.Check(TerrainCounts{20, 40, 30, 10}), "too little field")
	assert.False(t, b.Check(TerrainCounts{}))
	assert.NoError(t, b.Validate())

	b.WaterMin = 0.5
	assert.Error(t, b.Validate())
}

func TestHashNoiseRange(t *testing.T) {
	var buckets [10]int
	n := 0
	for q := -30; q <= 30; q++ {
		for r := -30; r <= 30; r++ {
			v := HashNoise(12345, q, r)
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
			buckets[int(v*10)]++
			n++
		}
	}
	// Loose uniformity check: every decile gets a fair share.
	for i, c := range buckets {
		assert.Greater(t, c, n/20, "decile %d underfilled", i)
	}
	assert.Equal(t, HashNoise(1, 2, 3), HashNoise(1, 2, 3))
}

func TestPlaceNameStable(t *testing.T) {
	c := HexCoord{Q: 3, R: -2}
	assert.Equal(t, PlaceName(10, c), PlaceName(10, c))
	assert.NotEmpty(t, PlaceName(10, c))
	assert.Equal(t, "dense woodlands", Landmark(TerrainForest))
}

func TestGenConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultGenConfig().Validate())

	cfg := DefaultGenConfig()
	cfg.Radius = 2
	assert.Error(t, cfg.Validate())

	cfg = DefaultGenConfig()
	cfg.Noise = "perlin"
	assert.Error(t, cfg.Validate())

	cfg = DefaultGenConfig()
	cfg.Thresholds.Water = 0.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultGenConfig()
	cfg.MaxAttempts = 0
	assert.Error(t, cfg.Validate())
}
