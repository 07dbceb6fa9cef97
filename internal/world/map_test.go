package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallMap() *Map {
	m := NewMap(2)
	for i, c := range Spiral(HexCoord{}, 2) {
		m.Set(&Tile{Coord: c, Terrain: AllTerrains[i%NumTerrains]})
	}
	return m
}

func TestRevealIsOneWay(t *testing.T) {
	m := smallMap()
	c := HexCoord{Q: 1, R: 0}

	assert.True(t, m.Reveal(c))
	assert.False(t, m.Reveal(c), "second reveal is a no-op")
	assert.False(t, m.Reveal(HexCoord{Q: 9, R: 9}), "off-map reveal")
	assert.True(t, m.Get(c).Revealed)
	assert.Equal(t, 1, m.RevealedTotal())
}

func TestIncrementalCountsMatchRecount(t *testing.T) {
	m := smallMap()
	n := m.RevealRadius(HexCoord{}, 1)
	assert.Equal(t, 7, n)
	m.Reveal(HexCoord{Q: 2, R: -2})
	m.setTerrain(HexCoord{}, TerrainForest)

	all, revealed := m.Recount()
	assert.Equal(t, all, m.Counts())
	assert.Equal(t, revealed, m.RevealedCounts())
	assert.Equal(t, 8, m.RevealedTotal())
}

func TestSetReplacesTile(t *testing.T) {
	m := smallMap()
	before := m.Counts().Total()
	m.Set(&Tile{Coord: HexCoord{}, Terrain: TerrainWater, Revealed: true})
	assert.Equal(t, before, m.Counts().Total())
	all, revealed := m.Recount()
	assert.Equal(t, all, m.Counts())
	assert.Equal(t, revealed, m.RevealedCounts())
}

func TestStatsAndSnapshot(t *testing.T) {
	m := Generate(GenConfig{
		Radius:       7,
		Seed:         3,
		Noise:        NoiseHash,
		Thresholds:   DefaultGenConfig().Thresholds,
		MutationRate: 0.04,
		ClumpChance:  0.5,
		MaxAttempts:  100,
		Bounds:       DefaultBounds(),
	})
	st := m.Stats()
	assert.Equal(t, 169, st.Total)
	assert.Equal(t, 0, st.Revealed)
	sum := 0.0
	for _, p := range st.Percent {
		sum += p
	}
	assert.InDelta(t, 100.0, sum, 1e-9)

	snap := m.Snapshot()
	require.Len(t, snap, 169)
	snap[0].Revealed = true
	assert.False(t, m.Get(snap[0].Coord).Revealed, "snapshot is a copy")
	assert.True(t, m.InBounds(HexCoord{Q: 7, R: -7}))
	assert.False(t, m.InBounds(HexCoord{Q: 7, R: 1}))
}
