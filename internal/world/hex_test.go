package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	origin := HexCoord{}
	cases := []struct {
		to   HexCoord
		want int
	}{
		{HexCoord{0, 0}, 0},
		{HexCoord{1, 0}, 1},
		{HexCoord{0, -1}, 1},
		{HexCoord{2, -1}, 2},
		{HexCoord{4, 0}, 4},
		{HexCoord{-3, 3}, 3},
		{HexCoord{3, 3}, 6},
		{HexCoord{-2, -2}, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Distance(origin, tc.to), "distance to %v", tc.to)
		assert.Equal(t, tc.want, Distance(tc.to, origin), "distance is symmetric for %v", tc.to)
	}
}

func TestNeighborsAreAdjacent(t *testing.T) {
	c := HexCoord{Q: 2, R: -5}
	for _, n := range c.Neighbors() {
		assert.Equal(t, 1, Distance(c, n))
	}
}

func TestRingAndSpiral(t *testing.T) {
	center := HexCoord{Q: 1, R: 1}
	assert.Equal(t, []HexCoord{center}, Ring(center, 0))

	for radius := 1; radius <= 4; radius++ {
		ring := Ring(center, radius)
		require.Len(t, ring, 6*radius)
		seen := make(map[HexCoord]bool)
		for _, c := range ring {
			assert.Equal(t, radius, Distance(center, c))
			assert.False(t, seen[c], "duplicate %v in ring %d", c, radius)
			seen[c] = true
		}
	}

	spiral := Spiral(HexCoord{}, 7)
	assert.Len(t, spiral, 169)
}

func TestKeyRoundTrip(t *testing.T) {
	for _, c := range Spiral(HexCoord{}, 7) {
		assert.Equal(t, c, KeyCoord(c.Key()))
	}
	far := HexCoord{Q: -2147483648, R: 2147483647}
	assert.Equal(t, far, KeyCoord(far.Key()))
	assert.NotEqual(t, HexCoord{1, 0}.Key(), HexCoord{0, 1}.Key())
}

func TestStringRoundTrip(t *testing.T) {
	for _, c := range []HexCoord{{0, 0}, {-3, 7}, {12, -1}} {
		got, err := ParseCoord(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCoord("3;4")
	assert.Error(t, err)
	_, err = ParseCoord("x,4")
	assert.Error(t, err)
}
