// Package world provides the hex grid, terrain, and map generation.
// Uses axial coordinates (q, r) for the hex grid.
package world

import (
	"fmt"
	"strconv"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns the component-wise sum of two coordinates.
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Key packs the coordinate into a single collision-free integer.
// Each axis occupies 32 bits, so any int32 pair round-trips through KeyCoord.
func (h HexCoord) Key() uint64 {
	return uint64(uint32(int32(h.Q)))<<32 | uint64(uint32(int32(h.R)))
}

// KeyCoord unpacks a key produced by HexCoord.Key.
func KeyCoord(k uint64) HexCoord {
	return HexCoord{Q: int(int32(uint32(k >> 32))), R: int(int32(uint32(k)))}
}

// String renders the coordinate as "q,r".
func (h HexCoord) String() string {
	return strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R)
}

// ParseCoord parses the "q,r" form produced by HexCoord.String.
func ParseCoord(s string) (HexCoord, error) {
	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return HexCoord{}, fmt.Errorf("parse coord %q: missing comma", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse coord %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse coord %q: %w", s, err)
	}
	return HexCoord{Q: q, R: r}, nil
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates:
// (|dq| + |dr| + |dq+dr|) / 2 in cube terms.
func Distance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// InRadius reports whether c lies within radius steps of center.
func InRadius(center, c HexCoord, radius int) bool {
	return Distance(center, c) <= radius
}

// Ring returns the hexes exactly radius steps from center, walking
// counter-clockwise from the south-west corner. Radius 0 yields the center.
func Ring(center HexCoord, radius int) []HexCoord {
	if radius <= 0 {
		return []HexCoord{center}
	}
	out := make([]HexCoord, 0, 6*radius)
	dir := HexNeighborDirections[4]
	cur := HexCoord{Q: center.Q + dir.Q*radius, R: center.R + dir.R*radius}
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			out = append(out, cur)
			cur = cur.Add(HexNeighborDirections[side])
		}
	}
	return out
}

// Spiral returns every hex within radius of center, ring by ring outward.
func Spiral(center HexCoord, radius int) []HexCoord {
	out := make([]HexCoord, 0, 1+3*radius*(radius+1))
	for k := 0; k <= radius; k++ {
		out = append(out, Ring(center, k)...)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
