package world

import "math"

// Orientation selects how hexes sit on the screen.
type Orientation uint8

const (
	PointyTop Orientation = iota // Rows offset horizontally; the map view uses this
	FlatTop                      // Columns offset vertically
)

// Layout maps axial coordinates to a Cartesian plane and back.
type Layout struct {
	Orientation Orientation
	Size        float64 // Center-to-corner distance in pixels
	OriginX     float64 // Pixel position of hex (0,0)
	OriginY     float64
}

// DefaultLayout matches the map view: 25px hexes centered at (300, 200).
func DefaultLayout() Layout {
	return Layout{
		Orientation: PointyTop,
		Size:        25,
		OriginX:     300,
		OriginY:     200,
	}
}

// HexToPixel returns the pixel center of a hex.
func (l Layout) HexToPixel(h HexCoord) (x, y float64) {
	q, r := float64(h.Q), float64(h.R)
	switch l.Orientation {
	case FlatTop:
		x = l.Size * 1.5 * q
		y = l.Size * math.Sqrt(3) * (r + q/2)
	default:
		x = l.Size * math.Sqrt(3) * (q + r/2)
		y = l.Size * 1.5 * r
	}
	return l.OriginX + x, l.OriginY + y
}

// PixelToHex returns the hex containing the given pixel.
func (l Layout) PixelToHex(px, py float64) HexCoord {
	x := (px - l.OriginX) / l.Size
	y := (py - l.OriginY) / l.Size

	var q, r float64
	switch l.Orientation {
	case FlatTop:
		q = x * 2 / 3
		r = -x/3 + y*math.Sqrt(3)/3
	default:
		q = x*math.Sqrt(3)/3 - y/3
		r = y * 2 / 3
	}
	return CubeRound(q, r)
}

// CubeRound snaps fractional axial coordinates to the nearest hex.
// Each cube component is rounded independently; the one with the largest
// rounding error is then rebuilt from the other two so q+r+s stays 0.
func CubeRound(q, r float64) HexCoord {
	s := -q - r

	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	qDiff := math.Abs(rq - q)
	rDiff := math.Abs(rr - r)
	sDiff := math.Abs(rs - s)

	if qDiff > rDiff && qDiff > sDiff {
		rq = -rr - rs
	} else if rDiff > sDiff {
		rr = -rq - rs
	}
	return HexCoord{Q: int(rq), R: int(rr)}
}

// PathHexes returns the hexes on the straight line from one hex to another,
// both endpoints included, by interpolating N = max(|dq|,|dr|,|dq+dr|) steps.
func PathHexes(from, to HexCoord) []HexCoord {
	dq := to.Q - from.Q
	dr := to.R - from.R
	n := abs(dq)
	if abs(dr) > n {
		n = abs(dr)
	}
	if abs(dq+dr) > n {
		n = abs(dq + dr)
	}

	// Nudge off exact hex edges so ties round the same way along the line.
	const eps = 1e-6

	path := make([]HexCoord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		q := float64(from.Q)*(1-t) + float64(to.Q)*t + eps
		r := float64(from.R)*(1-t) + float64(to.R)*t + eps
		path = append(path, CubeRound(q, r))
	}
	return path
}
