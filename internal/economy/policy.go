package economy

import "fmt"

// Rationing scales daily food need.
type Rationing string

const (
	RationNormal   Rationing = "normal"
	RationGenerous Rationing = "generous"
	RationStrict   Rationing = "strict"
)

// Multiplier returns the need multiplier for a rationing level.
func (r Rationing) Multiplier() float64 {
	switch r {
	case RationGenerous:
		return 1.25
	case RationStrict:
		return 0.75
	default:
		return 1.0
	}
}

// GatherFocus steers what gatherers bring back.
type GatherFocus string

const (
	FocusBalanced GatherFocus = "balanced"
	FocusFood     GatherFocus = "food"
	FocusWood     GatherFocus = "wood"
	FocusStone    GatherFocus = "stone"
)

// Policies are the player's standing orders.
type Policies struct {
	Rationing Rationing   `json:"rationing"`
	Focus     GatherFocus `json:"focus"`
}

// DefaultPolicies is normal rations with balanced gathering.
func DefaultPolicies() Policies {
	return Policies{Rationing: RationNormal, Focus: FocusBalanced}
}

// Validate rejects unknown policy values.
func (p Policies) Validate() error {
	switch p.Rationing {
	case RationNormal, RationGenerous, RationStrict:
	default:
		return fmt.Errorf("unknown rationing %q", p.Rationing)
	}
	switch p.Focus {
	case FocusBalanced, FocusFood, FocusWood, FocusStone:
	default:
		return fmt.Errorf("unknown gather focus %q", p.Focus)
	}
	return nil
}
