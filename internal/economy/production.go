package economy

import (
	"fmt"
	"math"

	"github.com/talgya/hexcolony/internal/world"
)

// Yield is one role's contribution to one good.
type Yield struct {
	Role        Role            `yaml:"role"`
	Good        Good            `yaml:"good"`
	Rate        float64         `yaml:"rate"`
	Terrain     []world.Terrain `yaml:"terrain"`
	Threshold   float64         `yaml:"threshold"`
	ToolLimited bool            `yaml:"tool_limited"`
}

// Multiplier is the fraction of full output the revealed terrain supports:
// min(1, revealed/threshold).
func (y Yield) Multiplier(revealed world.TerrainCounts) float64 {
	if y.Threshold <= 0 {
		return 1
	}
	n := 0
	for _, t := range y.Terrain {
		n += revealed[t]
	}
	return math.Min(1, float64(n)/y.Threshold)
}

// GatherSplit is the per-gatherer rate for each gathered good.
type GatherSplit struct {
	Berries float64 `yaml:"berries"`
	Sticks  float64 `yaml:"sticks"`
	Rocks   float64 `yaml:"rocks"`
}

func (g GatherSplit) rate(good Good) (float64, bool) {
	switch good {
	case GoodBerries:
		return g.Berries, true
	case GoodSticks:
		return g.Sticks, true
	case GoodRocks:
		return g.Rocks, true
	}
	return 0, false
}

// ProductionRules is the full production table.
type ProductionRules struct {
	Yields []Yield                     `yaml:"yields"`
	Gather map[GatherFocus]GatherSplit `yaml:"gather"`
}

// DefaultProductionRules returns the standard table.
func DefaultProductionRules() ProductionRules {
	open := []world.Terrain{world.TerrainField, world.TerrainForest}
	forest := []world.Terrain{world.TerrainForest}
	return ProductionRules{
		Yields: []Yield{
			{Role: RoleGatherers, Good: GoodBerries, Rate: 0.3, Terrain: open, Threshold: 15},
			{Role: RoleGatherers, Good: GoodSticks, Rate: 0.4, Terrain: open, Threshold: 15},
			{Role: RoleGatherers, Good: GoodRocks, Rate: 0.2, Terrain: open, Threshold: 15},
			{Role: RoleHunters, Good: GoodSmallGame, Rate: 0.4, Terrain: open, Threshold: 12},
			{Role: RoleHunters, Good: GoodLargeGame, Rate: 0.2, Terrain: forest, Threshold: 5},
			{Role: RoleFarmers, Good: GoodGrain, Rate: 0.5, Terrain: []world.Terrain{world.TerrainField}, Threshold: 10},
			{Role: RoleWoodcutters, Good: GoodLogs, Rate: 0.3, Terrain: forest, Threshold: 5, ToolLimited: true},
			{Role: RoleStoneWorkers, Good: GoodStone, Rate: 0.2, Terrain: []world.Terrain{world.TerrainMountain}, Threshold: 3},
		},
		Gather: map[GatherFocus]GatherSplit{
			FocusBalanced: {Berries: 0.3, Sticks: 0.4, Rocks: 0.2},
			FocusFood:     {Berries: 1},
			FocusWood:     {Sticks: 1},
			FocusStone:    {Rocks: 1},
		},
	}
}

// Validate rejects negative rates and thresholds and yields that cannot
// be attributed.
func (p ProductionRules) Validate() error {
	for i, y := range p.Yields {
		if int(y.Role) >= NumRoles || int(y.Good) >= NumGoods {
			return fmt.Errorf("yield %d: bad role or good", i)
		}
		if y.Rate < 0 || y.Threshold < 0 {
			return fmt.Errorf("yield %d (%s → %s): negative rate or threshold", i, y.Role, y.Good)
		}
	}
	for focus, g := range p.Gather {
		if g.Berries < 0 || g.Sticks < 0 || g.Rocks < 0 {
			return fmt.Errorf("gather focus %s: negative rate", focus)
		}
	}
	return nil
}

func (p ProductionRules) rate(y Yield, focus GatherFocus) float64 {
	if y.Role != RoleGatherers {
		return y.Rate
	}
	split, ok := p.Gather[focus]
	if !ok {
		return y.Rate
	}
	if r, ok := split.rate(y.Good); ok {
		return r
	}
	return y.Rate
}

// floorTolerance keeps products like 100 × 0.29 from flooring one short.
const floorTolerance = 1e-9

// Produce returns one day's output for the colony given the revealed
// terrain. Output per yield is floor(workers × rate × happiness × multiplier).
func Produce(s State, revealed world.TerrainCounts, rules ProductionRules) Stockpile {
	var out Stockpile
	for _, y := range rules.Yields {
		workers := s.Labor.Roles[y.Role]
		if y.ToolLimited {
			workers = min(workers, s.Stock[GoodTools])
		}
		if workers <= 0 {
			continue
		}
		amount := float64(workers) * rules.rate(y, s.Policies.Focus) * s.Happiness * y.Multiplier(revealed)
		out[y.Good] += int(math.Floor(amount + floorTolerance))
	}
	return out
}
