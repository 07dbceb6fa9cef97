package main

import (
	"log/slog"

	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/world"
)

// steward runs the colony when nobody is at the controls. Once a day it
// looks at the report, shifts idle settlers to gathering when food runs
// low, and every few days sends a party toward the nearest hidden tile.
type steward struct {
	sim *engine.Simulation

	party   int     // Settlers per expedition
	every   int     // Days between expedition checks; 0 disables exploring
	reserve float64 // Days of food below which idle settlers start gathering
}

func newSteward(sim *engine.Simulation) *steward {
	return &steward{
		sim:     sim,
		party:   5,
		every:   7,
		reserve: 5,
	}
}

func (s *steward) attach() {
	s.sim.OnDay(s.tend)
}

// tend is one observe, decide, act cycle.
func (s *steward) tend(r engine.DayReport) {
	st := r.State
	food := st.Stock.FoodValue(s.sim.Rules().Food.Order)

	if st.Labor.Idle > 1 && food < s.reserve*r.Need {
		gatherers := st.Labor.Roles[economy.RoleGatherers] + st.Labor.Idle/2
		if s.sim.AllocateLabor(economy.RoleGatherers, gatherers) {
			slog.Info("steward reassigned labor",
				"day", st.Day,
				"gatherers", gatherers,
				"food", food,
				"need", r.Need,
			)
		}
	}

	if s.every <= 0 || st.Day%s.every != 0 || s.exploring() {
		return
	}
	if s.sim.State().Labor.Idle < s.party {
		return
	}
	target, ok := nearestHidden(s.sim.Tiles(), s.sim.Colony())
	if !ok {
		return
	}
	if s.sim.StartExpedition(target, s.party) {
		slog.Info("steward sent expedition", "day", st.Day, "target", target.String(), "workers", s.party)
	}
}

func (s *steward) exploring() bool {
	for _, e := range s.sim.Expeditions() {
		if !e.Terminal() {
			return true
		}
	}
	return false
}

// nearestHidden picks the unrevealed tile closest to from. Ties go to the
// first tile in the order given.
func nearestHidden(tiles []world.Tile, from world.HexCoord) (world.HexCoord, bool) {
	best, bestDist := world.HexCoord{}, -1
	for _, t := range tiles {
		if t.Revealed {
			continue
		}
		if d := world.Distance(from, t.Coord); bestDist < 0 || d < bestDist {
			best, bestDist = t.Coord, d
		}
	}
	return best, bestDist >= 0
}
