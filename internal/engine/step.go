package engine

import (
	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/world"
)

// StepOutcome describes the economic half of a day.
type StepOutcome struct {
	Produced economy.Stockpile
	Need     float64
	Fed      bool
}

// Step is the pure economic transition: production on the revealed
// terrain, then eating, then the day advances. Expeditions and the
// chronicle are handled by Simulation.Tick.
func Step(prev economy.State, revealed world.TerrainCounts, rules Rules) (economy.State, StepOutcome) {
	var out StepOutcome

	out.Produced = economy.Produce(prev, revealed, rules.Production)
	next := prev
	next.Stock = next.Stock.Add(out.Produced)

	out.Need = rules.Food.Need(next.Population, next.Policies.Rationing)
	next, out.Fed = economy.Feed(next, rules.Food)

	next.Day++
	next.Season = SeasonName(SeasonOf(next.Day, rules.DaysPerSeason))
	return next, out
}
