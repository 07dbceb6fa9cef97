// Simulation owns the colony state and serializes every change to it.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/world"
)

// Rules gather every tunable the simulation reads.
type Rules struct {
	Production    economy.ProductionRules `yaml:"production"`
	Food          economy.FoodRules       `yaml:"food"`
	Expedition    ExpeditionRules         `yaml:"expedition"`
	Milestones    []MilestoneRule         `yaml:"milestones"`
	RevealRadius  int                     `yaml:"reveal_radius"`   // Revealed around the colony at start
	DaysPerSeason int                     `yaml:"days_per_season"` // Cosmetic calendar
}

// DefaultRules returns the standard game tuning.
func DefaultRules() Rules {
	return Rules{
		Production:    economy.DefaultProductionRules(),
		Food:          economy.DefaultFoodRules(),
		Expedition:    DefaultExpeditionRules(),
		Milestones:    DefaultMilestones(),
		RevealRadius:  2,
		DaysPerSeason: DefaultDaysPerSeason,
	}
}

// Validate checks every section of the rules.
func (r Rules) Validate() error {
	if err := r.Production.Validate(); err != nil {
		return fmt.Errorf("production: %w", err)
	}
	if err := r.Food.Validate(); err != nil {
		return fmt.Errorf("food: %w", err)
	}
	if err := r.Expedition.Validate(); err != nil {
		return fmt.Errorf("expedition: %w", err)
	}
	if err := ValidateMilestones(r.Milestones); err != nil {
		return fmt.Errorf("milestones: %w", err)
	}
	if r.RevealRadius < 0 {
		return fmt.Errorf("reveal radius must be non-negative")
	}
	if r.DaysPerSeason < 1 {
		return fmt.Errorf("days per season must be at least 1")
	}
	return nil
}

// DayReport is what observers receive after each tick.
type DayReport struct {
	State    economy.State
	Produced economy.Stockpile
	Need     float64
	Fed      bool
	Entries  []Entry      // Chronicle entries added this tick
	Resolved []Expedition // Expeditions that returned or were lost this tick
}

// Simulation holds the colony and wires the daily systems together.
type Simulation struct {
	mu sync.RWMutex

	state       economy.State
	worldMap    *world.Map
	expeditions []Expedition
	chronicle   []Entry
	terrain     terrainCache
	hungry      bool // In a shortfall episode

	rules      Rules
	milestones []milestone
	rng        entropy.Source

	entryObservers []func(Entry)
	dayObservers   []func(DayReport)
}

// NewSimulation lands a fresh colony on m. Tiles around the colony site
// are revealed and the arrival is recorded in the chronicle. A nil rng
// uses crypto randomness.
func NewSimulation(m *world.Map, rules Rules, rng entropy.Source) (*Simulation, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	ms, err := compileMilestones(rules.Milestones)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = entropy.NewCrypto()
	}

	sim := &Simulation{
		state:      economy.StartingState(),
		worldMap:   m,
		rules:      rules,
		milestones: ms,
		rng:        rng,
		terrain:    terrainCache{dirty: true},
	}
	sim.state.Season = SeasonName(SeasonOf(sim.state.Day, rules.DaysPerSeason))
	revealed := m.RevealRadius(m.Colony, rules.RevealRadius)
	sim.record(sim.state.Day, SeverityInfo, msgArrival)

	slog.Info("colony founded",
		"site", m.Colony.String(),
		"seed", m.Seed,
		"revealed", revealed,
		"population", sim.state.Population,
	)
	return sim, nil
}

// Tick advances the colony one day and returns the new state. The whole
// transition happens under the simulation lock; observers run after it is
// released.
func (s *Simulation) Tick() economy.State {
	s.mu.Lock()
	mark := len(s.chronicle)
	prevDay := s.state.Day

	next, out := Step(s.state, s.terrain.get(s.worldMap), s.rules)
	if !out.Fed && !s.hungry {
		s.record(prevDay, SeverityDanger, msgHungry)
	}
	s.hungry = !out.Fed
	s.state = next

	resolved := s.resolveExpeditions(next.Day)
	s.purgeExpeditions(s.state.Day)
	s.checkMilestones()

	report := DayReport{
		State:    s.state,
		Produced: out.Produced,
		Need:     out.Need,
		Fed:      out.Fed,
		Resolved: resolved,
	}
	fresh, entryObs := s.drain(mark)
	report.Entries = fresh
	dayObs := slices.Clone(s.dayObservers)
	s.mu.Unlock()

	slog.Debug("day complete",
		"day", report.State.Day,
		"population", report.State.Population,
		"happiness", report.State.Happiness,
		"fed", out.Fed,
	)

	notifyEntries(entryObs, fresh)
	for _, fn := range dayObs {
		fn(report)
	}
	return report.State
}

// drain copies entries recorded since mark along with the entry observers.
// Caller holds s.mu.
func (s *Simulation) drain(mark int) ([]Entry, []func(Entry)) {
	if mark >= len(s.chronicle) {
		return nil, nil
	}
	return slices.Clone(s.chronicle[mark:]), slices.Clone(s.entryObservers)
}

func notifyEntries(observers []func(Entry), entries []Entry) {
	for _, e := range entries {
		for _, fn := range observers {
			fn(e)
		}
	}
}

// AllocateLabor sets the headcount of an assignable role. Invalid requests
// leave the colony unchanged and return false.
func (s *Simulation) AllocateLabor(role economy.Role, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.state.AllocateLabor(role, n)
	if ok {
		s.state = next
	}
	return ok
}

// SetPolicy replaces the colony's standing orders.
func (s *Simulation) SetPolicy(p economy.Policies) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Policies = p
	s.mu.Unlock()
	return nil
}

// OnEntry registers fn to receive every new chronicle entry.
func (s *Simulation) OnEntry(fn func(Entry)) {
	s.mu.Lock()
	s.entryObservers = append(s.entryObservers, fn)
	s.mu.Unlock()
}

// OnDay registers fn to receive a report after every tick.
func (s *Simulation) OnDay(fn func(DayReport)) {
	s.mu.Lock()
	s.dayObservers = append(s.dayObservers, fn)
	s.mu.Unlock()
}

// State returns a copy of the current colony state.
func (s *Simulation) State() economy.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Expeditions returns a copy of the listed expeditions.
func (s *Simulation) Expeditions() []Expedition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expeditions)
}

// Chronicle returns a copy of every entry so far.
func (s *Simulation) Chronicle() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.chronicle)
}

// Tiles returns a copy of every map tile.
func (s *Simulation) Tiles() []world.Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.worldMap.Snapshot()
}

// MapStats returns terrain counts for the map.
func (s *Simulation) MapStats() world.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.worldMap.Stats()
}

// Colony returns the colony site.
func (s *Simulation) Colony() world.HexCoord {
	return s.worldMap.Colony
}

// Rules returns the tuning the simulation runs with.
func (s *Simulation) Rules() Rules {
	return s.rules
}

// TerrainDirty reports whether a reveal is waiting to be folded into the
// terrain availability used for production.
func (s *Simulation) TerrainDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terrain.dirty
}
