package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/world"
)

// ExpeditionStatus is the lifecycle stage of an expedition.
type ExpeditionStatus string

const (
	ExpeditionInProgress ExpeditionStatus = "in-progress"
	ExpeditionCompleted  ExpeditionStatus = "completed"
	ExpeditionLost       ExpeditionStatus = "lost"
)

// Expedition is a party of settlers sent to map an unrevealed tile.
type Expedition struct {
	ID          uuid.UUID        `json:"id"`
	Target      world.HexCoord   `json:"target"`
	Workers     int              `json:"workers"`
	Distance    int              `json:"distance"`
	StartDay    int              `json:"start_day"`
	ArrivalDay  int              `json:"arrival_day"`
	Status      ExpeditionStatus `json:"status"`
	ResolvedDay int              `json:"resolved_day,omitempty"`
	Revealed    int              `json:"revealed,omitempty"` // Tiles newly revealed on return
}

// Terminal reports whether the expedition has been resolved.
func (e Expedition) Terminal() bool { return e.Status != ExpeditionInProgress }

// ExpeditionRules tune travel time, risk and retention.
type ExpeditionRules struct {
	MinDuration   int     `yaml:"min_duration"`   // Days, floor on travel time
	BaseLoss      float64 `yaml:"base_loss"`      // Loss chance at distance zero
	LossPerHex    float64 `yaml:"loss_per_hex"`   // Added loss chance per hex of distance
	RetentionDays int     `yaml:"retention_days"` // Terminal expeditions stay listed this long after arrival
	SurveyRadius  int     `yaml:"survey_radius"`  // Ring around the target revealed on return
}

// DefaultExpeditionRules returns the standard expedition tuning.
func DefaultExpeditionRules() ExpeditionRules {
	return ExpeditionRules{
		MinDuration:   2,
		BaseLoss:      0.02,
		LossPerHex:    0.01,
		RetentionDays: 5,
		SurveyRadius:  1,
	}
}

// Validate rejects negative tuning.
func (r ExpeditionRules) Validate() error {
	if r.MinDuration < 1 {
		return fmt.Errorf("expedition min duration must be at least 1")
	}
	if r.BaseLoss < 0 || r.LossPerHex < 0 || r.RetentionDays < 0 || r.SurveyRadius < 0 {
		return fmt.Errorf("expedition rules must be non-negative")
	}
	return nil
}

// Duration is the travel time in days for a target at distance hexes.
func (r ExpeditionRules) Duration(distance int) int {
	return max(r.MinDuration, distance)
}

// LossChance is the probability an expedition at distance hexes is lost.
func (r ExpeditionRules) LossChance(distance int) float64 {
	return r.BaseLoss + float64(distance)*r.LossPerHex
}

// StartExpedition sends idle settlers toward target. It returns false if
// there are not enough idle settlers (recording a warning), if workers is
// not positive, or if the target is off the map or already revealed.
func (s *Simulation) StartExpedition(target world.HexCoord, workers int) bool {
	s.mu.Lock()
	mark := len(s.chronicle)
	ok := s.startExpedition(target, workers)
	fresh, observers := s.drain(mark)
	s.mu.Unlock()

	notifyEntries(observers, fresh)
	return ok
}

func (s *Simulation) startExpedition(target world.HexCoord, workers int) bool {
	if workers <= 0 {
		return false
	}
	if s.state.Labor.Idle < workers {
		s.record(s.state.Day, SeverityWarning, msgNotEnoughIdle)
		return false
	}
	tile := s.worldMap.Get(target)
	if tile == nil || tile.Revealed {
		return false
	}

	next, ok := s.state.Dispatch(workers)
	if !ok {
		return false
	}

	dist := world.Distance(s.worldMap.Colony, target)
	exp := Expedition{
		ID:         uuid.New(),
		Target:     target,
		Workers:    workers,
		Distance:   dist,
		StartDay:   s.state.Day,
		ArrivalDay: s.state.Day + s.rules.Expedition.Duration(dist),
		Status:     ExpeditionInProgress,
	}
	s.state = next
	s.expeditions = append(s.expeditions, exp)
	s.record(s.state.Day, SeverityInfo, fmt.Sprintf(msgDeparture, workers, exp.ArrivalDay))

	slog.Debug("expedition departed",
		"id", exp.ID,
		"target", target.String(),
		"workers", workers,
		"distance", dist,
		"arrival_day", exp.ArrivalDay,
	)
	return true
}

// resolveExpeditions settles every in-progress expedition due by day and
// returns those resolved. Caller holds s.mu.
func (s *Simulation) resolveExpeditions(day int) []Expedition {
	var resolved []Expedition
	for i := range s.expeditions {
		exp := &s.expeditions[i]
		if exp.Status != ExpeditionInProgress || exp.ArrivalDay > day {
			continue
		}
		exp.ResolvedDay = day

		if entropy.Chance(s.rng, s.rules.Expedition.LossChance(exp.Distance)) {
			exp.Status = ExpeditionLost
			s.state = s.state.Lose(exp.Workers)
			s.record(day, SeverityDanger, fmt.Sprintf(msgExpeditionLost, exp.Workers))
			slog.Debug("expedition lost", "id", exp.ID, "workers", exp.Workers)
		} else {
			exp.Status = ExpeditionCompleted
			exp.Revealed = s.survey(exp.Target)
			s.state = s.state.Return(exp.Workers)
			landmark := "unknown lands"
			if t := s.worldMap.Get(exp.Target); t != nil {
				landmark = world.Landmark(t.Terrain)
			}
			s.record(day, SeverityInfo, fmt.Sprintf(msgExpeditionBack, landmark, exp.Revealed, exp.Workers))
			slog.Debug("expedition returned", "id", exp.ID, "revealed", exp.Revealed)
		}
		resolved = append(resolved, *exp)
	}
	return resolved
}

// survey reveals the path from the colony to target plus the ring around
// target, returning the number of newly revealed tiles.
func (s *Simulation) survey(target world.HexCoord) int {
	n := 0
	for _, c := range world.PathHexes(s.worldMap.Colony, target) {
		if s.worldMap.Reveal(c) {
			n++
		}
	}
	for _, c := range world.Spiral(target, s.rules.Expedition.SurveyRadius) {
		if s.worldMap.Reveal(c) {
			n++
		}
	}
	s.terrain.markDirty()
	return n
}

// purgeExpeditions drops terminal expeditions past the retention window.
// Caller holds s.mu.
func (s *Simulation) purgeExpeditions(day int) {
	kept := s.expeditions[:0]
	for _, exp := range s.expeditions {
		if !exp.Terminal() || day-exp.ArrivalDay < s.rules.Expedition.RetentionDays {
			kept = append(kept, exp)
		}
	}
	clear(s.expeditions[len(kept):])
	s.expeditions = kept
}
