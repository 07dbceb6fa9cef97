// Package engine runs the colony: the simulation context that owns the
// colony state, the daily tick, expeditions, the chronicle, and the
// scheduler that paces ticks in real time.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Speed is a named tick rate.
type Speed string

const (
	SpeedPaused   Speed = "paused"
	SpeedSlow     Speed = "slow"
	SpeedNormal   Speed = "normal"
	SpeedFast     Speed = "fast"
	SpeedVeryFast Speed = "very_fast"
)

// Interval returns the real time between ticks. Paused returns zero.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 2 * time.Second
	case SpeedNormal:
		return time.Second
	case SpeedFast:
		return 500 * time.Millisecond
	case SpeedVeryFast:
		return 250 * time.Millisecond
	default:
		return 0
	}
}

// ParseSpeed accepts a speed name.
func ParseSpeed(name string) (Speed, error) {
	switch s := Speed(name); s {
	case SpeedPaused, SpeedSlow, SpeedNormal, SpeedFast, SpeedVeryFast:
		return s, nil
	}
	return "", fmt.Errorf("unknown speed %q", name)
}

// TickSource delivers tick times. time.Ticker in production; tests drive
// ManualTicks by hand.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()              { r.t.Stop() }

// NewTicker is the production TickSource factory.
func NewTicker(d time.Duration) TickSource {
	return realTicker{t: time.NewTicker(d)}
}

// ManualTicks is a TickSource fired explicitly.
type ManualTicks struct {
	ch chan time.Time
}

// NewManualTicks returns an unfired manual source.
func NewManualTicks() *ManualTicks {
	return &ManualTicks{ch: make(chan time.Time)}
}

func (m *ManualTicks) C() <-chan time.Time { return m.ch }
func (m *ManualTicks) Stop()              {}

// Fire delivers one tick, waiting up to timeout for the engine to take it.
// It returns false if nobody was listening, as when the engine is paused.
func (m *ManualTicks) Fire(timeout time.Duration) bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}

// Engine drives the simulation forward at the selected speed.
type Engine struct {
	sim       *Simulation
	newSource func(time.Duration) TickSource

	mu      sync.Mutex
	speed   Speed
	changed chan struct{}
	stop    chan struct{}
	once    sync.Once

	// MaxDays stops Run after this many ticks. Zero runs until stopped.
	MaxDays int
	ticks   int
}

// NewEngine creates a scheduler for sim at the given speed. A nil factory
// uses real tickers.
func NewEngine(sim *Simulation, speed Speed, newSource func(time.Duration) TickSource) *Engine {
	if newSource == nil {
		newSource = NewTicker
	}
	return &Engine{
		sim:       sim,
		newSource: newSource,
		speed:     speed,
		changed:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}
}

// Speed returns the current speed.
func (e *Engine) Speed() Speed {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// SetSpeed changes the tick rate. The running loop picks it up before the
// next tick.
func (e *Engine) SetSpeed(s Speed) {
	e.mu.Lock()
	e.speed = s
	e.mu.Unlock()

	select {
	case e.changed <- struct{}{}:
	default:
	}
}

// Ticks returns how many ticks Run has performed.
func (e *Engine) Ticks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Run ticks the simulation until ctx is cancelled, Stop is called, or
// MaxDays ticks have run. Ticks are performed on this goroutine one at a
// time, so they never overlap.
func (e *Engine) Run(ctx context.Context) error {
	speed := e.Speed()
	slog.Info("simulation engine started", "day", e.sim.State().Day, "speed", speed)

	var src TickSource
	var ticks <-chan time.Time
	apply := func(s Speed) {
		if src != nil {
			src.Stop()
			src, ticks = nil, nil
		}
		if d := s.Interval(); d > 0 {
			src = e.newSource(d)
			ticks = src.C()
		}
	}
	apply(speed)
	defer func() {
		if src != nil {
			src.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation engine stopped", "day", e.sim.State().Day, "reason", ctx.Err())
			return ctx.Err()
		case <-e.stop:
			slog.Info("simulation engine stopped", "day", e.sim.State().Day)
			return nil
		case <-e.changed:
			s := e.Speed()
			slog.Info("speed changed", "speed", s)
			apply(s)
		case <-ticks:
			e.sim.Tick()
			e.mu.Lock()
			e.ticks++
			done := e.MaxDays > 0 && e.ticks >= e.MaxDays
			e.mu.Unlock()
			if done {
				slog.Info("day limit reached", "ticks", e.MaxDays, "day", e.sim.State().Day)
				return nil
			}
		}
	}
}

// Stop halts a running loop.
func (e *Engine) Stop() {
	e.once.Do(func() { close(e.stop) })
}
