package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/world"
)

func newTestColony(t *testing.T) *engine.Simulation {
	t.Helper()
	cfg := world.DefaultGenConfig()
	cfg.Seed = 7
	sim, err := engine.NewSimulation(world.Generate(cfg), engine.DefaultRules(), entropy.NewSequence(0.9))
	require.NoError(t, err)
	return sim
}

func TestNearestHidden(t *testing.T) {
	tiles := []world.Tile{
		{Coord: world.HexCoord{Q: -2, R: 0}},
		{Coord: world.HexCoord{Q: 0, R: 0}, Revealed: true},
		{Coord: world.HexCoord{Q: 0, R: 2}},
		{Coord: world.HexCoord{Q: 1, R: 0}, Revealed: true},
		{Coord: world.HexCoord{Q: 3, R: 0}},
	}

	got, ok := nearestHidden(tiles, world.HexCoord{})
	require.True(t, ok)
	assert.Equal(t, world.HexCoord{Q: -2, R: 0}, got, "first of the tied tiles wins")

	_, ok = nearestHidden(tiles[1:2], world.HexCoord{})
	assert.False(t, ok)
}

func TestStewardSendsOneExpeditionAtATime(t *testing.T) {
	sim := newTestColony(t)
	s := newSteward(sim)
	s.every = 1

	st := sim.State()
	s.tend(engine.DayReport{State: st, Need: 5})

	exps := sim.Expeditions()
	require.Len(t, exps, 1)
	assert.Equal(t, s.party, exps[0].Workers)
	assert.Equal(t, sim.Rules().RevealRadius+1, exps[0].Distance)
	assert.Equal(t, st.Labor.Idle-s.party, sim.State().Labor.Idle)

	s.tend(engine.DayReport{State: sim.State(), Need: 5})
	assert.Len(t, sim.Expeditions(), 1)
}

func TestStewardFeedsTheColony(t *testing.T) {
	sim := newTestColony(t)
	s := newSteward(sim)
	s.every = 0

	st := sim.State()
	s.tend(engine.DayReport{State: st, Need: 5})
	assert.Equal(t, st, sim.State(), "stores are ample")

	s.tend(engine.DayReport{State: st, Need: 1000})
	after := sim.State()
	assert.Equal(t, st.Labor.Roles[economy.RoleGatherers]+st.Labor.Idle/2, after.Labor.Roles[economy.RoleGatherers])
	assert.Equal(t, st.Labor.Idle-st.Labor.Idle/2, after.Labor.Idle)
	assert.True(t, after.Consistent())
	assert.Empty(t, sim.Expeditions())
}

func TestStewardDrivenRunStaysConsistent(t *testing.T) {
	sim := newTestColony(t)
	newSteward(sim).attach()

	for i := 0; i < 60; i++ {
		st := sim.Tick()
		require.True(t, st.Consistent(), "day %d", st.Day)
	}
	assert.Greater(t, sim.MapStats().Revealed, 19)
}
