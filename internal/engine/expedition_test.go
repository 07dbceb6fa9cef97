package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/world"
)

func TestExpeditionRules(t *testing.T) {
	r := DefaultExpeditionRules()
	assert.Equal(t, 4, r.Duration(4))
	assert.Equal(t, 2, r.Duration(1))
	assert.Equal(t, 2, r.Duration(0))
	assert.InDelta(t, 0.06, r.LossChance(4), 1e-12)
	assert.NoError(t, r.Validate())

	r.MinDuration = 0
	assert.Error(t, r.Validate())
}

func TestExpeditionNotEnoughIdle(t *testing.T) {
	sim := newTestSim(t, entropy.NewSequence(0.9))
	before := sim.State()

	assert.False(t, sim.StartExpedition(world.HexCoord{Q: 4, R: 0}, 23))
	assert.Equal(t, before, sim.State())
	assert.Empty(t, sim.Expeditions())

	chron := sim.Chronicle()
	require.Len(t, chron, 2)
	assert.Equal(t, Entry{Day: 1, Message: "Not enough idle workers for expedition!", Severity: SeverityWarning}, chron[1])
}

func TestExpeditionSilentRejections(t *testing.T) {
	sim := newTestSim(t, entropy.NewSequence(0.9))

	assert.False(t, sim.StartExpedition(world.HexCoord{Q: 4, R: 0}, 0))
	assert.False(t, sim.StartExpedition(world.HexCoord{Q: 4, R: 0}, -3))
	assert.False(t, sim.StartExpedition(world.HexCoord{Q: 1, R: 0}, 5), "already revealed")
	assert.False(t, sim.StartExpedition(world.HexCoord{Q: 20, R: 0}, 5), "off the map")

	assert.Len(t, sim.Chronicle(), 1)
	assert.Equal(t, 22, sim.State().Labor.Idle)
}

func TestExpeditionCompletes(t *testing.T) {
	sim := newTestSim(t, entropy.NewSequence(0.9))
	target := world.HexCoord{Q: 4, R: 0}

	require.True(t, sim.StartExpedition(target, 5))
	st := sim.State()
	assert.Equal(t, 17, st.Labor.Idle)
	assert.Equal(t, 5, st.Labor.Roles[economy.RoleExplorers])
	assert.True(t, st.Consistent())

	exps := sim.Expeditions()
	require.Len(t, exps, 1)
	assert.Equal(t, 4, exps[0].Distance)
	assert.Equal(t, 5, exps[0].ArrivalDay)
	assert.Equal(t, ExpeditionInProgress, exps[0].Status)
	assert.Contains(t, sim.Chronicle()[1].Message, "Expected return: Day 5.")

	for i := 0; i < 3; i++ {
		sim.Tick()
		assert.Equal(t, ExpeditionInProgress, sim.Expeditions()[0].Status)
	}
	assert.False(t, sim.TerrainDirty())
	revealedBefore := sim.MapStats().Revealed

	st = sim.Tick()
	require.Equal(t, 5, st.Day)
	exp := sim.Expeditions()[0]
	assert.Equal(t, ExpeditionCompleted, exp.Status)
	assert.Equal(t, 5, exp.ResolvedDay)
	assert.Equal(t, 7, exp.Revealed)
	assert.Equal(t, revealedBefore+7, sim.MapStats().Revealed)
	assert.True(t, sim.TerrainDirty())

	assert.Equal(t, 22, st.Labor.Idle)
	assert.Zero(t, st.Labor.Roles[economy.RoleExplorers])
	assert.Equal(t, 50, st.Population)

	tiles := sim.Tiles()
	for _, tile := range tiles {
		if tile.Coord == target || world.Distance(tile.Coord, target) == 1 {
			assert.True(t, tile.Revealed, "tile %v", tile.Coord)
		}
	}

	var landmark string
	for _, tile := range tiles {
		if tile.Coord == target {
			landmark = world.Landmark(tile.Terrain)
		}
	}
	chron := sim.Chronicle()
	want := fmt.Sprintf("Expedition returns! They discovered %s and mapped their journey, revealing 7 hexes. 5 settlers rejoin the colony.", landmark)
	assert.Equal(t, Entry{Day: 5, Message: want, Severity: SeverityInfo}, chron[len(chron)-1])

	sim.Tick()
	assert.False(t, sim.TerrainDirty(), "refreshed by the next production step")
}

func TestExpeditionLost(t *testing.T) {
	// 0.05 is under the 0.06 loss chance at distance 4.
	sim := newTestSim(t, entropy.NewSequence(0.05))
	require.True(t, sim.StartExpedition(world.HexCoord{Q: 4, R: 0}, 5))
	revealedBefore := sim.MapStats().Revealed

	for i := 0; i < 4; i++ {
		sim.Tick()
	}
	st := sim.State()
	exp := sim.Expeditions()[0]
	assert.Equal(t, ExpeditionLost, exp.Status)
	assert.Equal(t, 45, st.Population)
	assert.Zero(t, st.Labor.Roles[economy.RoleExplorers])
	assert.Equal(t, 17, st.Labor.Idle)
	assert.True(t, st.Consistent())
	assert.Equal(t, revealedBefore, sim.MapStats().Revealed)

	chron := sim.Chronicle()
	assert.Equal(t, Entry{
		Day:      5,
		Message:  "The expedition to distant lands has gone missing. 5 souls lost to the wilderness.",
		Severity: SeverityDanger,
	}, chron[len(chron)-1])
}

func TestExpeditionRetention(t *testing.T) {
	sim := newTestSim(t, entropy.NewSequence(0.9))
	require.True(t, sim.StartExpedition(world.HexCoord{Q: 0, R: 3}, 2))
	require.Equal(t, 4, sim.Expeditions()[0].ArrivalDay)

	for sim.State().Day < 8 {
		sim.Tick()
		require.Len(t, sim.Expeditions(), 1, "day %d", sim.State().Day)
	}
	sim.Tick()
	assert.Equal(t, 9, sim.State().Day)
	assert.Empty(t, sim.Expeditions())
}

func TestExpeditionToNeighborOfRevealed(t *testing.T) {
	sim := newTestSim(t, entropy.NewSequence(0.9))
	target := world.HexCoord{Q: 3, R: -1}
	require.True(t, sim.StartExpedition(target, 1))
	assert.Equal(t, 4, sim.Expeditions()[0].ArrivalDay)

	for i := 0; i < 3; i++ {
		sim.Tick()
	}
	exp := sim.Expeditions()[0]
	assert.Equal(t, ExpeditionCompleted, exp.Status)
	assert.Positive(t, exp.Revealed)
}
