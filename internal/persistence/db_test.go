package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/world"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "colony.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func testSim(t *testing.T) (*engine.Simulation, *world.Map) {
	t.Helper()
	cfg := world.DefaultGenConfig()
	cfg.Seed = 4242
	m := world.Generate(cfg)
	sim, err := engine.NewSimulation(m, engine.DefaultRules(), entropy.NewSequence(0.9))
	require.NoError(t, err)
	return sim, m
}

func TestJournalRecordsRun(t *testing.T) {
	j := openTestJournal(t)
	sim, m := testSim(t)

	require.NoError(t, j.RecordMap(m))
	require.NoError(t, j.Attach(sim))

	var target world.HexCoord
	found := false
	for _, tile := range sim.Tiles() {
		if !tile.Revealed && world.Distance(m.Colony, tile.Coord) == 3 {
			target, found = tile.Coord, true
			break
		}
	}
	require.True(t, found)
	require.True(t, sim.StartExpedition(target, 3))

	for i := 0; i < 4; i++ {
		sim.Tick()
	}

	days, err := j.DaysRecorded()
	require.NoError(t, err)
	assert.Equal(t, 4, days)

	entries, err := j.RecentEntries(10)
	require.NoError(t, err)
	chron := sim.Chronicle()
	require.Len(t, entries, len(chron))
	assert.Equal(t, chron[len(chron)-1], entries[0], "newest first")
	assert.Equal(t, chron[0], entries[len(entries)-1])

	var status string
	require.NoError(t, j.conn.Get(&status, "SELECT status FROM expeditions"))
	assert.Equal(t, string(engine.ExpeditionCompleted), status)

	seed, err := j.GetMeta("map_seed")
	require.NoError(t, err)
	assert.NotEmpty(t, seed)
	site, err := j.GetMeta("colony_site")
	require.NoError(t, err)
	assert.Equal(t, m.Colony.String(), site)

	require.NoError(t, j.SaveColony(sim))
	last, err := j.GetMeta("last_day")
	require.NoError(t, err)
	assert.Equal(t, "5", last)
}

func TestJournalDayRowIsIdempotent(t *testing.T) {
	j := openTestJournal(t)
	sim, _ := testSim(t)
	r := engine.DayReport{State: sim.State(), Fed: true}

	require.NoError(t, j.RecordDay(r, 110))
	require.NoError(t, j.RecordDay(r, 110))
	n, err := j.DaysRecorded()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var fed int
	require.NoError(t, j.conn.Get(&fed, "SELECT fed FROM days WHERE day = ?", r.State.Day))
	assert.Equal(t, 1, fed)
}

func TestJournalEmptyWrites(t *testing.T) {
	j := openTestJournal(t)
	assert.NoError(t, j.RecordEntries(nil))
	assert.NoError(t, j.RecordExpeditions(nil))
	_, err := j.GetMeta("missing")
	assert.Error(t, err)
}
