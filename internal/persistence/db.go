// Package persistence keeps a write-only record of a colony run in SQLite:
// the chronicle, one row per day, expeditions, and map metadata. Nothing
// here is ever loaded back into a running simulation.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/world"
)

// Journal wraps a SQLite connection for the colony record.
type Journal struct {
	conn *sqlx.DB
}

// Open opens or creates a journal database at the given path.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chronicle (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS days (
		day INTEGER PRIMARY KEY,
		season TEXT NOT NULL,
		population INTEGER NOT NULL,
		happiness REAL NOT NULL,
		food_value REAL NOT NULL,
		firewood INTEGER NOT NULL,
		stores INTEGER NOT NULL,
		need REAL NOT NULL,
		fed INTEGER NOT NULL,
		stock_json TEXT NOT NULL,
		produced_json TEXT NOT NULL,
		labor_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS expeditions (
		id TEXT PRIMARY KEY,
		target_q INTEGER NOT NULL,
		target_r INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		distance INTEGER NOT NULL,
		start_day INTEGER NOT NULL,
		arrival_day INTEGER NOT NULL,
		status TEXT NOT NULL,
		resolved_day INTEGER NOT NULL,
		revealed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS colony_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chronicle_day ON chronicle(day);
	CREATE INDEX IF NOT EXISTS idx_expeditions_status ON expeditions(status);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// RecordEntries appends chronicle entries.
func (j *Journal) RecordEntries(entries []engine.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.Exec(
			"INSERT INTO chronicle (day, severity, message) VALUES (?, ?, ?)",
			e.Day, string(e.Severity), e.Message,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecordDay writes the end-of-day row for a tick report.
func (j *Journal) RecordDay(r engine.DayReport, foodValue float64) error {
	st := r.State
	stockJSON, err := json.Marshal(st.Stock.Map())
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}
	producedJSON, err := json.Marshal(r.Produced.Map())
	if err != nil {
		return fmt.Errorf("marshal produced: %w", err)
	}
	laborJSON, err := json.Marshal(st.Labor.Map())
	if err != nil {
		return fmt.Errorf("marshal labor: %w", err)
	}

	_, err = j.conn.Exec(`INSERT OR REPLACE INTO days
		(day, season, population, happiness, food_value, firewood, stores, need, fed,
		 stock_json, produced_json, labor_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.Day, st.Season, st.Population, st.Happiness, foodValue,
		st.Stock.Firewood(), st.Stock.Stores(), r.Need, boolToInt(r.Fed),
		string(stockJSON), string(producedJSON), string(laborJSON),
	)
	return err
}

// RecordExpeditions upserts expeditions by ID.
func (j *Journal) RecordExpeditions(exps []engine.Expedition) error {
	if len(exps) == 0 {
		return nil
	}

	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range exps {
		_, err := tx.Exec(`INSERT OR REPLACE INTO expeditions
			(id, target_q, target_r, workers, distance, start_day, arrival_day, status, resolved_day, revealed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), e.Target.Q, e.Target.R, e.Workers, e.Distance,
			e.StartDay, e.ArrivalDay, string(e.Status), e.ResolvedDay, e.Revealed,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key/value pair.
func (j *Journal) SaveMeta(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT OR REPLACE INTO colony_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a value by key.
func (j *Journal) GetMeta(key string) (string, error) {
	var value string
	err := j.conn.Get(&value, "SELECT value FROM colony_meta WHERE key = ?", key)
	return value, err
}

// RecordMap stores the generation parameters and terrain make-up of m.
func (j *Journal) RecordMap(m *world.Map) error {
	st := m.Stats()
	meta := map[string]string{
		"map_seed":           strconv.FormatInt(m.Seed, 10),
		"map_requested_seed": strconv.FormatInt(m.RequestedSeed, 10),
		"map_radius":         strconv.Itoa(m.Radius),
		"map_attempts":       strconv.Itoa(m.Attempts),
		"map_fallback":       strconv.FormatBool(m.Fallback),
		"colony_site":        m.Colony.String(),
	}
	for _, t := range world.AllTerrains {
		meta["terrain_"+t.String()] = strconv.Itoa(st.Counts[t])
	}
	for k, v := range meta {
		if err := j.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}
	return nil
}

// SaveColony records the final colony snapshot at shutdown.
func (j *Journal) SaveColony(sim *engine.Simulation) error {
	st := sim.State()
	slog.Info("saving colony record", "day", st.Day, "population", st.Population)

	stateJSON, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := j.RecordExpeditions(sim.Expeditions()); err != nil {
		return fmt.Errorf("save expeditions: %w", err)
	}
	if err := j.SaveMeta("final_state", string(stateJSON)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := j.SaveMeta("last_day", strconv.Itoa(st.Day)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("colony record saved")
	return nil
}

// RecentEntries returns the most recent N chronicle entries, newest first.
func (j *Journal) RecentEntries(limit int) ([]engine.Entry, error) {
	var entries []engine.Entry
	err := j.conn.Select(&entries,
		"SELECT day, message, severity FROM chronicle ORDER BY id DESC LIMIT ?",
		limit,
	)
	return entries, err
}

// DaysRecorded returns how many day rows the journal holds.
func (j *Journal) DaysRecorded() (int, error) {
	var n int
	err := j.conn.Get(&n, "SELECT COUNT(*) FROM days")
	return n, err
}

// Attach records every chronicle entry and day report sim produces from
// now on, along with the entries already in its chronicle. Write failures
// are logged and do not stop the simulation.
func (j *Journal) Attach(sim *engine.Simulation) error {
	if err := j.RecordEntries(sim.Chronicle()); err != nil {
		return fmt.Errorf("record chronicle: %w", err)
	}
	food := sim.Rules().Food.Order

	sim.OnEntry(func(e engine.Entry) {
		if err := j.RecordEntries([]engine.Entry{e}); err != nil {
			slog.Error("journal entry write failed", "day", e.Day, "error", err)
		}
	})
	sim.OnDay(func(r engine.DayReport) {
		if err := j.RecordDay(r, r.State.Stock.FoodValue(food)); err != nil {
			slog.Error("journal day write failed", "day", r.State.Day, "error", err)
		}
		if err := j.RecordExpeditions(sim.Expeditions()); err != nil {
			slog.Error("journal expedition write failed", "day", r.State.Day, "error", err)
		}
	})
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
