// Command colonysim runs a hex colony headlessly: it generates the map,
// lands the colony, and ticks days until interrupted or a day limit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexcolony/internal/config"
	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/entropy"
	"github.com/talgya/hexcolony/internal/persistence"
	"github.com/talgya/hexcolony/internal/world"
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file (defaults apply when absent)")
	exportPath := flag.String("export", "", "write the chronicle to this .jsonl.zst file on exit")
	auto := flag.Bool("auto", true, "let a steward send expeditions and rebalance labor")
	flag.Parse()

	if err := run(*configPath, *exportPath, *auto); err != nil {
		slog.Error("colonysim failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, exportPath string, auto bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if exportPath != "" {
		cfg.Runner.Export = exportPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Runner.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Map ───────────────────────────────────────────────────────────
	slog.Info("generating colony map...", "radius", cfg.Map.Radius, "noise", cfg.Map.Noise)
	worldMap := world.Generate(cfg.Map)
	stats := worldMap.Stats()
	for _, t := range world.AllTerrains {
		slog.Info("terrain",
			"type", world.TerrainName(t),
			"count", stats.Counts[t],
			"percent", fmt.Sprintf("%.1f", stats.Percent[t]),
		)
	}
	colonyName := world.PlaceName(worldMap.Seed, worldMap.Colony)
	slog.Info("map ready",
		"seed", worldMap.Seed,
		"requested_seed", worldMap.RequestedSeed,
		"attempts", worldMap.Attempts,
		"fallback", worldMap.Fallback,
		"hexes", worldMap.HexCount(),
		"colony", colonyName,
	)

	// ── Simulation ────────────────────────────────────────────────────
	var rng entropy.Source
	if cfg.Runner.RollSeed != 0 {
		rng = entropy.NewSeeded(cfg.Runner.RollSeed)
	}
	sim, err := engine.NewSimulation(worldMap, cfg.Rules, rng)
	if err != nil {
		return fmt.Errorf("new simulation: %w", err)
	}

	// ── Journal ───────────────────────────────────────────────────────
	var journal *persistence.Journal
	if cfg.Runner.Database != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Runner.Database), 0o755); err != nil {
			return fmt.Errorf("journal dir: %w", err)
		}
		journal, err = persistence.Open(cfg.Runner.Database)
		if err != nil {
			return err
		}
		defer journal.Close()
		if err := journal.RecordMap(worldMap); err != nil {
			return fmt.Errorf("record map: %w", err)
		}
		if err := journal.Attach(sim); err != nil {
			return err
		}
		slog.Info("journal opened", "path", cfg.Runner.Database)
	}

	sim.OnEntry(logEntry)
	sim.OnDay(dailyReport(cfg.Runner.ReportEvery, cfg.Rules))
	if auto {
		newSteward(sim).attach()
	}

	// ── Run ───────────────────────────────────────────────────────────
	speed, _ := engine.ParseSpeed(cfg.Runner.Speed)
	eng := engine.NewEngine(sim, speed, nil)
	eng.MaxDays = cfg.Runner.MaxDays

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n%s is founded: %d settlers on %d revealed of %d hexes.\n",
		colonyName, sim.State().Population, sim.MapStats().Revealed, worldMap.HexCount())
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// ── Shutdown ──────────────────────────────────────────────────────
	if journal != nil {
		if err := journal.SaveColony(sim); err != nil {
			slog.Error("final save failed", "error", err)
		}
	}
	if cfg.Runner.Export != "" {
		if err := persistence.ExportChronicle(cfg.Runner.Export, sim.Chronicle()); err != nil {
			slog.Error("chronicle export failed", "path", cfg.Runner.Export, "error", err)
		} else if info, err := os.Stat(cfg.Runner.Export); err == nil {
			slog.Info("chronicle exported", "path", cfg.Runner.Export, "size", humanize.Bytes(uint64(info.Size())))
		}
	}

	printSummary(colonyName, sim, cfg.Rules)
	return nil
}

func logEntry(e engine.Entry) {
	switch e.Severity {
	case engine.SeverityDanger:
		slog.Warn("chronicle", "day", e.Day, "message", e.Message)
	default:
		slog.Info("chronicle", "day", e.Day, "severity", e.Severity, "message", e.Message)
	}
}

func dailyReport(every int, rules engine.Rules) func(engine.DayReport) {
	return func(r engine.DayReport) {
		if every <= 0 || r.State.Day%every != 0 {
			return
		}
		st := r.State
		slog.Info("daily report",
			"day", st.Day,
			"time", engine.Calendar(st.Day, rules.DaysPerSeason),
			"population", st.Population,
			"happiness", fmt.Sprintf("%.2f", st.Happiness),
			"food", fmt.Sprintf("%.1f", st.Stock.FoodValue(rules.Food.Order)),
			"firewood", st.Stock.Firewood(),
			"stores", st.Stock.Stores(),
			"idle", st.Labor.Idle,
			"explorers", st.Labor.Roles[economy.RoleExplorers],
		)
	}
}

func printSummary(name string, sim *engine.Simulation, rules engine.Rules) {
	st := sim.State()
	ms := sim.MapStats()

	fmt.Printf("\n%s, %s (%s day)\n", name, engine.Calendar(st.Day, rules.DaysPerSeason), humanize.Ordinal(st.Day))
	fmt.Printf("  settlers:   %s\n", humanize.Comma(int64(st.Population)))
	fmt.Printf("  happiness:  %.0f%%\n", st.Happiness*100)
	fmt.Printf("  food value: %s\n", humanize.CommafWithDigits(st.Stock.FoodValue(rules.Food.Order), 1))
	fmt.Printf("  firewood:   %s\n", humanize.Comma(int64(st.Stock.Firewood())))
	fmt.Printf("  stores:     %s\n", humanize.Comma(int64(st.Stock.Stores())))
	fmt.Printf("  explored:   %d of %d hexes\n", ms.Revealed, ms.Total)
	fmt.Printf("  chronicle:  %s entries\n", humanize.Comma(int64(len(sim.Chronicle()))))
}
