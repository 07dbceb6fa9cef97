// Package config loads simulation tuning from YAML with environment
// overrides. Every field has a default, so a missing file or an empty
// section leaves the standard game.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexcolony/internal/engine"
	"github.com/talgya/hexcolony/internal/world"
)

// Config is the full tuning file.
type Config struct {
	Map    world.GenConfig `yaml:"map"`
	Rules  engine.Rules    `yaml:"rules"`
	Runner Runner          `yaml:"runner"`
}

// Runner holds settings for the headless command.
type Runner struct {
	Speed       string `yaml:"speed"`        // paused, slow, normal, fast, very_fast
	MaxDays     int    `yaml:"max_days"`     // 0 runs until interrupted
	Database    string `yaml:"database"`     // Journal path; empty disables the journal
	Export      string `yaml:"export"`       // Chronicle export path (.jsonl.zst); empty disables
	LogLevel    string `yaml:"log_level"`    // debug, info, warn, error
	ReportEvery int    `yaml:"report_every"` // Days between progress log lines
	RollSeed    int64  `yaml:"roll_seed"`    // Seeds gameplay rolls; 0 uses crypto randomness
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Map:   world.DefaultGenConfig(),
		Rules: engine.DefaultRules(),
		Runner: Runner{
			Speed:       string(engine.SpeedVeryFast),
			MaxDays:     0,
			Database:    "",
			Export:      "",
			LogLevel:    "info",
			ReportEvery: 10,
		},
	}
}

// Load overlays the YAML file at path on the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvSeed     = "COLONYSIM_SEED"
	EnvSpeed    = "COLONYSIM_SPEED"
	EnvDB       = "COLONYSIM_DB"
	EnvLogLevel = "COLONYSIM_LOG_LEVEL"
	EnvMaxDays  = "COLONYSIM_MAX_DAYS"
)

// ApplyEnv overrides settings from the environment. Unset variables leave
// the current value.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Map.Seed = seed
	}
	if v := os.Getenv(EnvMaxDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDays, err)
		}
		c.Runner.MaxDays = n
	}
	if v := os.Getenv(EnvSpeed); v != "" {
		c.Runner.Speed = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Runner.Database = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Runner.LogLevel = v
	}
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	if err := c.Map.Validate(); err != nil {
		return fmt.Errorf("map: %w", err)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if _, err := engine.ParseSpeed(c.Runner.Speed); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	if _, err := ParseLevel(c.Runner.LogLevel); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	if c.Runner.MaxDays < 0 || c.Runner.ReportEvery < 0 {
		return fmt.Errorf("runner: max days and report interval must be non-negative")
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
