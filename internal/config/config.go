// Package config loads battlesim settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
)

// DefaultPath is where the CLI looks for its configuration.
const DefaultPath = "battlesim.yaml"

// Config holds every battlesim option.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed    int64  `yaml:"seed"`
	Ruleset string `yaml:"ruleset"`
	Level   int    `yaml:"level"`

	Engine    Engine    `yaml:"engine"`
	Logging   Logging   `yaml:"logging"`
	Archive   Archive   `yaml:"archive"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Engine holds the turn engine tunables.
type Engine struct {
	SpreadModifier      float64  `yaml:"spread_modifier"`
	FieldTurns          int      `yaml:"field_turns"`
	PermanentFieldTurns int      `yaml:"permanent_field_turns"`
	FallbackDamage      int      `yaml:"fallback_damage"`
	RaidBossBannedMoves []string `yaml:"raid_boss_banned_moves"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Archive struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Telemetry struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`     // Overrides OTEL_EXPORTER_OTLP_ENDPOINT
	SampleRatio float64 `yaml:"sample_ratio"` // Share of battles traced
}

// Default returns the configuration used when no file is present.
func Default() Config {
	s := combat.DefaultSettings()
	return Config{
		Ruleset: s.DefaultRuleset,
		Level:   50,
		Engine: Engine{
			SpreadModifier:      s.SpreadModifier,
			FieldTurns:          s.FieldTurns,
			PermanentFieldTurns: s.PermanentFieldTurns,
			FallbackDamage:      s.FallbackDamage,
			RaidBossBannedMoves: s.RaidBossBannedMoves,
		},
		Logging:   Logging{Level: "info", Pretty: true},
		Archive:   Archive{Enabled: true, Path: "./data/battles.db"},
		Telemetry: Telemetry{SampleRatio: 1},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Engine.SpreadModifier <= 0 || c.Engine.SpreadModifier > 1:
		return fmt.Errorf("engine.spread_modifier must be in (0, 1], got %v", c.Engine.SpreadModifier)
	case c.Engine.FieldTurns <= 0:
		return fmt.Errorf("engine.field_turns must be positive, got %d", c.Engine.FieldTurns)
	case c.Engine.PermanentFieldTurns <= 0:
		return fmt.Errorf("engine.permanent_field_turns must be positive, got %d", c.Engine.PermanentFieldTurns)
	case c.Engine.FallbackDamage < 0:
		return fmt.Errorf("engine.fallback_damage must not be negative, got %d", c.Engine.FallbackDamage)
	case c.Level <= 0 || c.Level > 100:
		return fmt.Errorf("level must be in [1, 100], got %d", c.Level)
	case c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1:
		return fmt.Errorf("telemetry.sample_ratio must be in [0, 1], got %v", c.Telemetry.SampleRatio)
	case c.Archive.Enabled && c.Archive.Path == "":
		return errors.New("archive.path is required when the archive is enabled")
	}
	return nil
}

// Settings converts the engine section into engine tunables.
func (c Config) Settings() combat.Settings {
	return combat.Settings{
		SpreadModifier:      c.Engine.SpreadModifier,
		FieldTurns:          c.Engine.FieldTurns,
		PermanentFieldTurns: c.Engine.PermanentFieldTurns,
		FallbackDamage:      c.Engine.FallbackDamage,
		RaidBossBannedMoves: c.Engine.RaidBossBannedMoves,
		DefaultRuleset:      c.Ruleset,
	}
}
