// Package config holds the simulation tunables. The reference constants
// live here as defaults and can be overridden from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config gathers every knob the world orchestrator consumes.
type Config struct {
	SeasonDuration     time.Duration `yaml:"season_duration"`      // wall-clock length of a season
	TickInterval       time.Duration `yaml:"tick_interval"`        // cadence of the tick loop
	ReactionWindow     int           `yaml:"reaction_window_ticks"` // ticks the reaction phase lasts
	MaxActionPoints    int           `yaml:"max_action_points"`    // player actions per shock cycle
	DistressTicks      int           `yaml:"distress_ticks"`       // consecutive distressed ticks before AI bankruptcy
	ResolutionDelay    time.Duration `yaml:"resolution_delay"`     // resolution phase auto-return to calm
	EventCooldown      time.Duration `yaml:"event_cooldown"`       // minimum gap between major events
	EventProbability   float64       `yaml:"event_probability"`    // Bernoulli chance per eligible tick
	AIActionChance     float64       `yaml:"ai_action_chance"`     // global per-tick gate for AI decisions
	AICompanies        int           `yaml:"ai_companies"`         // number of AI competitors
	StartingCash       float64       `yaml:"starting_cash"`        // capital every company starts with
	Seed               int64         `yaml:"seed"`                 // entropy seed (0 = derive from clock)
	DatabasePath       string        `yaml:"database_path"`
	StoreName          string        `yaml:"store_name"` // snapshot key in the database
	APIPort            int           `yaml:"api_port"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		SeasonDuration:   20 * time.Minute,
		TickInterval:     time.Second,
		ReactionWindow:   30,
		MaxActionPoints:  3,
		DistressTicks:    60,
		ResolutionDelay:  5 * time.Second,
		EventCooldown:    60 * time.Second,
		EventProbability: 0.15,
		AIActionChance:   0.10,
		AICompanies:      5,
		StartingCash:     100_000,
		Seed:             0,
		DatabasePath:     "data/oligarchy.db",
		StoreName:        "oligarchy-world",
		APIPort:          8080,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error: the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.EventProbability < 0 || c.EventProbability > 1 {
		return fmt.Errorf("event_probability must be in [0,1], got %g", c.EventProbability)
	}
	if c.AIActionChance < 0 || c.AIActionChance > 1 {
		return fmt.Errorf("ai_action_chance must be in [0,1], got %g", c.AIActionChance)
	}
	if c.MaxActionPoints < 0 || c.ReactionWindow < 0 || c.DistressTicks < 0 {
		return fmt.Errorf("tick counters must be non-negative")
	}
	return nil
}

// TicksPerYear converts the tick interval into the number of ticks in a
// calendar year, used to pro-rate annual interest rates.
func (c Config) TicksPerYear() float64 {
	return float64(365*24*time.Hour) / float64(c.TickInterval)
}
