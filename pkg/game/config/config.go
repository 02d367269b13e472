// Package config provides Viper-based configuration loading for the overworld.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// MapConfig holds the dimensions of every generated map.
type MapConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// WorldConfig holds the extent of the world grid.
type WorldConfig struct {
	// Radius bounds world coordinates to [-Radius, Radius] on both axes.
	Radius int `mapstructure:"radius"`
}

// GenerationConfig holds terrain feature placement settings.
type GenerationConfig struct {
	MinTrees    int `mapstructure:"min_trees"`
	MinBoulders int `mapstructure:"min_boulders"`
	// TreeProb and BoulderProb are the per-step continuation chances, in percent.
	TreeProb    int `mapstructure:"tree_prob"`
	BoulderProb int `mapstructure:"boulder_prob"`
}

// TrainerConfig holds non-player actor population settings.
type TrainerConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
	// AddProb is the chance, in percent, of adding one more trainer once Min is met.
	AddProb int `mapstructure:"add_prob"`
	// ProbDecay lowers AddProb by this many points for every trainer beyond Min.
	ProbDecay         int `mapstructure:"prob_decay"`
	PlacementAttempts int `mapstructure:"placement_attempts"`
}

// MovementConfig holds pathfinding and turn-cost settings.
type MovementConfig struct {
	// Connectivity is 4 or 8.
	Connectivity     int `mapstructure:"connectivity"`
	IdleCost         int `mapstructure:"idle_cost"`
	ExplorerTurnProb int `mapstructure:"explorer_turn_prob"`
	EncounterProb    int `mapstructure:"encounter_prob"`
}

// CostsConfig points at an optional terrain cost table.
type CostsConfig struct {
	// File is a YAML cost table; empty selects the built-in table.
	File string `mapstructure:"file"`
}

// TurnConfig holds scheduler settings.
type TurnConfig struct {
	CheckInvariants bool `mapstructure:"check_invariants"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	// Seed seeds the random source; 0 picks a time-based seed.
	Seed       int64            `mapstructure:"seed"`
	Map        MapConfig        `mapstructure:"map"`
	World      WorldConfig      `mapstructure:"world"`
	Generation GenerationConfig `mapstructure:"generation"`
	Trainers   TrainerConfig    `mapstructure:"trainers"`
	Movement   MovementConfig   `mapstructure:"movement"`
	Costs      CostsConfig      `mapstructure:"costs"`
	Turn       TurnConfig       `mapstructure:"turn"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Map.Width < 5 || c.Map.Height < 5 {
		errs = append(errs, fmt.Sprintf("map must be at least 5x5, got %dx%d", c.Map.Width, c.Map.Height))
	}
	if c.World.Radius < 1 {
		errs = append(errs, fmt.Sprintf("world.radius must be >= 1, got %d", c.World.Radius))
	}
	if err := validateGeneration(c.Generation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTrainers(c.Trainers); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMovement(c.Movement); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validPercent(v int) bool {
	return v >= 0 && v <= 100
}

func validateGeneration(g GenerationConfig) error {
	var errs []string
	if g.MinTrees < 0 || g.MinBoulders < 0 {
		errs = append(errs, "generation.min_trees and generation.min_boulders must be >= 0")
	}
	// 100 would never terminate the placement loop.
	if !validPercent(g.TreeProb) || g.TreeProb == 100 {
		errs = append(errs, fmt.Sprintf("generation.tree_prob must be 0-99, got %d", g.TreeProb))
	}
	if !validPercent(g.BoulderProb) || g.BoulderProb == 100 {
		errs = append(errs, fmt.Sprintf("generation.boulder_prob must be 0-99, got %d", g.BoulderProb))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTrainers(t TrainerConfig) error {
	var errs []string
	if t.Min < 0 {
		errs = append(errs, fmt.Sprintf("trainers.min must be >= 0, got %d", t.Min))
	}
	if t.Max < t.Min {
		errs = append(errs, "trainers.max must not be less than trainers.min")
	}
	if !validPercent(t.AddProb) {
		errs = append(errs, fmt.Sprintf("trainers.add_prob must be 0-100, got %d", t.AddProb))
	}
	if t.ProbDecay < 0 {
		errs = append(errs, fmt.Sprintf("trainers.prob_decay must be >= 0, got %d", t.ProbDecay))
	}
	if t.PlacementAttempts < 1 {
		errs = append(errs, fmt.Sprintf("trainers.placement_attempts must be >= 1, got %d", t.PlacementAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMovement(m MovementConfig) error {
	var errs []string
	if m.Connectivity != 4 && m.Connectivity != 8 {
		errs = append(errs, fmt.Sprintf("movement.connectivity must be 4 or 8, got %d", m.Connectivity))
	}
	if m.IdleCost < 1 {
		errs = append(errs, fmt.Sprintf("movement.idle_cost must be >= 1, got %d", m.IdleCost))
	}
	if !validPercent(m.ExplorerTurnProb) {
		errs = append(errs, fmt.Sprintf("movement.explorer_turn_prob must be 0-100, got %d", m.ExplorerTurnProb))
	}
	if !validPercent(m.EncounterProb) {
		errs = append(errs, fmt.Sprintf("movement.encounter_prob must be 0-100, got %d", m.EncounterProb))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := LoadFromViper(newViper())
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with OVERWORLD_ prefix
	v.SetEnvPrefix("OVERWORLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)

	v.SetDefault("map.width", 80)
	v.SetDefault("map.height", 21)

	v.SetDefault("world.radius", 200)

	v.SetDefault("generation.min_trees", 10)
	v.SetDefault("generation.min_boulders", 10)
	v.SetDefault("generation.tree_prob", 95)
	v.SetDefault("generation.boulder_prob", 95)

	v.SetDefault("trainers.min", 7)
	v.SetDefault("trainers.max", 50)
	v.SetDefault("trainers.add_prob", 60)
	v.SetDefault("trainers.prob_decay", 5)
	v.SetDefault("trainers.placement_attempts", 2000)

	v.SetDefault("movement.connectivity", 8)
	v.SetDefault("movement.idle_cost", 10)
	v.SetDefault("movement.explorer_turn_prob", 10)
	v.SetDefault("movement.encounter_prob", 10)

	v.SetDefault("costs.file", "")

	v.SetDefault("turn.check_invariants", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
