// Package config provides YAML-based configuration loading for the
// simulator and the command line tool.
package config

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Config contains all configuration for forcegrid.
type Config struct {
	Mechanics MechanicsConfig `yaml:"mechanics"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Levels    LevelsConfig    `yaml:"levels"`
	Storage   StorageConfig   `yaml:"storage"`
	Trace     TraceConfig     `yaml:"trace"`
	Log       LogConfig       `yaml:"log"`
}

// MechanicsConfig defines the force magnitudes of the input sources.
type MechanicsConfig struct {
	MoveForce  int `yaml:"move_force"`
	ArrowForce int `yaml:"arrow_force"`
}

// ResolverConfig bounds force resolution.
type ResolverConfig struct {
	MaxIterations int  `yaml:"max_iterations"` // block updates allowed per step
	DetectCycles  bool `yaml:"detect_cycles"`
}

// LevelsConfig locates level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig locates the run results database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// TraceConfig controls step traces.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Simulation converts the config into board settings.
func (c *Config) Simulation(logger *log.Logger) puzzle.Config {
	return puzzle.Config{
		Logger:        logger,
		MaxIterations: c.Resolver.MaxIterations,
		ArrowForce:    c.Mechanics.ArrowForce,
		MoveForce:     c.Mechanics.MoveForce,
		DetectCycles:  c.Resolver.DetectCycles,
	}
}

// LogLevel parses Log.Level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
