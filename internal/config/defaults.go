package config

import (
	_ "embed"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

//go:embed defaults/forcegrid.yaml
var defaultYAML []byte

//go:embed defaults/forcegrid.schema.json
var schemaJSON string

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	sim := puzzle.DefaultConfig()
	return Config{
		Mechanics: MechanicsConfig{
			MoveForce:  sim.MoveForce,
			ArrowForce: sim.ArrowForce,
		},
		Resolver: ResolverConfig{
			MaxIterations: sim.MaxIterations,
			DetectCycles:  sim.DetectCycles,
		},
		Levels: LevelsConfig{
			Dir: "levels",
		},
		Storage: StorageConfig{
			DBPath: "~/.forcegrid/results.db",
		},
		Trace: TraceConfig{
			Enabled: false,
			Dir:     "~/.forcegrid/traces",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
