package puzzle

import (
	"io"

	"github.com/charmbracelet/log"
)

// Force magnitudes used by the built-in input sources.
const (
	ForceMove  = 2
	ForceArrow = 2
)

// Config tunes a board's simulation. Zero numeric fields and a nil Logger
// fall back to DefaultConfig.
type Config struct {
	// Logger receives debug traces of force bookkeeping. Nil discards them.
	Logger *log.Logger

	// MaxIterations bounds the number of block updates in one step.
	MaxIterations int

	// ArrowForce is the magnitude added by arrow surfaces each step.
	ArrowForce int

	// MoveForce is the magnitude a player move applies. The board itself
	// never reads it; input layers do.
	MoveForce int

	// DetectCycles aborts a step as soon as the force state repeats
	// instead of waiting for MaxIterations.
	DetectCycles bool
}

// DefaultConfig returns the stock simulation settings.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 10000,
		ArrowForce:    ForceArrow,
		MoveForce:     ForceMove,
		DetectCycles:  true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.ArrowForce <= 0 {
		c.ArrowForce = d.ArrowForce
	}
	if c.MoveForce <= 0 {
		c.MoveForce = d.MoveForce
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}
