package puzzle

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned by board mutators given a coordinate
	// outside the grid.
	ErrOutOfBounds = errors.New("puzzle: coordinate out of bounds")

	// ErrNonConvergent is returned by Step when force resolution does not
	// reach a fixed point.
	ErrNonConvergent = errors.New("puzzle: force resolution did not converge")

	// ErrNoBlock is returned when a block handle does not refer to a live block.
	ErrNoBlock = errors.New("puzzle: no such block")
)

// ParseError describes a malformed level definition.
type ParseError struct {
	Line int // 1-based line number, 0 if not tied to a line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("puzzle: definition line %d: %s", e.Line, e.Msg)
	}
	return "puzzle: definition: " + e.Msg
}

// Reasons reported by NonConvergentError.
const (
	ReasonBudget = "iteration budget exhausted"
	ReasonCycle  = "force state repeated"
)

// NonConvergentError carries the details of a step that was aborted.
type NonConvergentError struct {
	Step    uint64
	Updates int
	Reason  string
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("puzzle: step %d: force resolution did not converge after %d updates: %s",
		e.Step, e.Updates, e.Reason)
}

// Is makes errors.Is(err, ErrNonConvergent) match.
func (e *NonConvergentError) Is(target error) bool {
	return target == ErrNonConvergent
}
