package formats

import (
	"fmt"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// ParseText parses the native plain-text definition. The format has no ID
// or name of its own; the message, if any, doubles as the name.
func ParseText(data []byte) (Level, error) {
	d, err := puzzle.ParseDefinition(string(data))
	if err != nil {
		return Level{}, fmt.Errorf("text definition: %w", err)
	}
	return Level{Name: d.Message, Definition: d}, nil
}

// MarshalText renders a level in the plain-text format.
func MarshalText(l Level) []byte {
	return []byte(l.Definition.String() + "\n")
}
