// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Level represents a parsed level file.
type Level struct {
	ID         string
	Name       string
	Definition *puzzle.Definition
	Metadata   map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".lvl", ".txt", ".yaml", ".yml"}
}

// Parse routes to the parser for ext. The fallback ID is used when the
// file does not name its level.
func Parse(data []byte, ext, fallbackID string) (Level, error) {
	var (
		lvl Level
		err error
	)
	switch strings.ToLower(ext) {
	case ".lvl", ".txt":
		lvl, err = ParseText(data)
	case ".yaml", ".yml":
		lvl, err = ParseYAML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, err
	}
	if lvl.ID == "" {
		lvl.ID = fallbackID
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	return lvl, nil
}

var kindNames = map[string]puzzle.Kind{
	"player":    puzzle.KindPlayer,
	"immovable": puzzle.KindImmovable,
	"standard":  puzzle.KindStandard,
	"slide":     puzzle.KindSlide,
	"bounce":    puzzle.KindBounce,
}

var surfaceNames = map[string]puzzle.Surface{
	"blank": puzzle.SurfaceBlank,
	"slide": puzzle.SurfaceSlide,
	"left":  puzzle.SurfaceLeft,
	"up":    puzzle.SurfaceUp,
	"right": puzzle.SurfaceRight,
	"down":  puzzle.SurfaceDown,
}

// ParseKind accepts a kind name or its number.
func ParseKind(s string) (puzzle.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindNames[s]; ok {
		return k, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown block kind %q", s)
	}
	return puzzle.Kind(n), nil
}

// KindName is the inverse of ParseKind. Custom kinds become numbers.
func KindName(k puzzle.Kind) string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return strconv.Itoa(int(k))
}

// ParseSurface accepts a surface name, "goal:<kind>" or a number.
func ParseSurface(s string) (puzzle.Surface, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := surfaceNames[s]; ok {
		return v, nil
	}
	if rest, ok := strings.CutPrefix(s, "goal:"); ok {
		k, err := ParseKind(rest)
		if err != nil {
			return 0, err
		}
		if k < 0 {
			return 0, fmt.Errorf("goal for negative kind %d", k)
		}
		return puzzle.Surface(k), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown surface %q", s)
	}
	return puzzle.Surface(n), nil
}

// SurfaceName is the inverse of ParseSurface.
func SurfaceName(s puzzle.Surface) string {
	for name, v := range surfaceNames {
		if v == s {
			return name
		}
	}
	if s.IsGoal() {
		return "goal:" + KindName(s.GoalKind())
	}
	return strconv.Itoa(int(s))
}
