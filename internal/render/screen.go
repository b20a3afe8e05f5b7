// Package render draws boards as text, either plain (for tests, logs and
// pipes) or coloured with lipgloss for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is the role of a screen cell. The theme decides how it looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBorder
	ColorFloor
	ColorArrow
	ColorGoal
	ColorGoalMet
	ColorPlayer
	ColorImmovable
	ColorStandard
	ColorSlide
	ColorBounce
	ColorCustom
	ColorSelected
)

// Theme maps colors to lipgloss styles.
type Theme map[Color]lipgloss.Style

// DefaultTheme returns the default terminal theme.
func DefaultTheme() Theme {
	return Theme{
		ColorDefault:   lipgloss.NewStyle(),
		ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Dim gray
		ColorFloor:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		ColorArrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		ColorGoal:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // Orange
		ColorGoalMet:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		ColorPlayer:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		ColorImmovable: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ColorStandard:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		ColorSlide:     lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		ColorBounce:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		ColorCustom:    lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		ColorSelected:  lipgloss.NewStyle().Reverse(true),
	}
}

// Cell is one character of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a screen filled with spaces.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.cells = make([][]Cell, height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, width)
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawBox outlines the screen edge with ASCII corners and lines.
func (s *Screen) DrawBox(c Color) {
	right, bottom := s.width-1, s.height-1
	for x := 1; x < right; x++ {
		s.Set(x, 0, '-', c)
		s.Set(x, bottom, '-', c)
	}
	for y := 1; y < bottom; y++ {
		s.Set(0, y, '|', c)
		s.Set(right, y, '|', c)
	}
	s.Set(0, 0, '+', c)
	s.Set(right, 0, '+', c)
	s.Set(0, bottom, '+', c)
	s.Set(right, bottom, '+', c)
}

// String converts the screen to plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Styled converts the screen to a string coloured by theme.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (s *Screen) Styled(theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.width*s.height*2 + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.width {
			start := s.cells[y][x].Color

			var run strings.Builder
			for x < s.width && s.cells[y][x].Color == start {
				run.WriteRune(s.cells[y][x].Rune)
				x++
			}

			style, ok := theme[start]
			if !ok {
				style = theme[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
