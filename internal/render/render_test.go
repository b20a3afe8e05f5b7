package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(4, 3)

	s.Set(1, 2, 'X', ColorPlayer)
	if got := s.Get(1, 2); got.Rune != 'X' || got.Color != ColorPlayer {
		t.Errorf("Get(1, 2) = %+v, expected X/player", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(4, 0, 'A', ColorDefault)
	if s.Get(9, 9).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(ColorBorder)

	want := "+--+\n|  |\n+--+"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}
}

func TestASCII(t *testing.T) {
	d, err := puzzle.ParseDefinition("4 3\n0 0 0\n1 3 0\n2 1 1\n3 2 2\n4 3 2\n7 0 2\n\n2 1 1\n3 3 1\n-2 0 1\n-5 2 1\n-4 1 2")
	if err != nil {
		t.Fatalf("ParseDefinition() failed: %v", err)
	}
	b, err := puzzle.FromDefinition(d, puzzle.DefaultConfig())
	if err != nil {
		t.Fatalf("FromDefinition() failed: %v", err)
	}

	want := strings.Join([]string{
		"+----+",
		"|v..#|",
		"|=o→S|",
		"|7↑sb|",
		"+----+",
	}, "\n")
	if got := ASCII(b); got != want {
		t.Errorf("ASCII() =\n%s\nexpected\n%s", got, want)
	}
}

func TestBoardColors(t *testing.T) {
	b, err := puzzle.Load("3 1\n0 0 0\n2 1 0\n\n2 1 0\n2 2 0", puzzle.DefaultConfig())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := b.Select(0, 0, false); err != nil {
		t.Fatalf("Select() failed: %v", err)
	}

	s := Board(b)
	tests := []struct {
		x, y int
		r    rune
		c    Color
	}{
		{1, 1, 'v', ColorSelected},
		{2, 1, 'o', ColorGoalMet},
		{3, 1, 'O', ColorGoal},
		{0, 0, '+', ColorBorder},
	}
	for _, tt := range tests {
		got := s.Get(tt.x, tt.y)
		if got.Rune != tt.r || got.Color != tt.c {
			t.Errorf("cell (%d, %d) = %q/%d, expected %q/%d", tt.x, tt.y, got.Rune, got.Color, tt.r, tt.c)
		}
	}
}

func TestStyledKeepsText(t *testing.T) {
	b, err := puzzle.Load("2 2\n0 0 0", puzzle.DefaultConfig())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	styled := Board(b).Styled(DefaultTheme())
	for _, r := range []string{"+--+", "v", "."} {
		if !strings.Contains(styled, r) {
			t.Errorf("styled output should contain %q", r)
		}
	}
	if n := strings.Count(styled, "\n"); n != 3 {
		t.Errorf("expected 3 newlines, got %d", n)
	}
}
