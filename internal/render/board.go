package render

import (
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Board draws b inside a one character border.
//
// Blocks: player '<' '^' '>' 'v' (by facing), immovable '#', standard 'o',
// slide 's', bounce 'b', custom kinds their digit or '?'.
// Empty surfaces: blank '.', slide '=', arrows '←' '↑' '→' '↓', goals the
// upper-case letter of their kind ('P' 'I' 'O' 'S' 'B') or '*'.
func Board(b *puzzle.Board) *Screen {
	s := NewScreen(b.Width()+2, b.Height()+2)
	s.DrawBox(ColorBorder)

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			t := b.TileAt(x, y)
			r, c := surfaceGlyph(t.Surface)
			if blk, ok := b.Block(t.Occupant); ok {
				r, c = blockGlyph(blk)
				if t.Surface.IsGoal() && t.Surface.GoalKind() == blk.Kind() {
					c = ColorGoalMet
				}
			}
			if t.Selected {
				c = ColorSelected
			}
			s.Set(x+1, y+1, r, c)
		}
	}
	return s
}

// ASCII renders b as plain text.
func ASCII(b *puzzle.Board) string {
	return Board(b).String()
}

var facingGlyphs = [4]rune{'<', '^', '>', 'v'}

func blockGlyph(blk *puzzle.Block) (rune, Color) {
	switch k := blk.Kind(); k {
	case puzzle.KindPlayer:
		return facingGlyphs[blk.Facing()%4], ColorPlayer
	case puzzle.KindImmovable:
		return '#', ColorImmovable
	case puzzle.KindStandard:
		return 'o', ColorStandard
	case puzzle.KindSlide:
		return 's', ColorSlide
	case puzzle.KindBounce:
		return 'b', ColorBounce
	default:
		if k >= 0 && k <= 9 {
			return rune('0' + k), ColorCustom
		}
		return '?', ColorCustom
	}
}

var goalGlyphs = map[puzzle.Kind]rune{
	puzzle.KindPlayer:    'P',
	puzzle.KindImmovable: 'I',
	puzzle.KindStandard:  'O',
	puzzle.KindSlide:     'S',
	puzzle.KindBounce:    'B',
}

var arrowGlyphs = [4]rune{'←', '↑', '→', '↓'}

func surfaceGlyph(sf puzzle.Surface) (rune, Color) {
	if sf.IsGoal() {
		if r, ok := goalGlyphs[sf.GoalKind()]; ok {
			return r, ColorGoal
		}
		return '*', ColorGoal
	}
	if d, ok := sf.Arrow(); ok {
		return arrowGlyphs[d%4], ColorArrow
	}
	switch sf {
	case puzzle.SurfaceBlank:
		return '.', ColorFloor
	case puzzle.SurfaceSlide:
		return '=', ColorFloor
	}
	return '?', ColorFloor
}
