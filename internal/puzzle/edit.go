package puzzle

import (
	"fmt"
	"sort"
)

// Resize grows (amount > 0) or shrinks (amount < 0) the board on the side
// facing d: Resize(-1, DirRight) removes the rightmost column and
// Resize(1, DirLeft) adds one on the left. Content keeps its place relative
// to the opposite side; blocks that fall off the grid are removed and
// selections are clamped onto it. The board never gets smaller than one tile
// on either axis. Resize reports whether the size changed.
func (b *Board) Resize(amount int, d Dir) bool {
	d %= 4
	a := d.Axis()
	size := [2]int{b.width, b.height}
	if size[a]+amount < 1 {
		amount = 1 - size[a]
	}
	if amount == 0 {
		return false
	}

	var shift Coord
	if d.Sign() < 0 {
		shift = shift.With(a, amount)
	}
	oldW, oldH := b.width, b.height
	old := b.cells
	size[a] += amount

	b.width, b.height = size[0], size[1]
	b.cells = make([]cell, b.width*b.height)
	for i := range b.cells {
		b.cells[i] = cell{surface: b.defaultSurface, occupant: NoBlock}
	}
	for y := 0; y < oldH; y++ {
		for x := 0; x < oldW; x++ {
			t := old[y*oldW+x]
			nc := C(x, y).Add(shift.X, shift.Y)
			if !b.inBounds(nc) {
				if t.occupant != NoBlock {
					b.dropBlock(t.occupant)
				}
				continue
			}
			*b.cell(nc) = t
			if t.occupant != NoBlock {
				b.blocks[t.occupant].pos = nc
			}
		}
	}

	// Selections pushed off the grid are clamped back onto its edge.
	moved := make(map[Coord]bool, len(b.selected))
	for c, secondary := range b.selected {
		nc := c.Add(shift.X, shift.Y)
		nc = C(clamp(nc.X, 0, b.width-1), clamp(nc.Y, 0, b.height-1))
		moved[nc] = moved[nc] || secondary
	}
	b.selected = moved
	b.debug("resize", "dir", d, "amount", amount, "width", b.width, "height", b.height)
	return true
}

// ResizeTo sets the board size, adding or removing columns on the right and
// rows at the bottom.
func (b *Board) ResizeTo(width, height int) bool {
	w := b.Resize(width-b.width, DirRight)
	h := b.Resize(height-b.height, DirDown)
	return w || h
}

// Selection is one selected tile. Secondary marks the alternate selection
// colour used by editors.
type Selection struct {
	Pos       Coord
	Secondary bool
}

// Select marks (x, y) as selected.
func (b *Board) Select(x, y int, secondary bool) error {
	c := C(x, y)
	if !b.inBounds(c) {
		return fmt.Errorf("select %v: %w", c, ErrOutOfBounds)
	}
	b.selected[c] = secondary
	return nil
}

// Deselect clears the given tiles, or the whole selection when called
// without arguments.
func (b *Board) Deselect(tiles ...Coord) {
	if len(tiles) == 0 {
		b.selected = make(map[Coord]bool)
		return
	}
	for _, c := range tiles {
		delete(b.selected, c)
	}
}

// Selected returns the selection row by row.
func (b *Board) Selected() []Selection {
	out := make([]Selection, 0, len(b.selected))
	for c, secondary := range b.selected {
		out = append(out, Selection{Pos: c, Secondary: secondary})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.less(out[j].Pos) })
	return out
}

// MoveSelected shifts the selection by amount tiles in direction d,
// wrapping around the edges.
func (b *Board) MoveSelected(d Dir, amount int) {
	dx, dy := d.Delta()
	moved := make(map[Coord]bool, len(b.selected))
	for c, secondary := range b.selected {
		nc := C(mod(c.X+dx*amount, b.width), mod(c.Y+dy*amount, b.height))
		moved[nc] = moved[nc] || secondary
	}
	b.selected = moved
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
