package puzzle

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Tile is one cell of the board as seen from outside.
type Tile struct {
	Surface  Surface
	Occupant BlockID
	Selected bool
	Wall     bool // set only for coordinates outside the grid
}

// Wall is what TileAt reports outside the grid.
var Wall = Tile{Occupant: NoBlock, Wall: true}

type cell struct {
	surface  Surface
	occupant BlockID
}

// Board is a rectangular grid of surfaces with at most one block per tile.
// A Board is not safe for concurrent use.
type Board struct {
	width, height  int
	defaultSurface Surface

	cells    []cell // row-major
	blocks   []*Block
	graph    *forceGraph
	selected map[Coord]bool // value is the secondary selection flag

	initial *Definition
	steps   uint64

	cfg     Config
	log     *log.Logger
	verbose bool
}

// NewBoard creates an empty board filled with defaultSurface.
func NewBoard(width, height int, defaultSurface Surface, cfg Config) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("puzzle: invalid board size %dx%d", width, height)
	}
	b := &Board{selected: make(map[Coord]bool)}
	b.configure(cfg)
	b.clear(width, height, defaultSurface)
	b.initial = b.definition()
	return b, nil
}

func (b *Board) configure(cfg Config) {
	b.cfg = cfg.withDefaults()
	b.log = b.cfg.Logger
	b.verbose = b.log.GetLevel() <= log.DebugLevel
}

// clear drops every block and resets all tiles to the default surface.
func (b *Board) clear(width, height int, defaultSurface Surface) {
	b.width, b.height = width, height
	b.defaultSurface = defaultSurface
	b.cells = make([]cell, width*height)
	for i := range b.cells {
		b.cells[i] = cell{surface: defaultSurface, occupant: NoBlock}
	}
	b.blocks = nil
	b.graph = newForceGraph()
	for c := range b.selected {
		if !b.inBounds(c) {
			delete(b.selected, c)
		}
	}
}

func (b *Board) debug(msg string, keyvals ...any) {
	if b.verbose {
		b.log.Debug(msg, keyvals...)
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// DefaultSurface returns the surface new and cleared tiles get.
func (b *Board) DefaultSurface() Surface { return b.defaultSurface }

// Config returns the simulation settings with defaults filled in.
func (b *Board) Config() Config { return b.cfg }

// Steps returns the number of steps taken since the last load or reset.
func (b *Board) Steps() uint64 { return b.steps }

func (b *Board) inBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

func (b *Board) cell(c Coord) *cell {
	return &b.cells[c.Y*b.width+c.X]
}

// TileAt returns the tile at (x, y), or Wall outside the grid.
func (b *Board) TileAt(x, y int) Tile {
	c := C(x, y)
	if !b.inBounds(c) {
		return Wall
	}
	t := b.cell(c)
	_, sel := b.selected[c]
	return Tile{Surface: t.surface, Occupant: t.occupant, Selected: sel}
}

// BlockAt returns the block standing on (x, y).
func (b *Board) BlockAt(x, y int) (*Block, bool) {
	c := C(x, y)
	if !b.inBounds(c) {
		return nil, false
	}
	id := b.cell(c).occupant
	if id == NoBlock {
		return nil, false
	}
	return b.blocks[id], true
}

// Block returns the live block with the given handle.
func (b *Board) Block(id BlockID) (*Block, bool) {
	if id < 0 || int(id) >= len(b.blocks) || b.blocks[id] == nil {
		return nil, false
	}
	return b.blocks[id], true
}

// Blocks returns all live blocks in handle order.
func (b *Board) Blocks() []*Block {
	out := make([]*Block, 0, len(b.blocks))
	for _, blk := range b.blocks {
		if blk != nil {
			out = append(out, blk)
		}
	}
	return out
}

// BlocksOfKind returns the live blocks of one kind in handle order.
func (b *Board) BlocksOfKind(k Kind) []*Block {
	var out []*Block
	for _, blk := range b.blocks {
		if blk != nil && blk.kind == k {
			out = append(out, blk)
		}
	}
	return out
}

// PlaceBlock puts a new block on (x, y), replacing any block already there.
func (b *Board) PlaceBlock(kind Kind, x, y int) (BlockID, error) {
	c := C(x, y)
	if !b.inBounds(c) {
		return NoBlock, fmt.Errorf("place %s at %v: %w", kind, c, ErrOutOfBounds)
	}
	b.removeAt(c)
	id := BlockID(len(b.blocks))
	b.blocks = append(b.blocks, &Block{id: id, kind: kind, pos: c, facing: DirDown, handled: true})
	b.cell(c).occupant = id
	return id, nil
}

// RemoveBlock removes the block on (x, y), if any.
func (b *Board) RemoveBlock(x, y int) error {
	c := C(x, y)
	if !b.inBounds(c) {
		return fmt.Errorf("remove block at %v: %w", c, ErrOutOfBounds)
	}
	b.removeAt(c)
	return nil
}

func (b *Board) removeAt(c Coord) {
	t := b.cell(c)
	if t.occupant == NoBlock {
		return
	}
	b.dropBlock(t.occupant)
	t.occupant = NoBlock
}

// dropBlock forgets a block and every force relation it takes part in.
// The caller clears the tile.
func (b *Board) dropBlock(id BlockID) {
	for _, a := range Axes {
		for _, to := range b.graph.targets(id, a) {
			b.blocks[to].handled = false
		}
	}
	b.graph.dropBlock(id)
	for _, other := range b.blocks {
		if other == nil || other.id == id {
			continue
		}
		for _, a := range Axes {
			other.dropPending(a, id)
		}
	}
	b.blocks[id] = nil
}

// SetSurface changes the surface of (x, y).
func (b *Board) SetSurface(x, y int, s Surface) error {
	c := C(x, y)
	if !b.inBounds(c) {
		return fmt.Errorf("set surface at %v: %w", c, ErrOutOfBounds)
	}
	b.cell(c).surface = s
	return nil
}

// ClearSurface resets (x, y) to the board's default surface.
func (b *Board) ClearSurface(x, y int) error {
	return b.SetSurface(x, y, b.defaultSurface)
}

// SetFacing changes the direction a block faces.
func (b *Board) SetFacing(id BlockID, d Dir) error {
	blk, ok := b.Block(id)
	if !ok {
		return fmt.Errorf("set facing of %d: %w", id, ErrNoBlock)
	}
	blk.facing = d % 4
	return nil
}

// AddForce applies an external force to a block for the next step.
// Forces added to the same block and axis accumulate.
func (b *Board) AddForce(id BlockID, d Dir, magnitude int) error {
	blk, ok := b.Block(id)
	if !ok {
		return fmt.Errorf("add force to %d: %w", id, ErrNoBlock)
	}
	if magnitude == 0 {
		return nil
	}
	b.addExternal(blk, d%4, magnitude)
	return nil
}

// IsImmovable reports whether (x, y) can never be pushed: the area outside
// the grid, or an immovable block not standing on a slide surface.
func (b *Board) IsImmovable(x, y int) bool {
	return b.immovable(b.probe(C(x, y)))
}

// probe is what a block would run into on a tile.
type probe struct {
	wall bool
	id   BlockID
}

func (b *Board) probe(c Coord) probe {
	if !b.inBounds(c) {
		return probe{wall: true, id: NoBlock}
	}
	return probe{id: b.cell(c).occupant}
}

func (b *Board) immovable(p probe) bool {
	if p.wall {
		return true
	}
	if p.id == NoBlock {
		return false
	}
	blk := b.blocks[p.id]
	return blk.kind == KindImmovable && b.cell(blk.pos).surface != SurfaceSlide
}

// Clone returns a deep copy of the board sharing only its configuration.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = append([]cell(nil), b.cells...)
	c.blocks = make([]*Block, len(b.blocks))
	for i, blk := range b.blocks {
		if blk != nil {
			c.blocks[i] = blk.clone()
		}
	}
	c.graph = b.graph.clone()
	c.selected = make(map[Coord]bool, len(b.selected))
	for k, v := range b.selected {
		c.selected[k] = v
	}
	if b.initial != nil {
		c.initial = b.initial.Clone()
	}
	return &c
}
