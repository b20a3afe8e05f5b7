package puzzle

import (
	"sort"
)

// Move records one block changing tiles during a step.
type Move struct {
	Block    BlockID
	Kind     Kind
	From     Coord
	To       Coord
	Retained bool // the block keeps its force into the next step
}

// StepResult summarises one simulation step.
type StepResult struct {
	Step    uint64
	Changed []Coord // tiles whose occupant changed, row by row
	Moves   []Move  // ordered by origin tile, row by row
	Passes  int     // resolution passes over unhandled blocks
	Updates int     // individual block updates
}

// Moved reports whether any block changed tiles.
func (r StepResult) Moved() bool {
	return len(r.Moves) > 0
}

// Step advances the simulation by one tick: arrow surfaces push, forces are
// resolved to a fixed point, destination conflicts are settled and all
// winners move at once. A step that does not converge returns an error
// wrapping ErrNonConvergent and leaves the board as it was.
func (b *Board) Step() (StepResult, error) {
	saved := b.saveForces()
	b.applyArrows()

	res, dest, err := b.resolve()
	if err != nil {
		b.restoreForces(saved)
		b.log.Warn("step aborted", "step", b.steps+1, "err", err)
		return StepResult{}, err
	}

	b.steps++
	res.Step = b.steps
	res.Moves, res.Changed = b.applyMoves(dest)
	b.debug("step", "step", res.Step, "moves", len(res.Moves), "passes", res.Passes, "updates", res.Updates)
	return res, nil
}

func (b *Board) applyArrows() {
	for i, t := range b.cells {
		d, ok := t.surface.Arrow()
		if !ok || t.occupant == NoBlock {
			continue
		}
		c := C(i%b.width, i/b.width)
		if b.immovable(probe{id: t.occupant}) {
			continue
		}
		b.debug("arrow", "tile", c, "dir", d)
		b.addExternal(b.blocks[t.occupant], d, b.cfg.ArrowForce)
	}
}

// resolve alternates block updates and destination passes until no block
// is left unhandled.
func (b *Board) resolve() (StepResult, map[BlockID]Coord, error) {
	var res StepResult
	var seen map[uint64]struct{}
	if b.cfg.DetectCycles {
		seen = make(map[uint64]struct{})
	}
	fail := func(reason string) error {
		return &NonConvergentError{Step: b.steps + 1, Updates: res.Updates, Reason: reason}
	}

	for {
		for {
			pending := b.unhandled()
			if len(pending) == 0 {
				break
			}
			if seen != nil {
				h := b.forceHash()
				if _, dup := seen[h]; dup {
					return res, nil, fail(ReasonCycle)
				}
				seen[h] = struct{}{}
			}
			res.Passes++
			for _, blk := range pending {
				// An earlier update in this pass may have settled it.
				if blk.handled {
					continue
				}
				if res.Updates >= b.cfg.MaxIterations {
					return res, nil, fail(ReasonBudget)
				}
				b.update(blk)
				res.Updates++
			}
		}
		dest := b.resolveDestinations()
		if len(b.unhandled()) == 0 {
			return res, dest, nil
		}
	}
}

// unhandled lists blocks that still need an update, row by row. Positions
// do not change while forces are resolved, so the order only depends on the
// layout of the board and never on the order blocks were placed in.
func (b *Board) unhandled() []*Block {
	var out []*Block
	for _, blk := range b.blocks {
		if blk != nil && !blk.handled {
			out = append(out, blk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos.less(out[j].pos) })
	return out
}

// byPos sorts block handles in place by the tile they stand on.
func (b *Board) byPos(ids []BlockID) []BlockID {
	sort.Slice(ids, func(i, j int) bool { return b.blocks[ids[i]].pos.less(b.blocks[ids[j]].pos) })
	return ids
}

// applyMoves vacates every origin before occupying any destination, so
// chains and swaps move together.
func (b *Board) applyMoves(dest map[BlockID]Coord) ([]Move, []Coord) {
	ids := b.byPos(sortedDestIDs(dest))
	moves := make([]Move, 0, len(ids))
	retained := make(map[BlockID][2]int)
	changed := make(map[Coord]struct{})

	for _, id := range ids {
		blk := b.blocks[id]
		to := dest[id]
		keep := blk.kind.RetainsForce() || b.cell(to).surface == SurfaceSlide
		if keep {
			retained[id] = b.resultant(blk)
		}
		moves = append(moves, Move{Block: id, Kind: blk.kind, From: blk.pos, To: to, Retained: keep})
		if b.cell(blk.pos).occupant == id {
			b.cell(blk.pos).occupant = NoBlock
		}
		changed[blk.pos] = struct{}{}
	}
	for _, m := range moves {
		blk := b.blocks[m.Block]
		blk.pos = m.To
		b.cell(m.To).occupant = m.Block
		changed[m.To] = struct{}{}
	}

	b.graph = newForceGraph()
	for _, blk := range b.blocks {
		if blk == nil {
			continue
		}
		r, keep := retained[blk.id]
		blk.reset(keep, r)
	}

	tiles := make([]Coord, 0, len(changed))
	for c := range changed {
		tiles = append(tiles, c)
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].less(tiles[j]) })
	return moves, tiles
}

// forceState is everything Step mutates before it knows it will succeed.
type forceState struct {
	graph  *forceGraph
	blocks []*Block
}

func (b *Board) saveForces() forceState {
	s := forceState{graph: b.graph.clone(), blocks: make([]*Block, len(b.blocks))}
	for i, blk := range b.blocks {
		if blk != nil {
			s.blocks[i] = blk.clone()
		}
	}
	return s
}

func (b *Board) restoreForces(s forceState) {
	b.graph = s.graph
	for i, blk := range s.blocks {
		if blk == nil {
			continue
		}
		live := b.blocks[i]
		live.handled = blk.handled
		live.external = blk.external
		live.pending = blk.pending
	}
}
