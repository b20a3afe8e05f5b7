package puzzle

import "sort"

// edge is a push from one block onto another along one axis.
type edge struct {
	force int
	used  bool
}

type edgeKey struct {
	from, to BlockID
	axis     Axis
}

// forceGraph holds every block-to-block push. A source on the receiving
// block and a target on the pushing block are the same edge, so the two
// views cannot disagree.
type forceGraph struct {
	edges map[edgeKey]*edge
	in    [2]map[BlockID]map[BlockID]struct{} // axis -> to -> from
	out   [2]map[BlockID]map[BlockID]struct{} // axis -> from -> to
}

func newForceGraph() *forceGraph {
	g := &forceGraph{edges: make(map[edgeKey]*edge)}
	for _, a := range Axes {
		g.in[a] = make(map[BlockID]map[BlockID]struct{})
		g.out[a] = make(map[BlockID]map[BlockID]struct{})
	}
	return g
}

func (g *forceGraph) get(from, to BlockID, axis Axis) (*edge, bool) {
	e, ok := g.edges[edgeKey{from, to, axis}]
	return e, ok
}

// set inserts or replaces an edge. A replaced edge starts unused.
func (g *forceGraph) set(from, to BlockID, axis Axis, force int) {
	g.edges[edgeKey{from, to, axis}] = &edge{force: force}
	link(g.in[axis], to, from)
	link(g.out[axis], from, to)
}

func (g *forceGraph) remove(from, to BlockID, axis Axis) bool {
	k := edgeKey{from, to, axis}
	if _, ok := g.edges[k]; !ok {
		return false
	}
	delete(g.edges, k)
	unlink(g.in[axis], to, from)
	unlink(g.out[axis], from, to)
	return true
}

// sources returns the blocks pushing id on an axis, in ID order.
func (g *forceGraph) sources(id BlockID, axis Axis) []BlockID {
	return sortedIDs(g.in[axis][id])
}

// targets returns the blocks id pushes on an axis, in ID order.
func (g *forceGraph) targets(id BlockID, axis Axis) []BlockID {
	return sortedIDs(g.out[axis][id])
}

func (g *forceGraph) hasSources(id BlockID, axis Axis) bool {
	return len(g.in[axis][id]) > 0
}

// incoming sums the forces pushing id on an axis.
func (g *forceGraph) incoming(id BlockID, axis Axis) int {
	sum := 0
	for from := range g.in[axis][id] {
		sum += g.edges[edgeKey{from, id, axis}].force
	}
	return sum
}

func (g *forceGraph) markUsed(id BlockID, axis Axis) {
	for from := range g.in[axis][id] {
		g.edges[edgeKey{from, id, axis}].used = true
	}
}

// dropBlock removes every edge touching id.
func (g *forceGraph) dropBlock(id BlockID) {
	for _, a := range Axes {
		for _, from := range g.sources(id, a) {
			g.remove(from, id, a)
		}
		for _, to := range g.targets(id, a) {
			g.remove(id, to, a)
		}
	}
}

func (g *forceGraph) len() int {
	return len(g.edges)
}

func (g *forceGraph) clone() *forceGraph {
	c := newForceGraph()
	for k, e := range g.edges {
		c.set(k.from, k.to, k.axis, e.force)
		c.edges[k].used = e.used
	}
	return c
}

func link(m map[BlockID]map[BlockID]struct{}, a, b BlockID) {
	set, ok := m[a]
	if !ok {
		set = make(map[BlockID]struct{})
		m[a] = set
	}
	set[b] = struct{}{}
}

func unlink(m map[BlockID]map[BlockID]struct{}, a, b BlockID) {
	set, ok := m[a]
	if !ok {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(m, a)
	}
}

func sortedIDs(set map[BlockID]struct{}) []BlockID {
	if len(set) == 0 {
		return nil
	}
	ids := make([]BlockID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// The helpers below apply force bookkeeping changes and keep the handled
// flags in step with them.

// resultant sums external and block sources on both axes.
func (b *Board) resultant(blk *Block) [2]int {
	var r [2]int
	for _, a := range Axes {
		r[a] = b.graph.incoming(blk.id, a)
		if blk.external[a].present {
			r[a] += blk.external[a].force
		}
	}
	return r
}

func (b *Board) hasSources(blk *Block, axis Axis) bool {
	return blk.external[axis].present || b.graph.hasSources(blk.id, axis)
}

func (b *Board) markSourcesUsed(blk *Block) {
	for _, a := range Axes {
		if blk.external[a].present {
			blk.external[a].used = true
		}
		b.graph.markUsed(blk.id, a)
	}
}

// addExternal accumulates a non-block force. An existing external source
// keeps its used flag.
func (b *Board) addExternal(blk *Block, d Dir, magnitude int) {
	axis, f := SignedForce(d, magnitude)
	ext := &blk.external[axis]
	if ext.present {
		ext.force += f
	} else {
		*ext = external{force: f, present: true}
	}
	blk.handled = false
	b.debug("add force", "block", blk.id, "dir", d, "magnitude", magnitude, "external", ext.force)
}

// push records that from pushes to with force on an axis.
func (b *Board) push(from *Block, to BlockID, axis Axis, force int) {
	b.graph.set(from.id, to, axis, force)
	b.blocks[to].handled = false
	b.debug("push", "from", from.id, "to", to, "axis", axis, "force", force)
}

// addTarget records a block that should receive a share of blk's force.
func (b *Board) addTarget(blk *Block, axis Axis, to BlockID) {
	if !blk.hasPending(axis, to) {
		blk.pending[axis] = append(blk.pending[axis], to)
	}
	blk.handled = false
}

// withdraw removes to from blk's targets on an axis, whether it was already
// assigned a share or still pending.
func (b *Board) withdraw(blk *Block, axis Axis, to BlockID) {
	if b.graph.remove(blk.id, to, axis) {
		if t := b.blocks[to]; t != nil {
			t.handled = false
		}
		b.debug("withdraw", "from", blk.id, "to", to, "axis", axis)
	}
	blk.dropPending(axis, to)
	blk.handled = false
}

// diagonalTargets lists assigned and pending targets of blk on an axis that
// sit diagonally from it.
func (b *Board) diagonalTargets(blk *Block, axis Axis) []BlockID {
	var out []BlockID
	for _, id := range b.graph.targets(blk.id, axis) {
		if blk.pos.Diagonal(b.blocks[id].pos) {
			out = append(out, id)
		}
	}
	for _, id := range blk.pending[axis] {
		if blk.pos.Diagonal(b.blocks[id].pos) {
			out = append(out, id)
		}
	}
	return out
}
