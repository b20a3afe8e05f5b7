package puzzle

type reactKind uint8

const (
	reactNone reactKind = iota
	reactPlain
	reactWall
)

// update recomputes one block's resultant, decides who it pushes and what
// pushes back, and hands its force on to the blocks in front of it.
func (b *Board) update(blk *Block) {
	res := b.resultant(blk)
	b.markSourcesUsed(blk)

	diagonal := res[Horizontal] != 0 && res[Vertical] != 0
	var diag probe
	if diagonal {
		diag = b.probe(blk.pos.Toward(res))
	}

	var react [4]reactKind
	for _, a := range Axes {
		force := res[a]
		if force == 0 {
			// Leftover sources that cancel out are pushed back both ways.
			if b.hasSources(blk, a) {
				react[Dir(a)] = reactPlain
				react[Dir(a)+2] = reactPlain
			}
			continue
		}
		var along [2]int
		along[a] = force
		adj := b.probe(blk.pos.Toward(along))
		if b.immovable(adj) {
			react[DirFromForce(a, force).Opposite()] = reactWall
			if diagonal && diag.id != NoBlock {
				b.withdraw(blk, a, diag.id)
			}
			continue
		}
		if adj.id != NoBlock {
			b.addTarget(blk, a, adj.id)
		}
		if diagonal && diag.id != NoBlock && !b.immovable(diag) {
			b.addTarget(blk, a, diag.id)
		}
	}

	// Both axes free but the corner is blocked: give way on the weaker axis,
	// or on both when they are equal.
	if diagonal && b.immovable(diag) && react == [4]reactKind{} {
		fx, fy := abs(res[Horizontal]), abs(res[Vertical])
		if fx <= fy {
			react[DirFromForce(Horizontal, res[Horizontal]).Opposite()] = reactPlain
		}
		if fy <= fx {
			react[DirFromForce(Vertical, res[Vertical]).Opposite()] = reactPlain
		}
	}

	bounced := false
	for _, d := range Dirs {
		if react[d] == reactNone {
			continue
		}
		b.reaction(blk, d)
		if react[d] == reactWall && blk.kind == KindBounce {
			b.addExternal(blk, d, abs(res[d.Axis()]))
			bounced = true
		}
	}

	b.distribute(blk)
	blk.handled = !bounced
}

// distribute splits the block's current resultant between its pending
// targets on each axis. Edges whose share did not change are left alone so
// their receivers stay at rest.
func (b *Board) distribute(blk *Block) {
	res := b.resultant(blk)
	for _, a := range Axes {
		shares := b.shares(blk, res[a], blk.pending[a])
		blk.pending[a] = nil

		for _, to := range b.graph.targets(blk.id, a) {
			e, _ := b.graph.get(blk.id, to, a)
			if f, ok := shares[to]; ok && f == e.force {
				delete(shares, to)
				continue
			}
			b.graph.remove(blk.id, to, a)
			b.blocks[to].handled = false
		}
		for _, to := range sortedShareIDs(shares) {
			b.push(blk, to, a, shares[to])
		}
	}
}

// shares divides force between at most two targets: the first gets the
// larger half. When the force is too small to split, the target straight
// ahead takes all of it and the diagonal one is dropped.
func (b *Board) shares(blk *Block, force int, targets []BlockID) map[BlockID]int {
	out := make(map[BlockID]int, len(targets))
	if force == 0 {
		return out
	}
	switch len(targets) {
	case 1:
		out[targets[0]] = force
	case 2:
		half := force / 2
		if half != 0 {
			out[targets[0]] = force - half
			out[targets[1]] = half
			return out
		}
		for _, id := range targets {
			if !blk.pos.Diagonal(b.blocks[id].pos) {
				out[id] = force
				return out
			}
		}
		out[targets[0]] = force
	}
	return out
}

func sortedShareIDs(m map[BlockID]int) []BlockID {
	set := make(map[BlockID]struct{}, len(m))
	for id := range m {
		set[id] = struct{}{}
	}
	return sortedIDs(set)
}

// reaction pushes back on blk in direction d: every source on that axis the
// block has already acted on is removed and the pushing blocks react too.
// Diagonal pushes are withdrawn since a blocked block cannot move diagonally.
func (b *Board) reaction(blk *Block, d Dir) {
	a := d.Axis()
	b.debug("reaction", "block", blk.id, "dir", d)

	if ext := &blk.external[a]; ext.present && ext.used {
		*ext = external{}
	}
	var upstream []BlockID
	for _, from := range b.graph.sources(blk.id, a) {
		e, _ := b.graph.get(from, blk.id, a)
		if e.used {
			b.graph.remove(from, blk.id, a)
			upstream = append(upstream, from)
		}
	}

	for _, axis := range Axes {
		for _, to := range b.diagonalTargets(blk, axis) {
			b.withdraw(blk, axis, to)
		}
	}

	for _, from := range b.byPos(upstream) {
		b.reaction(b.blocks[from], d)
	}
	blk.handled = false
}
