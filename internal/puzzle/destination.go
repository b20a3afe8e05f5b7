package puzzle

import "sort"

type claim struct {
	id  BlockID
	dst Coord
}

// resolveDestinations decides where every block with a non-zero resultant
// ends up. When several blocks claim one tile the strictly strongest wins and
// on a tie nobody gets it. Losers, and blocks heading for a tile whose
// occupant is staying put, are pushed back so the next resolution pass can
// redistribute their force.
func (b *Board) resolveDestinations() map[BlockID]Coord {
	claims := make(map[Coord][]BlockID)
	strength := make(map[BlockID]int)
	for _, blk := range b.blocks {
		if blk == nil {
			continue
		}
		res := b.resultant(blk)
		dst := blk.pos.Toward(res)
		if dst == blk.pos {
			continue
		}
		claims[dst] = append(claims[dst], blk.id)
		strength[blk.id] = abs(res[Horizontal]) + abs(res[Vertical])
	}

	tiles := make([]Coord, 0, len(claims))
	for c := range claims {
		tiles = append(tiles, c)
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].less(tiles[j]) })

	dest := make(map[BlockID]Coord)
	var losers []claim
	for _, c := range tiles {
		ids := claims[c]
		if !b.inBounds(c) {
			for _, id := range ids {
				losers = append(losers, claim{id, c})
			}
			continue
		}
		winner, best, unique := NoBlock, -1, false
		for _, id := range ids {
			switch s := strength[id]; {
			case s > best:
				winner, best, unique = id, s, true
			case s == best:
				unique = false
			}
		}
		for _, id := range ids {
			if unique && id == winner {
				dest[id] = c
				continue
			}
			losers = append(losers, claim{id, c})
		}
	}

	// A block cannot move into a tile whose occupant stays. Dropping one
	// mover can strand another behind it, so repeat until stable.
	for changed := true; changed; {
		changed = false
		for _, id := range b.byPos(sortedDestIDs(dest)) {
			c := dest[id]
			occ := b.cell(c).occupant
			if occ == NoBlock || occ == id {
				continue
			}
			if _, leaving := dest[occ]; leaving {
				continue
			}
			delete(dest, id)
			losers = append(losers, claim{id, c})
			changed = true
		}
	}

	sort.Slice(losers, func(i, j int) bool { return b.blocks[losers[i].id].pos.less(b.blocks[losers[j].id].pos) })
	for _, l := range losers {
		blk := b.blocks[l.id]
		b.debug("destination lost", "block", l.id, "dst", l.dst)
		for _, a := range Axes {
			diff := l.dst.Get(a) - blk.pos.Get(a)
			if diff != 0 {
				b.reaction(blk, DirFromForce(a, diff).Opposite())
			}
		}
	}
	return dest
}

func sortedDestIDs(m map[BlockID]Coord) []BlockID {
	set := make(map[BlockID]struct{}, len(m))
	for id := range m {
		set[id] = struct{}{}
	}
	return sortedIDs(set)
}
