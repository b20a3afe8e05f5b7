package puzzle

import (
	"fmt"
	"hash/fnv"
)

// Snapshot returns a hash of what is visible on the board: size, surfaces
// and the kind of block on every tile. Block handles are not included, so a
// reset board hashes the same as a freshly loaded one.
func (b *Board) Snapshot() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "S:%dx%d;", b.width, b.height)
	for i, t := range b.cells {
		fmt.Fprintf(h, "%d:%d", i, t.surface)
		if t.occupant != NoBlock {
			blk := b.blocks[t.occupant]
			fmt.Fprintf(h, ":%d:%d", blk.kind, blk.facing)
		}
		h.Write([]byte{','})
	}
	return h.Sum64()
}

// forceHash covers everything the resolver reads and writes. Two equal
// hashes at the start of a pass mean the resolver is going round in circles.
func (b *Board) forceHash() uint64 {
	h := fnv.New64a()
	for _, blk := range b.blocks {
		if blk == nil {
			continue
		}
		fmt.Fprintf(h, "B%d:%v;", blk.id, blk.handled)
		for _, a := range Axes {
			ext := blk.external[a]
			fmt.Fprintf(h, "E%d:%d:%v:%v;", a, ext.force, ext.present, ext.used)
			fmt.Fprintf(h, "P%d:%v;", a, blk.pending[a])
			for _, to := range b.graph.targets(blk.id, a) {
				e, _ := b.graph.get(blk.id, to, a)
				fmt.Fprintf(h, "T%d:%d:%v,", to, e.force, e.used)
			}
		}
	}
	return h.Sum64()
}
