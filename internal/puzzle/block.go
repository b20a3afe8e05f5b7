package puzzle

// BlockID is a stable handle into the board's block arena.
type BlockID int

// NoBlock marks a tile without an occupant.
const NoBlock BlockID = -1

// external is the folded "not from a block" source on one axis.
// Arrow surfaces, player input and retained momentum all land here.
type external struct {
	force   int
	present bool
	used    bool
}

// Block is a movable or immovable entity on the board.
// Its force bookkeeping lives partly here (external sources, pending targets)
// and partly in the board's force graph (block-to-block pushes).
type Block struct {
	id     BlockID
	kind   Kind
	pos    Coord
	facing Dir

	handled  bool
	external [2]external
	pending  [2][]BlockID // targets found by update but not yet given a share
}

// ID returns the block's handle.
func (b *Block) ID() BlockID { return b.id }

// Kind returns the block type.
func (b *Block) Kind() Kind { return b.kind }

// Pos returns the tile the block stands on.
func (b *Block) Pos() Coord { return b.pos }

// Facing returns the direction the block faces.
func (b *Block) Facing() Dir { return b.facing }

// Handled reports whether the block is at a fixed point in the current step.
func (b *Block) Handled() bool { return b.handled }

// reset clears force bookkeeping at the end of a step. With keep set, the
// given resultant is re-seeded as external force so the block keeps moving.
func (b *Block) reset(keep bool, resultant [2]int) {
	b.external = [2]external{}
	b.pending = [2][]BlockID{}
	b.handled = true
	if !keep {
		return
	}
	for _, a := range Axes {
		if resultant[a] != 0 {
			b.external[a] = external{force: resultant[a], present: true}
			b.handled = false
		}
	}
}

func (b *Block) hasPending(axis Axis, id BlockID) bool {
	for _, p := range b.pending[axis] {
		if p == id {
			return true
		}
	}
	return false
}

func (b *Block) dropPending(axis Axis, id BlockID) bool {
	for i, p := range b.pending[axis] {
		if p == id {
			b.pending[axis] = append(b.pending[axis][:i], b.pending[axis][i+1:]...)
			return true
		}
	}
	return false
}

func (b *Block) clone() *Block {
	c := *b
	for _, a := range Axes {
		c.pending[a] = append([]BlockID(nil), b.pending[a]...)
	}
	return &c
}
