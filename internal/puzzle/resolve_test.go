package puzzle

import "testing"

func loadInternal(t *testing.T, defn string) *Board {
	t.Helper()
	b, err := Load(defn, DefaultConfig())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return b
}

// checkForces verifies the resolver's bookkeeping after a fixed point:
// every block hands on exactly its resultant and no block is left pending.
func checkForces(t *testing.T, b *Board) {
	t.Helper()
	for _, blk := range b.Blocks() {
		if !blk.handled {
			t.Errorf("block %d unhandled at fixed point", blk.id)
		}
		res := b.resultant(blk)
		for _, a := range Axes {
			if len(blk.pending[a]) != 0 {
				t.Errorf("block %d has pending targets on %s", blk.id, a)
			}
			targets := b.graph.targets(blk.id, a)
			if len(targets) == 0 {
				continue
			}
			sum := 0
			for _, to := range targets {
				e, _ := b.graph.get(blk.id, to, a)
				sum += e.force
				if _, ok := b.graph.in[a][to][blk.id]; !ok {
					t.Errorf("edge %d->%d on %s missing from source index", blk.id, to, a)
				}
			}
			if sum != res[a] {
				t.Errorf("block %d hands on %d on %s but has resultant %d", blk.id, sum, a, res[a])
			}
		}
	}
}

func TestResolveConservesForce(t *testing.T) {
	tests := []struct {
		name   string
		defn   string
		forces map[Coord][]int // dx, dy magnitudes
	}{
		{
			name:   "straight chain",
			defn:   "5 1\n0 0 0\n2 1 0\n2 2 0",
			forces: map[Coord][]int{C(0, 0): {2, 0}},
		},
		{
			name:   "diagonal split",
			defn:   "3 3\n0 0 0\n2 1 0\n3 1 1",
			forces: map[Coord][]int{C(0, 0): {5, 3}},
		},
		{
			name:   "chain into wall",
			defn:   "3 1\n0 0 0\n2 1 0\n2 2 0",
			forces: map[Coord][]int{C(0, 0): {2, 0}},
		},
		{
			name:   "two pushers",
			defn:   "4 3\n0 0 1\n0 1 0\n2 1 1\n2 2 1",
			forces: map[Coord][]int{C(0, 1): {2, 0}, C(1, 0): {0, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := loadInternal(t, tt.defn)
			for c, f := range tt.forces {
				id := b.cell(c).occupant
				if f[0] != 0 {
					_ = b.AddForce(id, DirRight, f[0])
				}
				if f[1] != 0 {
					_ = b.AddForce(id, DirDown, f[1])
				}
			}

			if _, _, err := b.resolve(); err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			checkForces(t, b)
		})
	}
}

func TestShares(t *testing.T) {
	b := loadInternal(t, "3 3\n0 0 0\n2 1 0\n2 1 1")
	p := b.blocks[b.cell(C(0, 0)).occupant]
	ahead := b.cell(C(1, 0)).occupant
	diag := b.cell(C(1, 1)).occupant

	tests := []struct {
		force       int
		ahead, diag int
	}{
		{force: 4, ahead: 2, diag: 2},
		{force: 5, ahead: 3, diag: 2},
		{force: -5, ahead: -3, diag: -2},
		{force: 1, ahead: 1, diag: 0},
		{force: -1, ahead: -1, diag: 0},
	}

	for _, tt := range tests {
		got := b.shares(p, tt.force, []BlockID{ahead, diag})
		if got[ahead] != tt.ahead || got[diag] != tt.diag {
			t.Errorf("shares(%d) = %v, want ahead %d diag %d", tt.force, got, tt.ahead, tt.diag)
		}
		if got[ahead]+got[diag] != tt.force {
			t.Errorf("shares(%d) does not add up", tt.force)
		}
	}

	if got := b.shares(p, 0, []BlockID{ahead}); len(got) != 0 {
		t.Errorf("zero force should give no shares, got %v", got)
	}
}

func TestReactionRemovesUsedSourcesOnly(t *testing.T) {
	b := loadInternal(t, "4 1\n0 0 0\n2 1 0")
	p := b.blocks[0]
	blk := b.blocks[1]

	b.graph.set(p.id, blk.id, Horizontal, 2)
	b.graph.markUsed(blk.id, Horizontal)
	blk.external[Horizontal] = external{force: 1, present: true}
	p.external[Horizontal] = external{force: 2, present: true, used: true}

	b.reaction(blk, DirLeft)

	if b.graph.len() != 0 {
		t.Error("used edge should have been removed")
	}
	if !blk.external[Horizontal].present {
		t.Error("unused external source should survive a reaction")
	}
	if p.external[Horizontal].present {
		t.Error("reaction should reach the pushing block")
	}
	if p.handled || blk.handled {
		t.Error("reacting blocks must be re-evaluated")
	}
}

func TestStepClearsForceState(t *testing.T) {
	b := loadInternal(t, "5 1\n0 0 0\n3 1 0")
	_ = b.AddForce(0, DirRight, ForceMove)

	if _, err := b.Step(); err != nil {
		t.Fatal(err)
	}
	if b.graph.len() != 0 {
		t.Errorf("force graph should be empty between steps, has %d edges", b.graph.len())
	}

	player, slide := b.blocks[0], b.blocks[1]
	if !player.handled || player.external[Horizontal].present {
		t.Error("player should be at rest")
	}
	if slide.handled || slide.external[Horizontal].force != 2 || slide.external[Horizontal].used {
		t.Errorf("slide block should carry an unused external force of 2, got %+v", slide.external[Horizontal])
	}
	for _, blk := range b.blocks {
		if b.cell(blk.pos).occupant != blk.id {
			t.Errorf("block %d not found on its tile", blk.id)
		}
	}
}

func TestChainAgainstWallCancelsAllForce(t *testing.T) {
	b := loadInternal(t, "3 1\n0 0 0\n2 1 0\n2 2 0")
	for _, blk := range b.Blocks() {
		if err := b.AddForce(blk.id, DirRight, ForceMove); err != nil {
			t.Fatal(err)
		}
	}

	_, dest, err := b.resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(dest) != 0 {
		t.Errorf("nothing should move, got destinations %v", dest)
	}
	for _, blk := range b.Blocks() {
		if r := b.resultant(blk); r != [2]int{} {
			t.Errorf("block %d at %v keeps resultant %v", blk.id, blk.pos, r)
		}
	}
	checkForces(t, b)
}
