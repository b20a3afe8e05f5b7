package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockSpec places one block in a Definition.
type BlockSpec struct {
	Kind Kind
	Pos  Coord
}

// SurfaceSpec sets one non-default surface in a Definition.
type SurfaceSpec struct {
	Surface Surface
	Pos     Coord
}

// Definition is the parsed form of the plain-text level format:
//
//	W H [DEFAULT]
//	KIND X Y        one line per block
//	                blank line
//	SURFACE X Y     one line per non-default surface
//
// Lines starting with '#' are comments. A line starting with '@' carries the
// level message and lines starting with ':' carry recorded solutions.
type Definition struct {
	Width          int
	Height         int
	DefaultSurface Surface
	Blocks         []BlockSpec
	Surfaces       []SurfaceSpec
	Message        string
	Solutions      []string
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Blocks = append([]BlockSpec(nil), d.Blocks...)
	c.Surfaces = append([]SurfaceSpec(nil), d.Surfaces...)
	c.Solutions = append([]string(nil), d.Solutions...)
	return &c
}

// String renders the definition in the plain-text format.
func (d *Definition) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d", d.Width, d.Height)
	if d.DefaultSurface != DefaultSurface {
		fmt.Fprintf(&sb, " %d", d.DefaultSurface)
	}
	for _, bs := range d.Blocks {
		fmt.Fprintf(&sb, "\n%d %d %d", bs.Kind, bs.Pos.X, bs.Pos.Y)
	}
	sb.WriteString("\n")
	for _, ss := range d.Surfaces {
		if ss.Surface == d.DefaultSurface {
			continue
		}
		fmt.Fprintf(&sb, "\n%d %d %d", ss.Surface, ss.Pos.X, ss.Pos.Y)
	}
	if d.Message != "" || len(d.Solutions) > 0 {
		sb.WriteString("\n")
		if d.Message != "" {
			sb.WriteString("\n@" + d.Message)
		}
		for _, s := range d.Solutions {
			sb.WriteString("\n:" + s)
		}
	}
	return sb.String()
}

type parseStage int

const (
	stageHeader parseStage = iota
	stageBlocks
	stageSurfaces
	stageTrailer
)

// ParseDefinition parses the plain-text level format.
func ParseDefinition(defn string) (*Definition, error) {
	d := &Definition{DefaultSurface: DefaultSurface}
	stage := stageHeader
	haveMessage := false
	lines := strings.Split(strings.ReplaceAll(defn, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "@"), strings.HasPrefix(line, ":"):
			if stage == stageHeader {
				return nil, &ParseError{Line: lineNo, Msg: "metadata before size line"}
			}
			if line[0] == '@' {
				if !haveMessage {
					d.Message = strings.TrimSpace(line[1:])
					haveMessage = true
				}
			} else {
				d.Solutions = append(d.Solutions, strings.TrimSpace(line[1:]))
			}
			stage = stageTrailer
			continue
		case line == "":
			switch stage {
			case stageBlocks:
				stage = stageSurfaces
			case stageSurfaces:
				stage = stageTrailer
			}
			continue
		}

		nums, err := ints(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		switch stage {
		case stageHeader:
			if len(nums) != 2 && len(nums) != 3 {
				return nil, &ParseError{Line: lineNo, Msg: "size line needs width, height and an optional default surface"}
			}
			if nums[0] <= 0 || nums[1] <= 0 {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid size %dx%d", nums[0], nums[1])}
			}
			d.Width, d.Height = nums[0], nums[1]
			if len(nums) == 3 {
				d.DefaultSurface = Surface(nums[2])
			}
			stage = stageBlocks
		case stageBlocks, stageSurfaces:
			if len(nums) != 3 {
				return nil, &ParseError{Line: lineNo, Msg: "expected three integers"}
			}
			pos := C(nums[1], nums[2])
			if pos.X < 0 || pos.X >= d.Width || pos.Y < 0 || pos.Y >= d.Height {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("position %v outside %dx%d board", pos, d.Width, d.Height)}
			}
			if stage == stageBlocks {
				d.Blocks = append(d.Blocks, BlockSpec{Kind: Kind(nums[0]), Pos: pos})
			} else {
				d.Surfaces = append(d.Surfaces, SurfaceSpec{Surface: Surface(nums[0]), Pos: pos})
			}
		case stageTrailer:
			return nil, &ParseError{Line: lineNo, Msg: "unexpected content after surfaces"}
		}
	}
	if stage == stageHeader {
		return nil, &ParseError{Msg: "missing size line"}
	}
	return d, nil
}

func ints(line string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", f)
		}
		out[i] = n
	}
	return out, nil
}

// Load builds a board from a level definition.
func Load(defn string, cfg Config) (*Board, error) {
	d, err := ParseDefinition(defn)
	if err != nil {
		return nil, err
	}
	return FromDefinition(d, cfg)
}

// FromDefinition builds a board from a parsed definition.
func FromDefinition(d *Definition, cfg Config) (*Board, error) {
	b, err := NewBoard(d.Width, d.Height, d.DefaultSurface, cfg)
	if err != nil {
		return nil, err
	}
	if err := b.apply(d); err != nil {
		return nil, err
	}
	return b, nil
}

// Load replaces the board contents with a level definition. Selection is
// kept where it still fits. On error the board is left untouched.
func (b *Board) Load(defn string) (resized bool, err error) {
	d, err := ParseDefinition(defn)
	if err != nil {
		return false, err
	}
	resized = d.Width != b.width || d.Height != b.height
	return resized, b.apply(d)
}

// Validate checks that the size is positive and everything fits on the grid.
func (d *Definition) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("puzzle: invalid board size %dx%d", d.Width, d.Height)
	}
	inside := func(c Coord) bool { return c.X >= 0 && c.X < d.Width && c.Y >= 0 && c.Y < d.Height }
	for _, bs := range d.Blocks {
		if !inside(bs.Pos) {
			return fmt.Errorf("block %s at %v: %w", bs.Kind, bs.Pos, ErrOutOfBounds)
		}
	}
	for _, ss := range d.Surfaces {
		if !inside(ss.Pos) {
			return fmt.Errorf("surface %s at %v: %w", ss.Surface, ss.Pos, ErrOutOfBounds)
		}
	}
	return nil
}

// apply validates d and then rebuilds the board from it.
func (b *Board) apply(d *Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}

	b.clear(d.Width, d.Height, d.DefaultSurface)
	for _, bs := range d.Blocks {
		if _, err := b.PlaceBlock(bs.Kind, bs.Pos.X, bs.Pos.Y); err != nil {
			return err
		}
	}
	for _, ss := range d.Surfaces {
		b.cell(ss.Pos).surface = ss.Surface
	}
	b.initial = d.Clone()
	b.steps = 0
	return nil
}

// Reset restores the most recently loaded level.
func (b *Board) Reset() {
	if b.initial == nil {
		return
	}
	_ = b.apply(b.initial)
}

// Initial returns a copy of the most recently loaded definition.
func (b *Board) Initial() *Definition {
	return b.initial.Clone()
}

// Definition renders the current board in the plain-text format.
func (b *Board) Definition() string {
	return b.definition().String()
}

// definition snapshots the board. The most frequent surface becomes the
// default so that only the exceptions are listed.
func (b *Board) definition() *Definition {
	counts := make(map[Surface]int)
	for _, t := range b.cells {
		counts[t.surface]++
	}
	common := DefaultSurface
	for s, n := range counts {
		best := counts[common]
		if n > best || (n == best && preferSurface(s, common)) {
			common = s
		}
	}

	d := &Definition{Width: b.width, Height: b.height, DefaultSurface: common}
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			t := b.cell(C(x, y))
			if t.occupant != NoBlock {
				d.Blocks = append(d.Blocks, BlockSpec{Kind: b.blocks[t.occupant].kind, Pos: C(x, y)})
			}
			if t.surface != common {
				d.Surfaces = append(d.Surfaces, SurfaceSpec{Surface: t.surface, Pos: C(x, y)})
			}
		}
	}
	if b.initial != nil {
		d.Message = b.initial.Message
		d.Solutions = append([]string(nil), b.initial.Solutions...)
	}
	return d
}

// preferSurface breaks ties between equally common surfaces: blank first,
// then the lowest value.
func preferSurface(s, than Surface) bool {
	if than == DefaultSurface {
		return false
	}
	if s == DefaultSurface {
		return true
	}
	return s < than
}
