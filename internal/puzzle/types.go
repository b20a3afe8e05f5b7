// Package puzzle provides the simulation core for the sliding-block puzzle.
// This package is UI-agnostic and deterministic: it owns the board, the
// blocks on it and the per-step force resolution that decides which blocks move.
package puzzle

import "strconv"

// Dir represents one of the four push directions.
// The numbering matters: Axis is Dir%2 and directions above Up point
// towards increasing coordinates.
type Dir uint8

const (
	DirLeft Dir = iota
	DirUp
	DirRight
	DirDown
)

// Dirs lists all directions in numeric order.
var Dirs = [4]Dir{DirLeft, DirUp, DirRight, DirDown}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Axis returns the axis this direction lies on.
func (d Dir) Axis() Axis {
	return Axis(d % 2)
}

// Sign returns -1 for Left/Up and +1 for Right/Down.
func (d Dir) Sign() int {
	if d > DirUp {
		return 1
	}
	return -1
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// DirFromForce returns the direction of a signed force on an axis.
func DirFromForce(axis Axis, force int) Dir {
	if force > 0 {
		return Dir(axis) + 2
	}
	return Dir(axis)
}

// SignedForce converts a direction and an unsigned magnitude into an axis
// and a signed force.
func SignedForce(d Dir, magnitude int) (Axis, int) {
	return d.Axis(), d.Sign() * magnitude
}

// Axis is either Horizontal or Vertical.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Axes lists both axes in order.
var Axes = [2]Axis{Horizontal, Vertical}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	return 1 - a
}

func (a Axis) String() string {
	if a == Horizontal {
		return "x"
	}
	return "y"
}

// Kind is a block type. Known kinds have simulation meaning; any other value
// is a custom kind that behaves like a standard block and is preserved as-is.
type Kind int

const (
	KindPlayer Kind = iota
	KindImmovable
	KindStandard
	KindSlide
	KindBounce
)

// IsCustom reports whether the kind has no built-in behaviour.
func (k Kind) IsCustom() bool {
	return k < KindPlayer || k > KindBounce
}

// RetainsForce reports whether blocks of this kind keep moving after a move.
func (k Kind) RetainsForce() bool {
	return k == KindSlide || k == KindBounce
}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindImmovable:
		return "immovable"
	case KindStandard:
		return "standard"
	case KindSlide:
		return "slide"
	case KindBounce:
		return "bounce"
	default:
		return "custom(" + strconv.Itoa(int(k)) + ")"
	}
}

// Surface identifies what a tile is made of. Goal surfaces are >= 0 and
// match the Kind that has to rest on them.
type Surface int

const (
	SurfaceBlank Surface = -1 - iota
	SurfaceSlide
	SurfaceLeft
	SurfaceUp
	SurfaceRight
	SurfaceDown
)

// DefaultSurface is used when a definition does not name one.
const DefaultSurface = SurfaceBlank

// IsGoal reports whether the surface is a goal for some block kind.
func (s Surface) IsGoal() bool {
	return s >= 0
}

// GoalKind returns the block kind this goal surface expects.
func (s Surface) GoalKind() Kind {
	return Kind(s)
}

// Arrow returns the direction of an arrow surface.
func (s Surface) Arrow() (Dir, bool) {
	switch s {
	case SurfaceLeft:
		return DirLeft, true
	case SurfaceUp:
		return DirUp, true
	case SurfaceRight:
		return DirRight, true
	case SurfaceDown:
		return DirDown, true
	default:
		return 0, false
	}
}

func (s Surface) String() string {
	switch s {
	case SurfaceBlank:
		return "blank"
	case SurfaceSlide:
		return "slide"
	case SurfaceLeft:
		return "arrow-left"
	case SurfaceUp:
		return "arrow-up"
	case SurfaceRight:
		return "arrow-right"
	case SurfaceDown:
		return "arrow-down"
	}
	if s.IsGoal() {
		return "goal(" + strconv.Itoa(int(s)) + ")"
	}
	return "surface(" + strconv.Itoa(int(s)) + ")"
}
