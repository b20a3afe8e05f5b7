package puzzle

import "fmt"

// Coord represents a tile position on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Get returns the component of the coordinate on an axis.
func (c Coord) Get(a Axis) int {
	if a == Horizontal {
		return c.X
	}
	return c.Y
}

// With returns a copy with the component on an axis replaced.
func (c Coord) With(a Axis, v int) Coord {
	if a == Horizontal {
		c.X = v
	} else {
		c.Y = v
	}
	return c
}

// Toward returns the tile reached by moving one step along every axis
// with a non-zero force, following the sign of each component.
func (c Coord) Toward(force [2]int) Coord {
	for _, a := range Axes {
		if force[a] != 0 {
			c = c.With(a, c.Get(a)+sign(force[a]))
		}
	}
	return c
}

// Diagonal reports whether other differs from c on both axes.
func (c Coord) Diagonal(other Coord) bool {
	return c.X != other.X && c.Y != other.Y
}

// less orders coordinates row by row.
func (c Coord) less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
