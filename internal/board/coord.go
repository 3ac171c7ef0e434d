package board

import "fmt"

// Coord represents a 2D coordinate on the board.
// X increases to the right, Y increases downward; gravity pulls toward larger Y.
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

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// less orders coordinates row-major.
func (c Coord) less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// IsAdjacent reports whether a and b are orthogonal neighbours:
// distance exactly 1 on exactly one axis.
func IsAdjacent(a, b Coord) bool {
	return a.Manhattan(b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
