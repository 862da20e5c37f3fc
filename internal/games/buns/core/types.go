// Package core provides the movement engine for the Bunburrows puzzle game.
// This package is UI-agnostic and deterministic: one input is fully resolved
// before the next one is accepted, and nothing in here blocks or logs.
package core

import "fmt"

// Level dimensions. Every level is exactly Width x Height tiles.
const (
	Width  = 15
	Height = 9
)

// Direction is one of the four movement directions.
// The declaration order is the rotation cycle used by TurnLeft/TurnRight;
// creature candidate priority depends on it.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// DirectionCount is the number of directions.
const DirectionCount = 4

// Directions returns all directions in cycle order.
func Directions() []Direction {
	return []Direction{Up, Left, Down, Right}
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// TurnLeft advances one step in the cycle.
func (d Direction) TurnLeft() Direction {
	return (d + 1) % DirectionCount
}

// TurnRight goes back one step in the cycle.
func (d Direction) TurnRight() Direction {
	return (d + DirectionCount - 1) % DirectionCount
}

// Opposite advances two steps in the cycle.
func (d Direction) Opposite() Direction {
	return (d + 2) % DirectionCount
}

// Offset returns the unit vector for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Offset() Position {
	switch d {
	case Up:
		return Position{X: 0, Y: -1}
	case Left:
		return Position{X: -1, Y: 0}
	case Down:
		return Position{X: 0, Y: 1}
	case Right:
		return Position{X: 1, Y: 0}
	default:
		panic(fmt.Sprintf("core: invalid direction %d", d))
	}
}

// Position is a signed, bounded grid coordinate.
// X increases to the right, Y increases downward.
type Position struct {
	X int8
	Y int8
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: int8(x), Y: int8(y)}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less orders positions row-major: by Y first, then by X.
func (p Position) Less(other Position) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	o := d.Offset()
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Add returns the sum of two positions.
// ok is false if either coordinate leaves the int8 range.
func (p Position) Add(other Position) (sum Position, ok bool) {
	x := int16(p.X) + int16(other.X)
	y := int16(p.Y) + int16(other.Y)
	if x < -128 || x > 127 || y < -128 || y > 127 {
		return Position{}, false
	}
	return Position{X: int8(x), Y: int8(y)}, true
}

// InBounds returns true if the position is a valid level index.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// index converts an in-bounds position to a flat row-major index.
func (p Position) index() int {
	return int(p.Y)*Width + int(p.X)
}

// positionAt converts a flat row-major index back to a position.
func positionAt(i int) Position {
	return P(i%Width, i/Width)
}

// DistanceToStraightLine reports how a and b are aligned.
// If they share exactly one axis it returns the direction pointing from b
// toward a and the distance along the shared line. If they share no axis ok
// is false. If a == b the distance is 0 and the direction carries no meaning.
func DistanceToStraightLine(a, b Position) (dir Direction, dist int, ok bool) {
	switch {
	case a.X == b.X:
		dy := int(a.Y) - int(b.Y)
		if dy > 0 {
			return Down, dy, true
		}
		return Up, -dy, true
	case a.Y == b.Y:
		dx := int(a.X) - int(b.X)
		if dx > 0 {
			return Right, dx, true
		}
		return Left, -dx, true
	default:
		return Up, 0, false
	}
}
