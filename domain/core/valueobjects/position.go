package valueobjects

import (
	"fmt"
	"math"
)

// Position is a value object representing a node's top-left corner on the
// board canvas, in canvas-local pixels
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position. Canvas coordinates are never rejected.
func NewPosition(x, y float64) Position {
	return Position{x: x, y: y}
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// Offset returns the vector from p to other
func (p Position) Offset(other Position) (dx, dy float64) {
	return other.x - p.x, other.y - p.y
}

// Translate moves the position by the given offsets
func (p Position) Translate(dx, dy float64) Position {
	return Position{x: p.x + dx, y: p.y + dy}
}

// IsFinite reports whether both coordinates are finite numbers
func (p Position) IsFinite() bool {
	return isValidCoordinate(p.x) && isValidCoordinate(p.y)
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon
}

// String renders the position as "(x, y)"
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.x, p.y)
}

// isValidCoordinate checks if a coordinate is a valid finite number
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
