package components

import (
	"fmt"
	"math"
)

// Coordinate is an integer grid position on a toroidal grid.
type Coordinate struct {
	X, Y int
}

// Bounds is the grid extent used for wrapping.
type Bounds struct {
	Width, Height int
}

// Center returns the default spawn cell.
func (b Bounds) Center() Coordinate {
	return Coordinate{X: b.Width / 2, Y: b.Height / 2}
}

// Contains reports whether c lies inside the grid.
func (b Bounds) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// MoveRelative adds the deltas and wraps each axis into [0, width) / [0, height).
func (c Coordinate) MoveRelative(dx, dy int, b Bounds) Coordinate {
	return Coordinate{
		X: wrap(c.X+dx, b.Width),
		Y: wrap(c.Y+dy, b.Height),
	}
}

// Distance returns the straight-line distance on unwrapped coordinates.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// Direction is an organism's facing.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	numDirections
)

// Directions returns every facing in clockwise order.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// Right rotates 90 degrees clockwise (N->E->S->W->N).
func (d Direction) Right() Direction {
	return (d + 1) % numDirections
}

// Left rotates 90 degrees counter-clockwise.
func (d Direction) Left() Direction {
	return (d + numDirections - 1) % numDirections
}

// Delta returns the unit step for moving forward.
// North increases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Glyph returns the map character for an organism facing d.
func (d Direction) Glyph() byte {
	switch d {
	case North:
		return '^'
	case South:
		return 'v'
	case East:
		return '>'
	case West:
		return '<'
	}
	return '?'
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}
