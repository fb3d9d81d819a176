package systems

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
)

// MoveForward moves the organism one cell in its facing direction.
func MoveForward(o *components.Organism, b components.Bounds) {
	dx, dy := o.Direction.Delta()
	o.Position = o.Position.MoveRelative(dx, dy, b)
}

// TurnRight rotates the organism clockwise.
func TurnRight(o *components.Organism) {
	o.Direction = o.Direction.Right()
}

// TurnLeft rotates the organism counter-clockwise.
func TurnLeft(o *components.Organism) {
	o.Direction = o.Direction.Left()
}

// Act executes a single behavior action. TurnRandom picks left or right
// with equal probability. Returns true if the organism changed cell.
func Act(o *components.Organism, a genome.Action, b components.Bounds, rng genome.Rand) bool {
	switch a {
	case genome.MoveForward:
		MoveForward(o, b)
		return true
	case genome.TurnLeft:
		TurnLeft(o)
	case genome.TurnRight:
		TurnRight(o)
	case genome.TurnRandom:
		if rng.Intn(2) == 0 {
			TurnRight(o)
		} else {
			TurnLeft(o)
		}
	}
	return false
}
