package systems

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
)

// Outcome records what happened to an organism during one tick.
type Outcome struct {
	Ate   bool
	Moved bool
	Died  bool
}

// NewOrganism creates a founding (generation 1) organism. Its strain is its own id.
func NewOrganism(id uint64, name components.Name, pos components.Coordinate, dir components.Direction, g genome.Genome) components.Organism {
	return components.Organism{
		ID:         id,
		Strain:     id,
		Generation: 1,
		Name:       name,
		Life:       components.MaxLife,
		Direction:  dir,
		Position:   pos,
		Genome:     g,
	}
}

// RandomDirection draws a facing uniformly.
func RandomDirection(rng genome.Rand) components.Direction {
	dirs := components.Directions()
	return dirs[rng.Intn(len(dirs))]
}

// Step advances a living organism by one tick: eat, act, advance the
// program counter, then age. Dead organisms are left untouched.
func Step(o *components.Organism, foodPresent bool, b components.Bounds, rng genome.Rand) Outcome {
	var out Outcome
	if !o.Alive() {
		return out
	}

	if foodPresent {
		Feed(o)
		out.Ate = true
	}

	out.Moved = Act(o, o.Genome.Behavior.At(o.PC), b, rng)

	o.PC++
	if o.PC >= o.Genome.Behavior.Len() {
		o.PC = 0
	}

	out.Died = Age(o)
	return out
}

// Divide produces one offspring: an exact genome copy at the parent's cell
// with full life, the next generation number and the parent's strain.
// The child is turned right once so it does not share the parent's heading.
func Divide(parent *components.Organism, id uint64) components.Organism {
	child := components.Organism{
		ID:         id,
		Strain:     parent.Strain,
		Generation: parent.Generation + 1,
		Name:       parent.Name,
		Life:       components.MaxLife,
		Direction:  parent.Direction,
		Position:   parent.Position,
		Genome:     parent.Genome.Clone(),
	}
	TurnRight(&child)
	return child
}

// SpawnFromAncestor creates a successor of a surviving organism for the next
// generation's world, resetting its position, facing, life and program counter.
func SpawnFromAncestor(parent *components.Organism, id uint64, pos components.Coordinate, dir components.Direction) components.Organism {
	return components.Organism{
		ID:         id,
		Strain:     parent.Strain,
		Generation: parent.Generation + 1,
		Name:       parent.Name,
		Life:       components.MaxLife,
		Direction:  dir,
		Position:   pos,
		Genome:     parent.Genome.Clone(),
	}
}
