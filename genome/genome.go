// Package genome defines the heritable package carried by every organism:
// a trait set and a fixed movement program.
package genome

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/petri/traits"
)

// Rand is the random source used across the simulation.
// *math/rand.Rand satisfies it; seeding it makes runs reproducible.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Action is one step of a behavior program.
type Action uint8

const (
	MoveForward Action = iota
	TurnLeft
	TurnRight
	TurnRandom // resolved to a left or right turn when executed

	numActions
)

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{MoveForward, TurnLeft, TurnRight, TurnRandom}
}

// String returns a short action name.
func (a Action) String() string {
	switch a {
	case MoveForward:
		return "forward"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	case TurnRandom:
		return "random"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Glyph returns a single-character code for compact pattern display.
func (a Action) Glyph() byte {
	switch a {
	case MoveForward:
		return 'F'
	case TurnLeft:
		return 'L'
	case TurnRight:
		return 'R'
	case TurnRandom:
		return '?'
	default:
		return '-'
	}
}

// Behavior is a fixed-length action program replayed cyclically.
type Behavior struct {
	Pattern []Action
}

// NewBehavior fills a pattern of the given length with independent uniform draws.
func NewBehavior(rng Rand, length int) Behavior {
	p := make([]Action, length)
	for i := range p {
		p[i] = Action(rng.Intn(int(numActions)))
	}
	return Behavior{Pattern: p}
}

// Len returns the pattern length.
func (b Behavior) Len() int { return len(b.Pattern) }

// At returns the action at program counter pc.
func (b Behavior) At(pc int) Action { return b.Pattern[pc] }

// Clone returns a copy that shares no storage with b.
func (b Behavior) Clone() Behavior {
	p := make([]Action, len(b.Pattern))
	copy(p, b.Pattern)
	return Behavior{Pattern: p}
}

// String renders the pattern as glyphs, e.g. "FFL?R".
func (b Behavior) String() string {
	var sb strings.Builder
	sb.Grow(len(b.Pattern))
	for _, a := range b.Pattern {
		sb.WriteByte(a.Glyph())
	}
	return sb.String()
}

// Genome is the trait set plus behavior inherited by offspring.
type Genome struct {
	Traits   traits.TraitSet
	Behavior Behavior
}

// New creates a fresh genome with evenly distributed traits and a random program.
func New(rng Rand, patternLength int, w traits.Weights) Genome {
	return Genome{
		Traits:   traits.NewEven(w),
		Behavior: NewBehavior(rng, patternLength),
	}
}

// Clone returns an independent copy of g.
func (g Genome) Clone() Genome {
	return Genome{
		Traits:   g.Traits,
		Behavior: g.Behavior.Clone(),
	}
}

// Mutate picks two distinct traits uniformly and transfers one unit of
// magnitude between them. ok is false when the transfer was rolled back.
func (g *Genome) Mutate(rng Rand) (from, to traits.TraitID, ok bool) {
	n := traits.Count()
	from = traits.TraitID(rng.Intn(n))
	// Draw from the remaining n-1 ids so the pair is always distinct.
	to = traits.TraitID(rng.Intn(n - 1))
	if to >= from {
		to++
	}
	ok = g.Traits.Transfer(from, to)
	return from, to, ok
}

// String summarizes the genome for logs and labels.
func (g Genome) String() string {
	return fmt.Sprintf("[%s] %s", strings.Join(g.Traits.Names(), " "), g.Behavior)
}
