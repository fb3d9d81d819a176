package genome

import (
	"fmt"
	"strings"
)

// Event identifies the point in an organism's life where a genome is copied.
type Event uint8

const (
	EventBirth Event = iota + 1 // offspring produced by division
	EventSeed                   // successor seeded into the next generation
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventBirth:
		return "birth"
	case EventSeed:
		return "seed"
	default:
		return "unknown"
	}
}

// MutationPolicy decides whether a copied genome is mutated.
type MutationPolicy interface {
	ShouldMutate(rng Rand, e Event) bool
}

// Never leaves every copy unchanged, so offspring are exact genetic copies.
type Never struct{}

// ShouldMutate always returns false.
func (Never) ShouldMutate(Rand, Event) bool { return false }

// AtRate mutates copies made at a matching event with probability Rate.
type AtRate struct {
	Event Event
	Rate  float64
}

// ShouldMutate draws one Bernoulli(Rate) trial for matching events.
func (p AtRate) ShouldMutate(rng Rand, e Event) bool {
	if e != p.Event || p.Rate <= 0 {
		return false
	}
	return rng.Float64() < p.Rate
}

// Apply mutates g when the policy fires. Reports whether a mutation was attempted.
func Apply(p MutationPolicy, rng Rand, e Event, g *Genome) bool {
	if p == nil || !p.ShouldMutate(rng, e) {
		return false
	}
	g.Mutate(rng)
	return true
}

// PolicyFromName builds a policy from its configuration name: "none", "birth" or "generation".
func PolicyFromName(name string, rate float64) (MutationPolicy, error) {
	switch strings.ToLower(name) {
	case "", "none", "never":
		return Never{}, nil
	case "birth":
		return AtRate{Event: EventBirth, Rate: rate}, nil
	case "generation", "seed":
		return AtRate{Event: EventSeed, Rate: rate}, nil
	default:
		return nil, fmt.Errorf("unknown mutation policy %q", name)
	}
}
