package sim

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/systems"
)

// State is a read-only snapshot of a world at one tick.
type State struct {
	Tick      int
	Bounds    components.Bounds
	Organisms []components.Organism
	Food      systems.FoodSource
}

// Clone returns a deep copy. The food source is shared; worlds never mutate
// a source once it has been installed.
func (s State) Clone() State {
	orgs := make([]components.Organism, len(s.Organisms))
	for i := range s.Organisms {
		orgs[i] = s.Organisms[i].Clone()
	}
	s.Organisms = orgs
	return s
}

// AliveCount returns the number of living organisms.
func (s State) AliveCount() int {
	n := 0
	for i := range s.Organisms {
		if s.Organisms[i].Alive() {
			n++
		}
	}
	return n
}

// Strains counts living organisms per strain.
func (s State) Strains() map[uint64]int {
	out := make(map[uint64]int)
	for i := range s.Organisms {
		if s.Organisms[i].Alive() {
			out[s.Organisms[i].Strain]++
		}
	}
	return out
}

// At returns the organism occupying pos, preferring the most recently added
// living one. Renderers use it to pick one glyph per cell.
func (s State) At(pos components.Coordinate) (components.Organism, bool) {
	var (
		found components.Organism
		ok    bool
	)
	for i := range s.Organisms {
		o := &s.Organisms[i]
		if o.Position != pos {
			continue
		}
		if !ok || o.Alive() || !found.Alive() {
			found, ok = *o, true
		}
	}
	return found, ok
}

// FoodPresent reports whether food lies on pos in this frame.
func (s State) FoodPresent(pos components.Coordinate) bool {
	if s.Food == nil {
		return false
	}
	return s.Food.Present(pos)
}
