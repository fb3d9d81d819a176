package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
)

// Tally counts per-tick outcomes across the population.
type Tally struct {
	Stepped int
	Ate     int
	Moved   int
	Died    int
}

// OrganismSystem advances every organism stored in the ECS world by one tick.
type OrganismSystem struct {
	filter *ecs.Filter1[components.Organism]
}

// NewOrganismSystem creates the system for the given world.
func NewOrganismSystem(w *ecs.World) *OrganismSystem {
	return &OrganismSystem{
		filter: ecs.NewFilter1[components.Organism](w),
	}
}

// Update steps each organism in insertion order, querying food at the
// organism's cell before it acts.
func (s *OrganismSystem) Update(food FoodSource, b components.Bounds, rng genome.Rand) Tally {
	var t Tally
	query := s.filter.Query()
	for query.Next() {
		org := query.Get()
		if !org.Alive() {
			continue
		}
		out := Step(org, food.Present(org.Position), b, rng)
		t.Stepped++
		if out.Ate {
			t.Ate++
		}
		if out.Moved {
			t.Moved++
		}
		if out.Died {
			t.Died++
		}
	}
	return t
}
