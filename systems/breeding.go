package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
)

// Reproduction defaults.
const (
	DefaultLifeThreshold = 100.0
	DefaultBirthChance   = 0.01
)

// BreedingSystem runs the reproduction sweep. It only materializes
// offspring; admitting them into the world is the caller's job, after the
// query has been released.
type BreedingSystem struct {
	filter *ecs.Filter1[components.Organism]

	LifeThreshold float64
	Chance        float64
	Policy        genome.MutationPolicy
}

// NewBreedingSystem creates a breeding system with default thresholds and no mutation.
func NewBreedingSystem(w *ecs.World) *BreedingSystem {
	return &BreedingSystem{
		filter:        ecs.NewFilter1[components.Organism](w),
		LifeThreshold: DefaultLifeThreshold,
		Chance:        DefaultBirthChance,
		Policy:        genome.Never{},
	}
}

// Update draws one reproduction trial for every organism with life above
// the threshold and returns the offspring of successful trials in
// population order. nextID is called once per offspring.
func (s *BreedingSystem) Update(rng genome.Rand, nextID func() uint64) []components.Organism {
	var offspring []components.Organism

	query := s.filter.Query()
	for query.Next() {
		org := query.Get()
		if org.Life <= s.LifeThreshold {
			continue
		}
		if rng.Float64() >= s.Chance {
			continue
		}
		child := Divide(org, nextID())
		genome.Apply(s.Policy, rng, genome.EventBirth, &child.Genome)
		offspring = append(offspring, child)
	}

	return offspring
}
