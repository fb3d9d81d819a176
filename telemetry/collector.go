package telemetry

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/traits"
)

// Collector accumulates events during one generation and produces GenerationStats.
type Collector struct {
	ticks     int
	births    int
	discarded int
	deaths    int
	meals     int
	moves     int
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordTick records one completed world tick.
func (c *Collector) RecordTick() {
	c.ticks++
}

// RecordStep records the per-tick organism outcomes.
func (c *Collector) RecordStep(meals, moves, deaths int) {
	c.meals += meals
	c.moves += moves
	c.deaths += deaths
}

// RecordBirth records an offspring admitted into the world.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDiscard records an offspring rejected because the world was at capacity.
func (c *Collector) RecordDiscard() {
	c.discarded++
}

// Births returns the admitted offspring count so far.
func (c *Collector) Births() int { return c.births }

// Discarded returns the rejected offspring count so far.
func (c *Collector) Discarded() int { return c.discarded }

// Flush produces GenerationStats from the counters and the final population,
// then resets counters for the next generation. seeded is the number of
// organisms the world started with.
func (c *Collector) Flush(generation, seeded int, organisms []components.Organism) GenerationStats {
	var (
		lives         []float64
		aging, eating []float64
		strains       = make(map[uint64]int)
		maxGeneration int
	)
	for i := range organisms {
		o := &organisms[i]
		if o.Generation > maxGeneration {
			maxGeneration = o.Generation
		}
		if !o.Alive() {
			continue
		}
		lives = append(lives, o.Life)
		aging = append(aging, float64(o.Genome.Traits.Get(traits.AgingRateDivisor).Magnitude))
		eating = append(eating, float64(o.Genome.Traits.Get(traits.EatingEfficiency).Magnitude))
		strains[o.Strain]++
	}

	mean, std, p10, p50, p90 := ComputeLifeStats(lives)

	var ratio float64
	if seeded > 0 {
		ratio = float64(len(lives)) / float64(seeded)
	}

	stats := GenerationStats{
		Generation:      generation,
		Ticks:           c.ticks,
		Seeded:          seeded,
		Survivors:       len(lives),
		Population:      len(organisms),
		SurvivalRatio:   ratio,
		Births:          c.births,
		Discarded:       c.discarded,
		Deaths:          c.deaths,
		Meals:           c.meals,
		Moves:           c.moves,
		LifeMean:        mean,
		LifeStd:         std,
		LifeP10:         p10,
		LifeP50:         p50,
		LifeP90:         p90,
		AgingMagnitude:  Mean(aging),
		EatingMagnitude: Mean(eating),
		ActiveStrains:   len(strains),
		DominantStrain:  dominant(strains),
		MaxGeneration:   maxGeneration,
	}

	*c = Collector{}
	return stats
}

// dominant returns the strain with the most members, lowest id on ties.
func dominant(strains map[uint64]int) uint64 {
	var best uint64
	bestCount := 0
	for id, n := range strains {
		if n > bestCount || (n == bestCount && id < best) {
			best, bestCount = id, n
		}
	}
	return best
}
