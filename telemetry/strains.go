package telemetry

import (
	"sort"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/traits"
)

// StrainStats summarizes one lineage at the end of a generation.
type StrainStats struct {
	Generation    int     `csv:"generation"`
	Rank          int     `csv:"rank"`
	Strain        uint64  `csv:"strain"`
	Name          string  `csv:"name"`
	Alive         int     `csv:"alive"`
	Total         int     `csv:"total"`
	MaxGeneration int     `csv:"max_generation"`
	MeanLife      float64 `csv:"mean_life"`
	AgingMag      float64 `csv:"aging_magnitude"`
	EatingMag     float64 `csv:"eating_magnitude"`
	Pattern       string  `csv:"pattern"` // behavior of the first living member
}

// Leaderboard ranks strains by living members, then total members, then id.
// At most top entries are returned; top <= 0 returns every strain.
func Leaderboard(generation int, organisms []components.Organism, top int) []StrainStats {
	type acc struct {
		stats         StrainStats
		lives         []float64
		aging, eating []float64
	}
	byStrain := make(map[uint64]*acc)

	for i := range organisms {
		o := &organisms[i]
		a, ok := byStrain[o.Strain]
		if !ok {
			a = &acc{stats: StrainStats{
				Generation: generation,
				Strain:     o.Strain,
				Name:       o.Name.String(),
			}}
			byStrain[o.Strain] = a
		}
		a.stats.Total++
		if o.Generation > a.stats.MaxGeneration {
			a.stats.MaxGeneration = o.Generation
		}
		if !o.Alive() {
			continue
		}
		if a.stats.Alive == 0 {
			a.stats.Pattern = o.Genome.Behavior.String()
		}
		a.stats.Alive++
		a.lives = append(a.lives, o.Life)
		a.aging = append(a.aging, float64(o.Genome.Traits.Get(traits.AgingRateDivisor).Magnitude))
		a.eating = append(a.eating, float64(o.Genome.Traits.Get(traits.EatingEfficiency).Magnitude))
	}

	out := make([]StrainStats, 0, len(byStrain))
	for _, a := range byStrain {
		a.stats.MeanLife = Mean(a.lives)
		a.stats.AgingMag = Mean(a.aging)
		a.stats.EatingMag = Mean(a.eating)
		out = append(out, a.stats)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Alive != out[j].Alive {
			return out[i].Alive > out[j].Alive
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Strain < out[j].Strain
	})

	if top > 0 && len(out) > top {
		out = out[:top]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
