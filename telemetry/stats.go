// Package telemetry provides per-generation statistics, strain leaderboards, bookmarks and CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one generation's world.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"`

	// Population
	Seeded        int     `csv:"seeded"`
	Survivors     int     `csv:"survivors"`
	Population    int     `csv:"population"` // alive and dead organisms at generation end
	SurvivalRatio float64 `csv:"survival_ratio"`

	// Events during the generation
	Births    int `csv:"births"`
	Discarded int `csv:"discarded"` // offspring rejected at capacity
	Deaths    int `csv:"deaths"`
	Meals     int `csv:"meals"`
	Moves     int `csv:"moves"`

	// Life distribution over survivors
	LifeMean float64 `csv:"life_mean"`
	LifeStd  float64 `csv:"life_std"`
	LifeP10  float64 `csv:"life_p10"`
	LifeP50  float64 `csv:"life_p50"`
	LifeP90  float64 `csv:"life_p90"`

	// Mean trait magnitudes over survivors
	AgingMagnitude  float64 `csv:"aging_magnitude"`
	EatingMagnitude float64 `csv:"eating_magnitude"`

	// Lineage
	ActiveStrains  int    `csv:"active_strains"`
	DominantStrain uint64 `csv:"dominant_strain"`
	MaxGeneration  int    `csv:"max_generation"`
}

// Extinct reports whether no organism survived the generation.
func (s GenerationStats) Extinct() bool {
	return s.Survivors == 0
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLifeStats calculates mean, population standard deviation and percentiles.
func ComputeLifeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	// Rounding can push the variance of identical values just below zero.
	std = math.Sqrt(math.Max(variance, 0))

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("seeded", s.Seeded),
		slog.Int("survivors", s.Survivors),
		slog.Int("population", s.Population),
		slog.Float64("survival_ratio", s.SurvivalRatio),
		slog.Int("births", s.Births),
		slog.Int("discarded", s.Discarded),
		slog.Int("deaths", s.Deaths),
		slog.Int("meals", s.Meals),
		slog.Int("moves", s.Moves),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_std", s.LifeStd),
		slog.Float64("life_p10", s.LifeP10),
		slog.Float64("life_p50", s.LifeP50),
		slog.Float64("life_p90", s.LifeP90),
		slog.Float64("aging_magnitude", s.AgingMagnitude),
		slog.Float64("eating_magnitude", s.EatingMagnitude),
		slog.Int("active_strains", s.ActiveStrains),
		slog.Uint64("dominant_strain", s.DominantStrain),
		slog.Int("max_generation", s.MaxGeneration),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"seeded", s.Seeded,
		"survivors", s.Survivors,
		"survival_ratio", s.SurvivalRatio,
		"births", s.Births,
		"discarded", s.Discarded,
		"deaths", s.Deaths,
		"life_mean", s.LifeMean,
		"aging_magnitude", s.AgingMagnitude,
		"eating_magnitude", s.EatingMagnitude,
		"active_strains", s.ActiveStrains,
	)
}
