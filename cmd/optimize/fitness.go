package main

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/evolve"
	"github.com/pthm-cable/petri/telemetry"
)

// occupancyWeight scales how much average fill of the carrying capacity
// adds on top of persistence.
const occupancyWeight = 0.5

// FitnessEvaluator runs headless evolutionary runs and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig config.Config

	mu          sync.Mutex
	bestFitness float64
	bestStats   []telemetry.GenerationStats
	lastScore   runScore
}

// runScore summarizes one evolutionary run.
type runScore struct {
	persistence float64 // fraction of generations ending with survivors
	occupancy   float64 // mean survivors / carrying capacity
}

// NewFitnessEvaluator creates a new evaluator. The base config is copied.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	base := *baseCfg
	base.History.Save = false
	base.Run.StopOnExtinction = true
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  base,
		bestFitness: math.Inf(1),
	}
}

// BestStats returns the generation statistics of the best seed from the
// best evaluation so far.
func (fe *FitnessEvaluator) BestStats() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastScore returns the averaged persistence and occupancy of the most
// recent evaluation.
func (fe *FitnessEvaluator) LastScore() (persistence, occupancy float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore.persistence, fe.lastScore.occupancy
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel, each with its own runner and random source.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	type seedResult struct {
		score runScore
		stats []telemetry.GenerationStats
		err   error
	}

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			cfg := fe.configFor(x, s)
			stats, err := evolve.NewRunner(cfg, nil).Run(context.Background())
			results[idx] = seedResult{
				score: scoreRun(stats, cfg.Run.Generations, cfg.World.CarryingCapacity),
				stats: stats,
				err:   err,
			}
		}(i, seed)
	}
	wg.Wait()

	var total runScore
	best := math.Inf(1)
	var bestSeedStats []telemetry.GenerationStats
	for _, r := range results {
		f := math.Inf(1)
		if r.err == nil {
			f = fitness(r.score)
		}
		total.persistence += r.score.persistence
		total.occupancy += r.score.occupancy
		if f < best {
			best = f
			bestSeedStats = r.stats
		}
	}

	n := float64(len(fe.seeds))
	avg := runScore{persistence: total.persistence / n, occupancy: total.occupancy / n}
	avgFitness := fitness(avg)

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestStats = bestSeedStats
	}
	fe.lastScore = avg
	fe.mu.Unlock()

	return avgFitness
}

// configFor copies the base config with x applied and the given seed.
func (fe *FitnessEvaluator) configFor(x []float64, seed int64) *config.Config {
	cfg := fe.baseConfig
	cfg.Run.Seed = seed
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// fitness is -(persistence x (1 + w x occupancy)). Persistence dominates;
// occupancy separates configs that survive equally long.
func fitness(s runScore) float64 {
	return -(s.persistence * (1 + occupancyWeight*s.occupancy))
}

// scoreRun summarizes a run that may have stopped early on extinction.
func scoreRun(stats []telemetry.GenerationStats, generations, capacity int) runScore {
	if generations <= 0 || capacity <= 0 || len(stats) == 0 {
		return runScore{}
	}

	alive := 0
	fill := make([]float64, len(stats))
	for i, s := range stats {
		if !s.Extinct() {
			alive++
		}
		fill[i] = float64(s.Survivors) / float64(capacity)
	}
	return runScore{
		persistence: float64(alive) / float64(generations),
		occupancy:   stat.Mean(fill, nil),
	}
}
