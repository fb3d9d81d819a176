// Package evolve runs the generational loop: build a world, seed it from the
// previous generation's survivors, simulate, record statistics, repeat.
package evolve

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/systems"
	"github.com/pthm-cable/petri/telemetry"
)

// Runner owns the run-wide random source and output sinks.
type Runner struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	output    *telemetry.OutputManager
	bookmarks *telemetry.BookmarkDetector
	perf      *telemetry.PerfCollector

	// OnGeneration, if set, is called after each generation completes.
	OnGeneration func(w *sim.World, stats telemetry.GenerationStats)

	last  *sim.World
	stats []telemetry.GenerationStats
}

// NewRunner creates a runner. A zero cfg.Run.Seed picks a time-based seed.
// output may be nil to disable CSV output.
func NewRunner(cfg *config.Config, output *telemetry.OutputManager) *Runner {
	seed := cfg.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg:       cfg,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		output:    output,
		bookmarks: telemetry.NewBookmarkDetector(cfg.World.CarryingCapacity),
		perf:      telemetry.NewPerfCollector(cfg.Run.TicksPerGeneration),
	}
}

// Seed returns the seed actually used.
func (r *Runner) Seed() int64 { return r.seed }

// Last returns the most recently simulated world, or nil before Run.
func (r *Runner) Last() *sim.World { return r.last }

// Stats returns statistics for every completed generation.
func (r *Runner) Stats() []telemetry.GenerationStats { return r.stats }

// Perf returns step timing aggregated over the most recent ticks.
func (r *Runner) Perf() telemetry.PerfStats { return r.perf.Stats() }

// Run simulates cfg.Run.Generations generations. Cancellation is checked
// between generations; a generation in progress always completes.
func (r *Runner) Run(ctx context.Context) ([]telemetry.GenerationStats, error) {
	cfg := r.cfg
	slog.Info("run starting",
		"seed", r.seed,
		"generations", cfg.Run.Generations,
		"ticks_per_generation", cfg.Run.TicksPerGeneration,
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"capacity", cfg.World.CarryingCapacity,
	)

	for gen := 1; gen <= cfg.Run.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return r.stats, fmt.Errorf("generation %d: %w", gen, err)
		}

		stats, err := r.runGeneration(gen)
		if err != nil {
			return r.stats, fmt.Errorf("generation %d: %w", gen, err)
		}
		r.stats = append(r.stats, stats)

		if stats.Extinct() && cfg.Run.StopOnExtinction {
			slog.Info("run stopped on extinction", "generation", gen)
			break
		}
	}

	slog.Info("run finished", "generations", len(r.stats), "perf", r.perf.Stats())
	return r.stats, nil
}

func (r *Runner) runGeneration(gen int) (telemetry.GenerationStats, error) {
	w, err := r.newWorld()
	if err != nil {
		return telemetry.GenerationStats{}, err
	}

	var seeded int
	if r.last == nil {
		seeded = r.addFounders(w)
	} else {
		seeded = w.SpawnGenerationFrom(r.last)
	}

	if err := w.Simulate(r.cfg.Run.TicksPerGeneration); err != nil {
		return telemetry.GenerationStats{}, err
	}

	organisms := w.Organisms()
	stats := w.Collector().Flush(gen, seeded, organisms)
	stats.LogStats()

	if err := r.output.WriteGeneration(stats); err != nil {
		return stats, err
	}
	if err := r.output.WriteStrains(telemetry.Leaderboard(gen, organisms, r.cfg.Telemetry.StrainTop)); err != nil {
		return stats, err
	}
	for _, b := range r.bookmarks.Check(stats) {
		b.LogBookmark()
		if err := r.output.WriteBookmark(b); err != nil {
			return stats, err
		}
	}

	if r.OnGeneration != nil {
		r.OnGeneration(w, stats)
	}
	r.last = w
	return stats, nil
}

func (r *Runner) newWorld() (*sim.World, error) {
	cfg := r.cfg
	policy, err := genome.PolicyFromName(cfg.Mutation.Policy, cfg.Mutation.Rate)
	if err != nil {
		return nil, err
	}

	mode := sim.HistoryOff
	if cfg.History.Save {
		mode = sim.HistoryMode(cfg.History.Mode)
	}

	w, err := sim.New(sim.Options{
		Width:         cfg.World.Width,
		Height:        cfg.World.Height,
		Capacity:      cfg.World.CarryingCapacity,
		PatternLength: cfg.Genome.PatternLength,
		Weights:       cfg.Derived.Weights,
		Rand:          r.rng,
		LifeThreshold: cfg.Reproduction.LifeThreshold,
		BirthChance:   cfg.Reproduction.Chance,
		Mutation:      policy,
		History:       mode,
		Perf:          r.perf,
	})
	if err != nil {
		return nil, err
	}

	food, err := systems.NewFoodSource(FoodOptions(cfg, r.seed), r.rng, w.Bounds())
	if err != nil {
		return nil, err
	}
	w.SetFood(food)
	return w, nil
}

// addFounders places cfg.Population.Initial generation-1 organisms at the
// grid centre, each with a name drawn from the embedded list. The count is
// capped at the world's capacity.
func (r *Runner) addFounders(w *sim.World) int {
	n := min(r.cfg.Population.Initial, w.Capacity())
	for i := 0; i < n; i++ {
		w.AddOrganism(string(components.PickName(r.rng)), nil)
	}
	return n
}

// FoodOptions translates the food config section. The run seed drives the
// noise field so every generation sees the same landscape.
func FoodOptions(cfg *config.Config, seed int64) systems.FoodOptions {
	return systems.FoodOptions{
		Mode:           cfg.Food.Mode,
		Plants:         cfg.Food.Plants,
		Modulus:        cfg.Food.Modulus,
		XFactor:        cfg.Food.XFactor,
		YFactor:        cfg.Food.YFactor,
		NoiseScale:     cfg.Food.NoiseScale,
		NoiseThreshold: cfg.Food.NoiseThreshold,
		Seed:           seed,
	}
}
