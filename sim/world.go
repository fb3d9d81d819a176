// Package sim drives a population of grid organisms tick by tick.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/systems"
	"github.com/pthm-cable/petri/telemetry"
	"github.com/pthm-cable/petri/traits"
)

// Options configures a World.
type Options struct {
	Width, Height int
	Capacity      int // max simultaneously alive organisms
	PatternLength int
	Weights       traits.Weights

	// Rand overrides Seed when set; worlds of successive generations share one source.
	Seed int64
	Rand *rand.Rand

	LifeThreshold float64
	BirthChance   float64
	Mutation      genome.MutationPolicy

	History   HistoryMode
	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
}

// DefaultOptions returns a small world with the default reproduction rules.
func DefaultOptions() Options {
	return Options{
		Width:         80,
		Height:        30,
		Capacity:      100,
		PatternLength: 10,
		Weights:       traits.DefaultWeights(),
		LifeThreshold: systems.DefaultLifeThreshold,
		BirthChance:   systems.DefaultBirthChance,
		Mutation:      genome.Never{},
	}
}

// World owns the organism population, food source, random source and id counter.
// Organisms live as entities of an ECS world; they are never removed, so
// entity iteration order is insertion order.
type World struct {
	ecs    *ecs.World
	orgMap *ecs.Map1[components.Organism]
	filter *ecs.Filter1[components.Organism]

	organisms *systems.OrganismSystem
	breeding  *systems.BreedingSystem

	rng      *rand.Rand
	bounds   components.Bounds
	capacity int
	length   int
	weights  traits.Weights
	mutation genome.MutationPolicy
	food     systems.FoodSource

	nextID  uint64
	tick    int
	count   int
	alive   int
	history History

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
}

// New creates an empty world with no food.
func New(opts Options) (*World, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("world extent must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("carrying capacity must be positive, got %d", opts.Capacity)
	}
	if opts.PatternLength <= 0 {
		return nil, fmt.Errorf("pattern length must be positive, got %d", opts.PatternLength)
	}

	history, err := NewHistory(opts.History)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	mutation := opts.Mutation
	if mutation == nil {
		mutation = genome.Never{}
	}
	collector := opts.Collector
	if collector == nil {
		collector = telemetry.NewCollector()
	}

	w := ecs.NewWorld()
	breeding := systems.NewBreedingSystem(w)
	breeding.LifeThreshold = opts.LifeThreshold
	breeding.Chance = opts.BirthChance
	breeding.Policy = mutation

	return &World{
		ecs:       w,
		orgMap:    ecs.NewMap1[components.Organism](w),
		filter:    ecs.NewFilter1[components.Organism](w),
		organisms: systems.NewOrganismSystem(w),
		breeding:  breeding,
		rng:       rng,
		bounds:    components.Bounds{Width: opts.Width, Height: opts.Height},
		capacity:  opts.Capacity,
		length:    opts.PatternLength,
		weights:   opts.Weights,
		mutation:  mutation,
		food:      systems.NoFood{},
		nextID:    1,
		history:   history,
		collector: collector,
		perf:      opts.Perf,
	}, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts Options) *World {
	w, err := New(opts)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *World) allocID() uint64 {
	id := w.nextID
	w.nextID++
	return id
}

// insert adds o as a new entity.
func (w *World) insert(o components.Organism) {
	w.orgMap.NewEntity(&o)
	w.count++
	if o.Alive() {
		w.alive++
	}
}

// AddOrganism creates a generation-1 organism with a fresh genome and random
// facing at pos, or at the grid centre when pos is nil. Returns its id.
func (w *World) AddOrganism(name string, pos *components.Coordinate) uint64 {
	p := w.bounds.Center()
	if pos != nil {
		p = pos.MoveRelative(0, 0, w.bounds)
	}
	id := w.allocID()
	g := genome.New(w.rng, w.length, w.weights)
	w.insert(systems.NewOrganism(id, components.Name(name), p, systems.RandomDirection(w.rng), g))
	return id
}

// AddGenome inserts a generation-1 organism with a caller-built genome and
// facing. The genome is copied.
func (w *World) AddGenome(name string, pos components.Coordinate, dir components.Direction, g genome.Genome) uint64 {
	id := w.allocID()
	w.insert(systems.NewOrganism(id, components.Name(name), pos.MoveRelative(0, 0, w.bounds), dir, g.Clone()))
	return id
}

// AddFood places n static food items at uniformly random cells. Items
// already placed are kept; the previous source is not modified so earlier
// snapshots stay valid. Any other installed source is replaced by the new
// plants.
func (w *World) AddFood(n int) {
	var prev []components.Coordinate
	switch f := w.food.(type) {
	case *systems.Plants:
		prev = f.Positions()
	case systems.NoFood:
	default:
		slog.Warn("adding plants replaces food source", "source", fmt.Sprintf("%T", f))
	}
	plants := systems.PlantsAt(prev...)
	plants.Add(w.rng, n, w.bounds)
	w.food = plants
}

// SetFood installs a food source.
func (w *World) SetFood(f systems.FoodSource) {
	if f == nil {
		f = systems.NoFood{}
	}
	w.food = f
}

// Food returns the installed food source.
func (w *World) Food() systems.FoodSource { return w.food }

// FoodPresent reports whether food lies on pos.
func (w *World) FoodPresent(pos components.Coordinate) bool {
	return w.food.Present(pos)
}

// Step advances the world by one tick: record history, step every organism,
// collect offspring from the reproduction sweep, then admit them while the
// alive count is below capacity.
func (w *World) Step() error {
	if w.perf != nil {
		w.perf.StartTick()
		defer w.perf.EndTick()
	}

	if w.history != nil {
		w.startPhase(telemetry.PhaseHistory)
		if err := w.history.Append(w.State()); err != nil {
			return fmt.Errorf("recording tick %d: %w", w.tick, err)
		}
	}

	w.startPhase(telemetry.PhaseOrganisms)
	tally := w.organisms.Update(w.food, w.bounds, w.rng)
	w.alive -= tally.Died
	w.collector.RecordStep(tally.Ate, tally.Moved, tally.Died)

	w.startPhase(telemetry.PhaseReproduction)
	offspring := w.breeding.Update(w.rng, w.allocID)

	// The query is closed here, so the ECS world accepts new entities.
	w.startPhase(telemetry.PhaseAdmission)
	for _, child := range offspring {
		if w.alive >= w.capacity {
			w.collector.RecordDiscard()
			continue
		}
		w.insert(child)
		w.collector.RecordBirth()
	}

	w.tick++
	w.collector.RecordTick()
	return nil
}

func (w *World) startPhase(phase string) {
	if w.perf != nil {
		w.perf.StartPhase(phase)
	}
}

// Simulate runs exactly n ticks.
func (w *World) Simulate(n int) error {
	for i := 0; i < n; i++ {
		if err := w.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SpawnGenerationFrom fills w with successors of prior's survivors, cycling
// over them in order until w holds Capacity organisms. Successors are placed
// at the grid centre with a random facing. Returns the number seeded; zero
// means prior was extinct.
func (w *World) SpawnGenerationFrom(prior *World) int {
	var survivors []components.Organism
	for _, o := range prior.Organisms() {
		if o.Alive() {
			survivors = append(survivors, o)
		}
	}
	if len(survivors) == 0 {
		slog.Warn("extinction", "prior_tick", prior.tick, "prior_population", prior.count)
		return 0
	}

	seeded := 0
	for i := 0; w.count < w.capacity; i++ {
		parent := &survivors[i%len(survivors)]
		child := systems.SpawnFromAncestor(parent, w.allocID(), w.bounds.Center(), systems.RandomDirection(w.rng))
		genome.Apply(w.mutation, w.rng, genome.EventSeed, &child.Genome)
		w.insert(child)
		seeded++
	}

	slog.Debug("generation seeded", "survivors", len(survivors), "seeded", seeded)
	return seeded
}

// Organisms returns copies of every organism in insertion order, dead ones included.
func (w *World) Organisms() []components.Organism {
	out := make([]components.Organism, 0, w.count)
	query := w.filter.Query()
	for query.Next() {
		out = append(out, query.Get().Clone())
	}
	return out
}

// State returns a snapshot of the current tick.
func (w *World) State() State {
	return State{
		Tick:      w.tick,
		Bounds:    w.bounds,
		Organisms: w.Organisms(),
		Food:      w.food,
	}
}

// Count returns the number of organisms, alive or dead.
func (w *World) Count() int { return w.count }

// AliveCount returns the number of living organisms.
func (w *World) AliveCount() int { return w.alive }

// Capacity returns the carrying capacity.
func (w *World) Capacity() int { return w.capacity }

// Bounds returns the grid extent.
func (w *World) Bounds() components.Bounds { return w.bounds }

// Tick returns the number of completed ticks.
func (w *World) Tick() int { return w.tick }

// History returns the recorded snapshots, or nil when recording is off.
func (w *World) History() History { return w.history }

// Collector returns the world's telemetry collector.
func (w *World) Collector() *telemetry.Collector { return w.collector }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rng }
