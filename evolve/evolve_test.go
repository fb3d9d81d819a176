package evolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/telemetry"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Width = 20
	cfg.World.Height = 10
	cfg.World.CarryingCapacity = 20
	cfg.Population.Initial = 5
	cfg.Run.Generations = 3
	cfg.Run.TicksPerGeneration = 50
	cfg.Run.Seed = 1
	cfg.Food.Mode = "everywhere"
	return cfg
}

func TestRunReseedsToCapacity(t *testing.T) {
	cfg := testConfig()
	r := NewRunner(cfg, nil)

	var seen []int
	r.OnGeneration = func(w *sim.World, s telemetry.GenerationStats) {
		seen = append(seen, s.Generation)
		if w.Tick() != cfg.Run.TicksPerGeneration {
			t.Errorf("generation %d ran %d ticks", s.Generation, w.Tick())
		}
	}

	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 3 || !reflect.DeepEqual(seen, []int{1, 2, 3}) {
		t.Fatalf("generations = %v", seen)
	}
	if stats[0].Seeded != 5 {
		t.Errorf("generation 1 seeded %d, want 5 founders", stats[0].Seeded)
	}
	for _, s := range stats[1:] {
		if s.Seeded != cfg.World.CarryingCapacity {
			t.Errorf("generation %d seeded %d, want capacity", s.Generation, s.Seeded)
		}
		if s.MaxGeneration < s.Generation {
			t.Errorf("generation %d max organism generation %d", s.Generation, s.MaxGeneration)
		}
	}
	for _, s := range stats {
		if s.Survivors == 0 {
			t.Errorf("generation %d went extinct with food everywhere", s.Generation)
		}
	}
	if r.Last() == nil || r.Last().Tick() != cfg.Run.TicksPerGeneration {
		t.Error("Last() should expose the final world")
	}
}

func TestFoundersCappedAtCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.World.CarryingCapacity = 10
	cfg.Population.Initial = 30
	cfg.Run.Generations = 1
	r := NewRunner(cfg, nil)

	r.OnGeneration = func(w *sim.World, s telemetry.GenerationStats) {
		if w.AliveCount() > w.Capacity() {
			t.Errorf("alive %d exceeds capacity %d", w.AliveCount(), w.Capacity())
		}
	}
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats[0].Seeded != 10 {
		t.Errorf("seeded %d founders, want 10", stats[0].Seeded)
	}
}

func TestRunExtinction(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Mode = "none"
	cfg.Genome.Weights.AgingRateDivisor = 0.2
	cfg.Run.TicksPerGeneration = 200
	cfg.Recompute()

	stats, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d generations, want 3", len(stats))
	}
	if !stats[0].Extinct() {
		t.Fatalf("generation 1 survivors = %d, want extinction", stats[0].Survivors)
	}
	for _, s := range stats[1:] {
		if s.Seeded != 0 || s.Survivors != 0 || s.Population != 0 {
			t.Errorf("generation %d after extinction: %+v", s.Generation, s)
		}
	}

	cfg.Run.StopOnExtinction = true
	stats, err = NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 {
		t.Errorf("stop_on_extinction ran %d generations, want 1", len(stats))
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Mode = "plants"
	cfg.Food.Plants = 40
	cfg.Mutation.Policy = "birth"
	cfg.Mutation.Rate = 0.5
	cfg.Reproduction.Chance = 0.05

	a, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identically seeded runs produced different statistics")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := NewRunner(testConfig(), nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(stats) != 0 {
		t.Errorf("cancelled run recorded %d generations", len(stats))
	}
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	if _, err := NewRunner(cfg, om).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1+cfg.Run.Generations {
		t.Errorf("generations.csv has %d lines, want header + %d", len(lines), cfg.Run.Generations)
	}

	data, err = os.ReadFile(filepath.Join(dir, "strains.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "generation,rank,strain") {
		t.Errorf("strains.csv header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestRunInvalidHistoryMode(t *testing.T) {
	cfg := testConfig()
	cfg.History.Save = true
	cfg.History.Mode = "tape"

	if _, err := NewRunner(cfg, nil).Run(context.Background()); err == nil {
		t.Error("expected error for unknown history mode")
	}
}
