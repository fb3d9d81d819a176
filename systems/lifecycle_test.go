package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/traits"
)

var testBounds = components.Bounds{Width: 10, Height: 10}

func newTestOrganism(t *testing.T, pattern ...genome.Action) components.Organism {
	t.Helper()
	g := genome.Genome{
		Traits:   traits.NewEven(traits.DefaultWeights()),
		Behavior: genome.Behavior{Pattern: pattern},
	}
	return NewOrganism(1, "Ada", testBounds.Center(), components.North, g)
}

func TestStepFoodAtCeilingStaysFull(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	o := newTestOrganism(t, genome.MoveForward, genome.TurnRandom, genome.TurnLeft, genome.TurnRight, genome.MoveForward)
	// The meal is clamped at the ceiling before aging, so a fed organism
	// settles at exactly one aging cost below MaxLife and never drifts.
	want := components.MaxLife - AgingCost(&o)
	for tick := 0; tick < 1000; tick++ {
		Step(&o, true, testBounds, rng)
		if o.Life != want {
			t.Fatalf("tick %d: life = %v, want %v", tick, o.Life, want)
		}
	}
}

func TestStepAgingWithoutFood(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	o := newTestOrganism(t, genome.TurnLeft, genome.MoveForward)
	// effective divisor 1.0 -> cost 1/1 + 1 = 2 per tick
	o.Genome.Traits.Set(traits.AgingRateDivisor, traits.Trait{Magnitude: 1, Weight: 1.0})

	for tick := 1; tick <= 127; tick++ {
		Step(&o, false, testBounds, rng)
		want := components.MaxLife - 2*float64(tick)
		if math.Abs(o.Life-want) > 1e-9 {
			t.Fatalf("tick %d: life = %v, want %v", tick, o.Life, want)
		}
	}
	if o.Life != 1 {
		t.Fatalf("life before final tick = %v, want 1", o.Life)
	}

	out := Step(&o, false, testBounds, rng)
	if !out.Died || o.Alive() || o.Life != 0 {
		t.Fatalf("tick 128: died=%v life=%v, want death at zero", out.Died, o.Life)
	}
}

func TestDeadOrganismIsFrozen(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	o := newTestOrganism(t, genome.MoveForward, genome.TurnRandom)
	o.SetLife(0)
	before := o

	for i := 0; i < 20; i++ {
		out := Step(&o, true, testBounds, rng)
		if out != (Outcome{}) {
			t.Fatalf("dead organism produced outcome %+v", out)
		}
	}
	if o.Position != before.Position || o.Direction != before.Direction || o.PC != before.PC || o.Life != 0 {
		t.Errorf("dead organism changed: %v -> %v", before, o)
	}
}

func TestStepProgramCounterWraps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pattern := []genome.Action{genome.TurnRight, genome.TurnRight, genome.MoveForward, genome.TurnLeft, genome.MoveForward}
	o := newTestOrganism(t, pattern...)

	for tick := 0; tick < 3*len(pattern); tick++ {
		if o.PC != tick%len(pattern) {
			t.Fatalf("tick %d: pc = %d, want %d", tick, o.PC, tick%len(pattern))
		}
		Step(&o, true, testBounds, rng)
	}
}

func TestStepMovesAndWraps(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	o := newTestOrganism(t, genome.MoveForward)
	o.Position = components.Coordinate{X: 5, Y: 9}

	Step(&o, false, testBounds, rng)
	if o.Position != (components.Coordinate{X: 5, Y: 0}) {
		t.Errorf("position = %v, want (5,0)", o.Position)
	}
}

func TestTurnRandomPicksBothWays(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seen := map[components.Direction]bool{}
	for i := 0; i < 100; i++ {
		o := newTestOrganism(t, genome.TurnRandom)
		Act(&o, genome.TurnRandom, testBounds, rng)
		seen[o.Direction] = true
	}
	if !seen[components.East] || !seen[components.West] {
		t.Errorf("TurnRandom from north reached %v, want both east and west", seen)
	}
	if seen[components.North] || seen[components.South] {
		t.Errorf("TurnRandom produced a non-quarter turn: %v", seen)
	}
}

func TestDivide(t *testing.T) {
	parent := newTestOrganism(t, genome.MoveForward, genome.TurnLeft)
	parent.ID = 7
	parent.Strain = 3
	parent.Generation = 4
	parent.SetLife(120)
	parent.PC = 1
	parent.Direction = components.West

	child := Divide(&parent, 42)

	if child.Life != components.MaxLife {
		t.Errorf("child life = %v, want %v", child.Life, components.MaxLife)
	}
	if child.Generation != parent.Generation+1 {
		t.Errorf("child generation = %d, want %d", child.Generation, parent.Generation+1)
	}
	if child.Strain != parent.Strain {
		t.Errorf("child strain = %d, want %d", child.Strain, parent.Strain)
	}
	if child.ID != 42 {
		t.Errorf("child id = %d, want 42", child.ID)
	}
	if child.PC != 0 {
		t.Errorf("child pc = %d, want 0", child.PC)
	}
	if child.Position != parent.Position {
		t.Errorf("child position = %v, want %v", child.Position, parent.Position)
	}
	if child.Direction != components.North {
		t.Errorf("child direction = %v, want north (one right turn from west)", child.Direction)
	}
	if child.Genome.String() != parent.Genome.String() {
		t.Errorf("child genome %v differs from parent %v", child.Genome, parent.Genome)
	}

	child.Genome.Behavior.Pattern[0] = genome.TurnRight
	if parent.Genome.Behavior.Pattern[0] != genome.MoveForward {
		t.Error("child genome shares storage with parent")
	}
}

func TestSpawnFromAncestor(t *testing.T) {
	parent := newTestOrganism(t, genome.MoveForward)
	parent.Strain = 9
	parent.Generation = 2
	parent.SetLife(3)
	parent.PC = 0

	pos := components.Coordinate{X: 1, Y: 1}
	s := SpawnFromAncestor(&parent, 100, pos, components.South)
	if s.ID != 100 || s.Strain != 9 || s.Generation != 3 {
		t.Errorf("identity = id %d strain %d gen %d", s.ID, s.Strain, s.Generation)
	}
	if s.Life != components.MaxLife || s.PC != 0 || s.Position != pos || s.Direction != components.South {
		t.Errorf("state not reset: %+v", s)
	}
}

func TestAgingCost(t *testing.T) {
	tests := []struct {
		magnitude int
		weight    float64
		want      float64
	}{
		{1, 1.0, 2.0},
		{5, 1.0, 1.2},
		{10, 0.5, 1.2},
		{4, 0.25, 2.0},
	}
	for _, tt := range tests {
		o := newTestOrganism(t, genome.MoveForward)
		o.Genome.Traits.Set(traits.AgingRateDivisor, traits.Trait{Magnitude: tt.magnitude, Weight: tt.weight})
		if got := AgingCost(&o); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AgingCost(%d x %.2f) = %v, want %v", tt.magnitude, tt.weight, got, tt.want)
		}
	}
}
