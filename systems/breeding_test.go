package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/traits"
)

// constRand returns f from every Float64 draw and 0 from Intn.
type constRand struct{ f float64 }

func (r constRand) Intn(int) int     { return 0 }
func (r constRand) Float64() float64 { return r.f }

func newBreedingWorld(t *testing.T, lives ...float64) (*ecs.World, *BreedingSystem) {
	t.Helper()
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Organism](w)
	for i, life := range lives {
		o := newTestOrganism(t, genome.MoveForward, genome.TurnLeft)
		o.ID = uint64(i + 1)
		o.Strain = o.ID
		o.Life = life
		mapper.NewEntity(&o)
	}
	return w, NewBreedingSystem(w)
}

func counter(start uint64) func() uint64 {
	next := start
	return func() uint64 {
		id := next
		next++
		return id
	}
}

func TestBreedingThreshold(t *testing.T) {
	_, b := newBreedingWorld(t, 50, 100, 100.5, 0, components.MaxLife)
	b.Chance = 1

	offspring := b.Update(constRand{0}, counter(10))
	if len(offspring) != 2 {
		t.Fatalf("offspring = %d, want 2 (only life strictly above threshold)", len(offspring))
	}
	// Population order is preserved.
	if offspring[0].Strain != 3 || offspring[1].Strain != 5 {
		t.Errorf("parent strains = %d, %d, want 3, 5", offspring[0].Strain, offspring[1].Strain)
	}
	for i, c := range offspring {
		if c.ID != uint64(10+i) {
			t.Errorf("child %d id = %d, want %d", i, c.ID, 10+i)
		}
		if c.Life != components.MaxLife || c.Generation != 2 {
			t.Errorf("child %d: life=%v generation=%d", i, c.Life, c.Generation)
		}
	}
}

func TestBreedingChance(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		draw   float64
		want   int
	}{
		{"draw below chance", 0.01, 0.005, 3},
		{"draw equal to chance", 0.01, 0.01, 0},
		{"zero chance", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := newBreedingWorld(t, 200, 200, 200)
			b.Chance = tt.chance
			if got := len(b.Update(constRand{tt.draw}, counter(1))); got != tt.want {
				t.Errorf("offspring = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBreedingExactCopyWithoutMutation(t *testing.T) {
	_, b := newBreedingWorld(t, 200)
	b.Chance = 1

	offspring := b.Update(constRand{0}, counter(2))
	if len(offspring) != 1 {
		t.Fatalf("offspring = %d, want 1", len(offspring))
	}
	child := offspring[0]
	if child.Genome.Traits != traits.NewEven(traits.DefaultWeights()) {
		t.Errorf("child traits changed: %v", child.Genome.Traits.Names())
	}
	if child.Genome.Behavior.String() != "FL" {
		t.Errorf("child behavior = %q, want FL", child.Genome.Behavior.String())
	}
}

func TestBreedingBirthMutation(t *testing.T) {
	_, b := newBreedingWorld(t, 200)
	b.Chance = 1
	b.Policy = genome.AtRate{Event: genome.EventBirth, Rate: 1}

	offspring := b.Update(constRand{0}, counter(2))
	if len(offspring) != 1 {
		t.Fatalf("offspring = %d, want 1", len(offspring))
	}
	g := offspring[0].Genome
	if g.Traits.Sum() != traits.EvenMagnitude*traits.Count() {
		t.Errorf("mutation changed total magnitude to %d", g.Traits.Sum())
	}
}

func TestOrganismSystemTally(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Organism](w)
	lives := []float64{200, 1, 0}
	for i, life := range lives {
		o := newTestOrganism(t, genome.MoveForward)
		o.ID = uint64(i + 1)
		o.Life = life
		mapper.NewEntity(&o)
	}

	s := NewOrganismSystem(w)
	tally := s.Update(NoFood{}, testBounds, constRand{0.5})
	want := Tally{Stepped: 2, Ate: 0, Moved: 2, Died: 1}
	if tally != want {
		t.Errorf("tally = %+v, want %+v", tally, want)
	}

	tally = s.Update(Everywhere{}, testBounds, constRand{0.5})
	want = Tally{Stepped: 1, Ate: 1, Moved: 1, Died: 0}
	if tally != want {
		t.Errorf("second tally = %+v, want %+v", tally, want)
	}
}
