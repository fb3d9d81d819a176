package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/petri/components"
)

func TestPlantsPresent(t *testing.T) {
	p := PlantsAt(components.Coordinate{X: 1, Y: 2}, components.Coordinate{X: 3, Y: 4})
	if !p.Present(components.Coordinate{X: 1, Y: 2}) {
		t.Error("expected food at (1,2)")
	}
	if p.Present(components.Coordinate{X: 2, Y: 1}) {
		t.Error("unexpected food at (2,1)")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestNewPlantsInBounds(t *testing.T) {
	b := components.Bounds{Width: 8, Height: 3}
	p := NewPlants(rand.New(rand.NewSource(1)), 200, b)
	if p.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", p.Len())
	}
	for _, pos := range p.Positions() {
		if !b.Contains(pos) {
			t.Fatalf("plant at %v outside %v", pos, b)
		}
		if !p.Present(pos) {
			t.Fatalf("placed plant at %v not reported present", pos)
		}
	}
}

func TestNewPlantsDeterministic(t *testing.T) {
	b := components.Bounds{Width: 50, Height: 50}
	a := NewPlants(rand.New(rand.NewSource(9)), 30, b).Positions()
	c := NewPlants(rand.New(rand.NewSource(9)), 30, b).Positions()
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("plant %d differs between identical seeds: %v vs %v", i, a[i], c[i])
		}
	}
}

func TestModularFood(t *testing.T) {
	m := ModularFood{Modulus: 3, XFactor: 1, YFactor: 1}
	tests := []struct {
		pos  components.Coordinate
		want bool
	}{
		{components.Coordinate{X: 0, Y: 0}, true},
		{components.Coordinate{X: 1, Y: 2}, true},
		{components.Coordinate{X: 1, Y: 1}, false},
		{components.Coordinate{X: 4, Y: 5}, true},
	}
	for _, tt := range tests {
		if got := m.Present(tt.pos); got != tt.want {
			t.Errorf("Present(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
	if (ModularFood{}).Present(components.Coordinate{}) {
		t.Error("zero modulus should never have food")
	}
}

func TestNoiseFoodDeterministic(t *testing.T) {
	a := NewNoiseFood(42, 0.15, 0.6)
	b := NewNoiseFood(42, 0.15, 0.6)
	found := 0
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			pos := components.Coordinate{X: x, Y: y}
			if a.Present(pos) != b.Present(pos) {
				t.Fatalf("noise food differs at %v for identical seeds", pos)
			}
			if a.Present(pos) {
				found++
			}
		}
	}
	if found == 0 || found == 1600 {
		t.Errorf("noise food covered %d of 1600 cells, want a partial patchwork", found)
	}
}

func TestNewFoodSource(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := components.Bounds{Width: 10, Height: 10}

	for _, mode := range []string{"plants", "modular", "noise", "none", "everywhere"} {
		src, err := NewFoodSource(FoodOptions{Mode: mode, Plants: 5, Modulus: 4, XFactor: 1, YFactor: 2, NoiseScale: 0.1, NoiseThreshold: 0.5}, rng, b)
		if err != nil {
			t.Errorf("mode %q: %v", mode, err)
			continue
		}
		if src == nil {
			t.Errorf("mode %q returned nil source", mode)
		}
	}

	if _, err := NewFoodSource(FoodOptions{Mode: "modular"}, rng, b); err == nil {
		t.Error("expected error for zero modulus")
	}
	if _, err := NewFoodSource(FoodOptions{Mode: "buffet"}, rng, b); err == nil {
		t.Error("expected error for unknown mode")
	}
}
