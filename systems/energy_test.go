package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/traits"
)

func TestFeed(t *testing.T) {
	tests := []struct {
		name     string
		life     float64
		mag      int
		weight   float64
		wantGain float64
	}{
		{"even efficiency", 100, 5, 5.0, 25},
		{"minimum efficiency", 100, 1, 5.0, 5},
		{"clamped at ceiling", 250, 5, 5.0, 5},
		{"already full", components.MaxLife, 10, 5.0, 0},
		{"zero weight", 100, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrganism(t, genome.MoveForward)
			o.Life = tt.life
			o.Genome.Traits.Set(traits.EatingEfficiency, traits.Trait{Magnitude: tt.mag, Weight: tt.weight})

			gain := Feed(&o)
			if math.Abs(gain-tt.wantGain) > 1e-9 {
				t.Errorf("gain = %v, want %v", gain, tt.wantGain)
			}
			if math.Abs(o.Life-(tt.life+tt.wantGain)) > 1e-9 {
				t.Errorf("life = %v, want %v", o.Life, tt.life+tt.wantGain)
			}
			if o.Life > components.MaxLife {
				t.Errorf("life %v exceeds MaxLife", o.Life)
			}
		})
	}
}

func TestFeedDeadNoOp(t *testing.T) {
	o := newTestOrganism(t, genome.MoveForward)
	o.Life = 0
	if gain := Feed(&o); gain != 0 || o.Life != 0 {
		t.Errorf("dead organism fed: gain=%v life=%v", gain, o.Life)
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name     string
		life     float64
		wantLife float64
		wantDied bool
	}{
		// default divisor 5 x 1.0 -> cost 1.2
		{"plenty of life", 100, 98.8, false},
		{"exactly the cost", 1.2, 0, true},
		{"less than the cost", 1.0, 0, true},
		{"just above the cost", 1.5, 0.3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrganism(t, genome.MoveForward)
			o.Life = tt.life
			died := Age(&o)
			if died != tt.wantDied {
				t.Errorf("died = %v, want %v", died, tt.wantDied)
			}
			if math.Abs(o.Life-tt.wantLife) > 1e-9 {
				t.Errorf("life = %v, want %v", o.Life, tt.wantLife)
			}
		})
	}
}

func TestAgeDeadNoOp(t *testing.T) {
	o := newTestOrganism(t, genome.MoveForward)
	o.Life = 0
	if Age(&o) {
		t.Error("aging a dead organism should not report a death")
	}
	if o.Life != 0 {
		t.Errorf("life = %v, want 0", o.Life)
	}
}
