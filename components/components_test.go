package components

import (
	"math"
	"math/rand"
	"testing"
)

func TestMoveRelativeWraps(t *testing.T) {
	b := Bounds{Width: 10, Height: 5}
	tests := []struct {
		name   string
		start  Coordinate
		dx, dy int
		want   Coordinate
	}{
		{"interior", Coordinate{3, 2}, 1, 0, Coordinate{4, 2}},
		{"past right edge", Coordinate{9, 2}, 1, 0, Coordinate{0, 2}},
		{"past left edge", Coordinate{0, 2}, -1, 0, Coordinate{9, 2}},
		{"past top edge", Coordinate{4, 4}, 0, 1, Coordinate{4, 0}},
		{"past bottom edge", Coordinate{4, 0}, 0, -1, Coordinate{4, 4}},
		{"corner", Coordinate{9, 4}, 1, 1, Coordinate{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.MoveRelative(tt.dx, tt.dy, b)
			if got != tt.want {
				t.Errorf("MoveRelative = %v, want %v", got, tt.want)
			}
			if !b.Contains(got) {
				t.Errorf("%v escaped bounds", got)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	a := Coordinate{0, 0}
	b := Coordinate{3, 4}
	if math.Abs(a.Distance(b)-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", a.Distance(b))
	}
	// unwrapped: opposite edges are far apart
	if d := (Coordinate{0, 0}).Distance(Coordinate{9, 0}); d != 9 {
		t.Errorf("Distance across edge = %v, want 9", d)
	}
}

func TestDirectionRotation(t *testing.T) {
	d := North
	order := []Direction{East, South, West, North}
	for i, want := range order {
		d = d.Right()
		if d != want {
			t.Fatalf("right turn %d = %v, want %v", i, d, want)
		}
	}
	for _, dir := range Directions() {
		if dir.Right().Left() != dir {
			t.Errorf("%v: Right then Left = %v", dir, dir.Right().Left())
		}
	}
	if North.Left() != West {
		t.Errorf("North.Left() = %v, want west", North.Left())
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := map[Direction][2]int{
		North: {0, 1},
		South: {0, -1},
		East:  {1, 0},
		West:  {-1, 0},
	}
	for d, want := range tests {
		dx, dy := d.Delta()
		if dx != want[0] || dy != want[1] {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", d, dx, dy, want[0], want[1])
		}
	}
}

func TestSetLifeClamps(t *testing.T) {
	var o Organism
	o.SetLife(300)
	if o.Life != MaxLife {
		t.Errorf("life = %v, want %v", o.Life, MaxLife)
	}
	o.SetLife(-4)
	if o.Life != 0 || o.Alive() {
		t.Errorf("life = %v alive=%v, want 0 and dead", o.Life, o.Alive())
	}
}

func TestNamePadded(t *testing.T) {
	tests := []struct {
		in   Name
		want string
	}{
		{"Ada", "Ada            "},
		{"Bartholomew the Third", "Bartholomew the"},
		{"", "               "},
	}
	for _, tt := range tests {
		got := tt.in.Padded()
		if got != tt.want {
			t.Errorf("Padded(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if len([]rune(got)) != NameWidth {
			t.Errorf("Padded(%q) has width %d", tt.in, len([]rune(got)))
		}
	}
}

func TestPickName(t *testing.T) {
	if len(Names()) == 0 {
		t.Fatal("embedded name list is empty")
	}
	n := PickName(rand.New(rand.NewSource(1)))
	if n.String() == "" {
		t.Error("picked an empty name")
	}
}
