package systems

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/genome"
)

// FoodSource answers whether food is present at a cell.
type FoodSource interface {
	Present(pos components.Coordinate) bool
}

// NoFood never has food anywhere.
type NoFood struct{}

// Present always returns false.
func (NoFood) Present(components.Coordinate) bool { return false }

// Everywhere has food on every cell.
type Everywhere struct{}

// Present always returns true.
func (Everywhere) Present(components.Coordinate) bool { return true }

// Plants is a set of static food items at fixed cells. Items are never consumed.
type Plants struct {
	items []components.Coordinate
	cells map[components.Coordinate]struct{}
}

// NewPlants places n items at uniformly random cells. Items may share a cell.
func NewPlants(rng genome.Rand, n int, b components.Bounds) *Plants {
	p := &Plants{cells: make(map[components.Coordinate]struct{}, n)}
	p.Add(rng, n, b)
	return p
}

// PlantsAt builds a plant set from explicit positions.
func PlantsAt(positions ...components.Coordinate) *Plants {
	p := &Plants{cells: make(map[components.Coordinate]struct{}, len(positions))}
	for _, pos := range positions {
		p.items = append(p.items, pos)
		p.cells[pos] = struct{}{}
	}
	return p
}

// Add places n more items at uniformly random cells.
func (p *Plants) Add(rng genome.Rand, n int, b components.Bounds) {
	for i := 0; i < n; i++ {
		pos := components.Coordinate{X: rng.Intn(b.Width), Y: rng.Intn(b.Height)}
		p.items = append(p.items, pos)
		p.cells[pos] = struct{}{}
	}
}

// Present reports whether any item lies on pos.
func (p *Plants) Present(pos components.Coordinate) bool {
	_, ok := p.cells[pos]
	return ok
}

// Positions returns the item positions in placement order.
func (p *Plants) Positions() []components.Coordinate {
	out := make([]components.Coordinate, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of items.
func (p *Plants) Len() int { return len(p.items) }

// ModularFood marks cells where (x*XFactor + y*YFactor) is a multiple of Modulus.
type ModularFood struct {
	Modulus int
	XFactor int
	YFactor int
}

// Present evaluates the modular test.
func (m ModularFood) Present(pos components.Coordinate) bool {
	if m.Modulus <= 0 {
		return false
	}
	v := pos.X*m.XFactor + pos.Y*m.YFactor
	return ((v%m.Modulus)+m.Modulus)%m.Modulus == 0
}

// NoiseFood marks cells where a seeded OpenSimplex field exceeds a threshold,
// giving patchy but deterministic food.
type NoiseFood struct {
	noise     opensimplex.Noise
	scale     float64
	threshold float64
}

// NewNoiseFood creates a noise predicate. Scale is the feature frequency per
// cell and threshold lies in [0,1); higher thresholds give sparser food.
func NewNoiseFood(seed int64, scale, threshold float64) *NoiseFood {
	return &NoiseFood{
		noise:     opensimplex.NewNormalized(seed),
		scale:     scale,
		threshold: threshold,
	}
}

// Present samples the field at the cell centre.
func (n *NoiseFood) Present(pos components.Coordinate) bool {
	v := n.noise.Eval2(float64(pos.X)*n.scale, float64(pos.Y)*n.scale)
	return v > n.threshold
}

// FoodOptions selects and parameterizes a food source.
type FoodOptions struct {
	Mode           string // "plants", "modular", "noise", "none" or "everywhere"
	Plants         int
	Modulus        int
	XFactor        int
	YFactor        int
	NoiseScale     float64
	NoiseThreshold float64
	Seed           int64
}

// NewFoodSource builds the food source named by opts.Mode.
func NewFoodSource(opts FoodOptions, rng genome.Rand, b components.Bounds) (FoodSource, error) {
	switch opts.Mode {
	case "", "plants":
		return NewPlants(rng, opts.Plants, b), nil
	case "modular":
		if opts.Modulus <= 0 {
			return nil, fmt.Errorf("modular food needs a positive modulus, got %d", opts.Modulus)
		}
		return ModularFood{Modulus: opts.Modulus, XFactor: opts.XFactor, YFactor: opts.YFactor}, nil
	case "noise":
		return NewNoiseFood(opts.Seed, opts.NoiseScale, opts.NoiseThreshold), nil
	case "none":
		return NoFood{}, nil
	case "everywhere":
		return Everywhere{}, nil
	default:
		return nil, fmt.Errorf("unknown food mode %q", opts.Mode)
	}
}
