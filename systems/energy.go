package systems

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/traits"
)

// Feed adds one meal to the organism's life, clamped at MaxLife.
// The gain is the eating efficiency trait's effective value.
func Feed(o *components.Organism) float64 {
	if !o.Alive() {
		return 0
	}
	before := o.Life
	gain := o.Genome.Traits.Get(traits.EatingEfficiency).Value()
	o.SetLife(o.Life + gain)
	return o.Life - before
}

// AgingCost returns the life lost per tick: 1/divisor + 1.
func AgingCost(o *components.Organism) float64 {
	return 1/o.Genome.Traits.Get(traits.AgingRateDivisor).Value() + 1
}

// Age applies one tick of aging. An organism with less life than the
// cost dies outright, as does one left with exactly zero. Returns true if
// this call killed it.
func Age(o *components.Organism) bool {
	if !o.Alive() {
		return false
	}
	cost := AgingCost(o)
	if o.Life < cost {
		o.SetLife(0)
		return true
	}
	o.SetLife(o.Life - cost)
	return !o.Alive()
}
