// Package traits defines the heritable metabolic traits carried by an organism's genome.
package traits

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Magnitude bounds shared by every trait.
const (
	MinMagnitude = 1
	MaxMagnitude = 10

	// EvenMagnitude is the starting magnitude of every trait in a fresh genome.
	EvenMagnitude = 5
)

// Trait is a bounded integer magnitude combined with a fixed weight.
type Trait struct {
	Magnitude int     `inspect:"bar,max:10"`
	Weight    float64 `inspect:"label,fmt:%.2f"`
}

// Value returns the effective numeric value of the trait.
func (t Trait) Value() float64 {
	return float64(t.Magnitude) * t.Weight
}

// SetMagnitude updates the magnitude if m lies within bounds.
// Returns false and leaves the trait unchanged otherwise.
func (t *Trait) SetMagnitude(m int) bool {
	if m < MinMagnitude || m > MaxMagnitude {
		return false
	}
	t.Magnitude = m
	return true
}

// TraitID identifies one named trait in a TraitSet.
type TraitID uint8

const (
	AgingRateDivisor TraitID = iota // Divides the per-tick aging cost
	EatingEfficiency                // Life gained per meal

	numTraits
)

var traitNames = [numTraits]string{
	AgingRateDivisor: "aging_rate_divisor",
	EatingEfficiency: "eating_efficiency",
}

// All returns every trait identifier in declaration order.
func All() []TraitID {
	ids := make([]TraitID, numTraits)
	for i := range ids {
		ids[i] = TraitID(i)
	}
	return ids
}

// Count returns the number of named traits.
func Count() int { return int(numTraits) }

// String returns the snake_case trait name.
func (id TraitID) String() string {
	if id < numTraits {
		return traitNames[id]
	}
	return fmt.Sprintf("trait(%d)", uint8(id))
}

// Valid reports whether id names a known trait.
func (id TraitID) Valid() bool { return id < numTraits }

// ParseTraitID looks up a trait by its snake_case name.
func ParseTraitID(name string) (TraitID, error) {
	for i, n := range traitNames {
		if n == name {
			return TraitID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trait %q", name)
}

// Weights holds the fixed per-trait weights for a run.
type Weights [numTraits]float64

// DefaultWeights returns the weights used when no configuration overrides them.
func DefaultWeights() Weights {
	return Weights{
		AgingRateDivisor: 1.0,
		EatingEfficiency: 5.0,
	}
}

// TraitSet is the closed collection of named traits.
type TraitSet struct {
	traits [numTraits]Trait
}

// NewEven returns a set where every trait has EvenMagnitude and the given weight.
func NewEven(w Weights) TraitSet {
	var s TraitSet
	for i := range s.traits {
		s.traits[i] = Trait{Magnitude: EvenMagnitude, Weight: w[i]}
	}
	return s
}

// Get returns a copy of the trait with the given id.
func (s TraitSet) Get(id TraitID) Trait {
	return s.traits[id]
}

// Ptr returns a pointer to the trait with the given id for in-place updates.
func (s *TraitSet) Ptr(id TraitID) *Trait {
	return &s.traits[id]
}

// Set replaces the trait with the given id.
func (s *TraitSet) Set(id TraitID, t Trait) {
	s.traits[id] = t
}

// Sum returns the total magnitude across all traits.
func (s TraitSet) Sum() int {
	total := 0
	for _, t := range s.traits {
		total += t.Magnitude
	}
	return total
}

// Transfer moves one unit of magnitude from one trait to another.
// Either both halves apply or neither does; a trait cannot transfer to itself.
func (s *TraitSet) Transfer(from, to TraitID) bool {
	if from == to || !from.Valid() || !to.Valid() {
		return false
	}
	src := s.Ptr(from)
	dst := s.Ptr(to)

	prev := src.Magnitude
	if !src.SetMagnitude(prev - 1) {
		return false
	}
	if !dst.SetMagnitude(dst.Magnitude + 1) {
		src.Magnitude = prev
		return false
	}
	return true
}

// Names returns "name=magnitude" pairs for display.
func (s TraitSet) Names() []string {
	out := make([]string, 0, numTraits)
	for i, t := range s.traits {
		out = append(out, fmt.Sprintf("%s=%d", traitNames[i], t.Magnitude))
	}
	return out
}

// MarshalBinary encodes the set as (magnitude, weight) pairs in TraitID order.
func (s TraitSet) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, int(numTraits)*(binary.MaxVarintLen64+8))
	for _, t := range s.traits {
		buf = binary.AppendVarint(buf, int64(t.Magnitude))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Weight))
	}
	return buf, nil
}

// UnmarshalBinary decodes a set written by MarshalBinary.
func (s *TraitSet) UnmarshalBinary(data []byte) error {
	for i := range s.traits {
		m, n := binary.Varint(data)
		if n <= 0 || len(data[n:]) < 8 {
			return errors.New("traits: truncated trait set")
		}
		data = data[n:]
		s.traits[i] = Trait{
			Magnitude: int(m),
			Weight:    math.Float64frombits(binary.LittleEndian.Uint64(data)),
		}
		data = data[8:]
	}
	return nil
}
