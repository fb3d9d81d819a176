package components

import (
	"fmt"

	"github.com/pthm-cable/petri/genome"
)

// MaxLife is the life ceiling; newborns start here.
const MaxLife = 255.0

// Organism is one grid creature: identity, metabolic state, position and genome.
// It is stored as a single ECS component and copied by value into snapshots.
type Organism struct {
	ID         uint64 `inspect:"label"`
	Strain     uint64 `inspect:"label"` // id of the founding ancestor
	Generation int    `inspect:"label"`
	Name       Name   `inspect:"label"`

	Life      float64    `inspect:"bar,max:255"`
	Direction Direction  `inspect:"label"`
	Position  Coordinate `inspect:"label"`
	PC        int        `inspect:"label"` // index into Genome.Behavior.Pattern

	Genome genome.Genome `inspect:"skip"`
}

// Alive reports whether the organism still has life.
func (o *Organism) Alive() bool {
	return o.Life > 0
}

// SetLife writes life clamped to [0, MaxLife].
func (o *Organism) SetLife(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > MaxLife:
		v = MaxLife
	}
	o.Life = v
}

// Clone returns a copy whose genome shares no storage with o.
func (o Organism) Clone() Organism {
	o.Genome = o.Genome.Clone()
	return o
}

// String formats the organism like a leaderboard row.
func (o Organism) String() string {
	return fmt.Sprintf("%s #%d strain=%d gen=%d life=%.1f %s",
		o.Name.Padded(), o.ID, o.Strain, o.Generation, o.Life, o.Genome)
}
