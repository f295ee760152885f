// Package symbolic implements the symbolic executor (component C of
// spec.md §4.C): it runs a Program over an initially-unconstrained
// plane, forcing only the facts a non-crashing execution requires, and
// hands the result to the world synthesizer (component F) as a
// PartialWorld sized to the trace's bounding box.
package symbolic

import (
	"math/rand"

	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Oracle supplies the symbolic executor's free choices: spec.md §4.C
// says only the turtle's initial position and direction are ever left
// to the oracle for this instruction set.
type Oracle interface {
	ChooseStart() (y, x int, dir worldmodel.Direction)
}

// RandomOracle is the reproducible pseudo-random oracle of spec.md
// §4.C, backed by a per-worker seeded source (spec.md §5: "the
// pseudo-random source is per-worker with a derived seed").
type RandomOracle struct {
	rng *rand.Rand
}

// NewRandomOracle builds a RandomOracle from a fixed seed.
func NewRandomOracle(seed int64) *RandomOracle {
	return &RandomOracle{rng: rand.New(rand.NewSource(seed))}
}

// ChooseStart always starts at the plane's origin (the executor's
// bounding-box computation re-centres the trace afterwards regardless
// of the chosen origin) with a uniformly random heading.
func (o *RandomOracle) ChooseStart() (int, int, worldmodel.Direction) {
	return 0, 0, worldmodel.Direction(o.rng.Intn(4))
}

// IntelligentOracle is the optional oracle of spec.md §4.C ("querying a
// lightweight evaluator (not specified here)"). No such evaluator is
// defined by the spec; this implementation falls back to the random
// oracle's choice so the type is usable as a drop-in without inventing
// undocumented evaluator behaviour.
type IntelligentOracle struct {
	fallback *RandomOracle
}

// NewIntelligentOracle builds an IntelligentOracle with a fallback seed.
func NewIntelligentOracle(seed int64) *IntelligentOracle {
	return &IntelligentOracle{fallback: NewRandomOracle(seed)}
}

func (o *IntelligentOracle) ChooseStart() (int, int, worldmodel.Direction) {
	return o.fallback.ChooseStart()
}
