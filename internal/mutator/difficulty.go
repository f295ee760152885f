// Package mutator implements the program/constraint mutator (component D
// of spec.md §4.D): given a reference program and code-shape constraint,
// it enumerates nearby (program, constraint) pairs within a difficulty
// budget, using internal/csp to restrict each program slot to a typed
// enum of block kinds and internal/ast to validate the structural rules
// that are cheaper to check post-hoc than to encode as constraints.
package mutator

// Difficulty is the four-budget knob of spec.md §4.D.
type Difficulty struct {
	MaxCodeInc, MaxCodeDec int
	ExactCodeInc           *int

	MaxRepBodyInc, MaxRepBodyDec   int
	MaxRepTimesInc, MaxRepTimesDec int

	MaxConsInc, MaxConsDec int
}

// Padding controls how many empty slots the mutator inserts around the
// reference skeleton (spec.md §4.D encoding steps 2–3). Reference
// implementations of this puzzle family use small single-digit values;
// these defaults match the "using just these commands" easy/medium
// presets.
type Padding struct {
	Heterogeneous int
	Homogeneous   int
}

// DefaultPadding is a conservative padding budget sufficient to
// exercise every insertion rule without making the search space
// unreasonably large.
var DefaultPadding = Padding{Heterogeneous: 1, Homogeneous: 1}
