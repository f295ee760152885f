package mutator

import (
	"context"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/csp"
)

// MutationResult is one (program, constraint) pair produced by Mutate.
type MutationResult struct {
	Program    ast.Program
	Constraint ast.CodeConstraint
}

// Mutator runs component D over a reference program/constraint.
type Mutator struct {
	Padding Padding
}

// New builds a Mutator using DefaultPadding.
func New() *Mutator {
	return &Mutator{Padding: DefaultPadding}
}

// tryCapMultiplier bounds how many raw solver models Mutate will
// inspect (and reject via structurallyValid/deriveConstraint) per
// accepted result, so that a difficulty budget that is mostly
// unsatisfiable by the post-hoc filters still terminates.
const tryCapMultiplier = 25

// Mutate enumerates up to n distinct (program, constraint) pairs near
// (ref, refCons) within diff's budget (spec.md §4.D's model-blocker
// enumeration loop).
func (m *Mutator) Mutate(ctx context.Context, ref ast.Program, refCons ast.CodeConstraint, diff Difficulty, n int) ([]MutationResult, error) {
	store := csp.NewStore()
	enc := newEncoder(store, diff)
	slots := buildSkeleton(ref, m.Padding)
	if _, err := enc.encode(slots); err != nil {
		return nil, err
	}
	if err := enc.twinEquality(slots); err != nil {
		return nil, err
	}

	refTotal := len(ref.Flatten())
	lo, hi := refTotal-diff.MaxCodeDec, refTotal+diff.MaxCodeInc
	if diff.ExactCodeInc != nil {
		lo, hi = refTotal+*diff.ExactCodeInc, refTotal+*diff.ExactCodeInc
	}
	if lo < 0 {
		lo = 0
	}
	if err := store.Post(csp.SumInRange(enc.indicators, onesLike(enc.indicators), lo, hi)); err != nil {
		return nil, err
	}

	tryCap := n*tryCapMultiplier + tryCapMultiplier
	enumerator := csp.NewEnumerator(store, csp.NewDFSSearch(), tryCap)

	var results []MutationResult
	seen := map[string]bool{}
	for len(results) < n {
		model, ok, err := enumerator.Next(ctx)
		if err != nil {
			return results, err
		}
		if !ok {
			break
		}
		prog := readback(slots, model)
		if err := prog.Validate(); err != nil {
			continue
		}
		if !structurallyValid(prog) {
			continue
		}
		cons, ok := deriveConstraint(refCons, ref, prog, diff)
		if !ok {
			continue
		}
		key := dedupeKey(prog, cons)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, MutationResult{Program: prog, Constraint: cons})
	}
	return results, nil
}

func dedupeKey(prog ast.Program, cons ast.CodeConstraint) string {
	progJSON, _ := prog.MarshalJSON()
	consJSON, _ := cons.MarshalJSON()
	return string(progJSON) + "|" + string(consJSON)
}
