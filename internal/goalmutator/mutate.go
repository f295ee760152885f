// Package goalmutator implements the goal mutator (component E of
// spec.md §4.E): given a reference Goal, it enumerates nearby Goals
// whose literals range over the same attribute schema (name/colour/
// count/line), using internal/csp the same way internal/mutator uses
// it for programs — one typed solver variable per literal slot, hard
// properties for attribute consistency and cross-goal symmetry, and a
// model-blocker enumeration loop.
package goalmutator

import (
	"context"

	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// Difficulty is the goal mutator's budget: only the sum objective's
// total_cnt has an explicit numeric range in spec.md §4.E ("total_cnt
// in [ref-max_count_dec, ref+max_count_inc]"); every other literal
// slot's mutation range is its attribute's fixed domain.
type Difficulty struct {
	MaxCountInc, MaxCountDec int
}

// Mutator runs component E over a reference goal.
type Mutator struct{}

// New builds a Mutator.
func New() *Mutator { return &Mutator{} }

// tryCapMultiplier bounds raw models inspected per accepted result,
// mirroring internal/mutator's enumeration cap so a budget that is
// mostly rejected by post-hoc feasibility/triviality checks still
// terminates.
const tryCapMultiplier = 25

// Mutate enumerates up to n distinct Goals near ref within diff's
// budget. The reference goal is never among the candidates unless the
// solver's own search happens to reproduce it; callers that want the
// reference goal included (spec.md §4.G: "for difficulty easy/medium
// this returns only the reference goal") skip calling Mutate entirely.
func (m *Mutator) Mutate(ctx context.Context, ref *goalmodel.Goal, diff Difficulty, n int) ([]*goalmodel.Goal, error) {
	store := csp.NewStore()
	slots, objs := buildSlots(store, ref)
	if err := postConstraints(store, slots, objs, diff); err != nil {
		return nil, err
	}

	tryCap := n*tryCapMultiplier + tryCapMultiplier
	enumerator := csp.NewEnumerator(store, csp.NewDFSSearch(), tryCap)

	var out []*goalmodel.Goal
	seen := map[string]bool{}
	for len(out) < n {
		model, ok, err := enumerator.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		g := readback(objs, slots, model)
		simplify(g)
		if err := g.Validate(); err != nil {
			continue
		}
		if isTriviallyInfeasible(g) {
			continue
		}
		key := dedupeKey(g)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, g)
	}
	return out, nil
}

func dedupeKey(g *goalmodel.Goal) string {
	b, _ := goalmodel.MarshalGoalJSON(g)
	return string(b)
}
