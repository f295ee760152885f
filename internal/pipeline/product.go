package pipeline

import (
	"math/rand"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/mutator"
)

// triple is one unit of work the driver fans out over: one mutated
// (program, constraint) pair from D crossed with one goal from E.
type triple struct {
	Program    ast.Program
	Constraint ast.CodeConstraint
	Goal       *goalmodel.Goal
}

// buildTriples forms the Cartesian product of pairs x goals, shuffles
// it with a fixed seed for reproducibility (spec.md §8 law 1:
// "deterministic given a fixed seed"), and truncates to cap.
func buildTriples(pairs []mutator.MutationResult, goals []*goalmodel.Goal, seed int64, cap int) []triple {
	all := make([]triple, 0, len(pairs)*len(goals))
	for _, p := range pairs {
		for _, g := range goals {
			all = append(all, triple{Program: p.Program, Constraint: p.Constraint, Goal: g})
		}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if cap > 0 && len(all) > cap {
		all = all[:cap]
	}
	return all
}
