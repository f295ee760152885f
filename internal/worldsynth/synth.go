package worldsynth

import (
	"context"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// tryCapMultiplier mirrors internal/mutator and internal/goalmutator's
// enumeration-cap convention: bound how many raw models Synthesize
// inspects per accepted world, since many models get rejected by
// readback's belt-and-braces World.Validate call.
const tryCapMultiplier = 25

// Options configures the optional passes of Synthesize.
type Options struct {
	// Reference, when non-nil, enables the reference-world similarity
	// pass (skipped automatically if Goal has any draw objective).
	Reference *worldmodel.World
	// SimilarityVariation is the allowed +/- band for wall/forbidden
	// ratio comparisons against Reference.
	SimilarityVariation float64
	// EnableSymmetry turns on the forbidden-area axis-mirror rule.
	EnableSymmetry bool
}

// Synthesizer runs component F over one partial world.
type Synthesizer struct{}

// New constructs a Synthesizer. Stateless; safe to reuse or construct
// fresh per call.
func New() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize enumerates up to n distinct concrete worlds completing pw,
// consistent with prog/cons (the candidate program and its code-shape
// constraint) and goal, per spec.md §4.F.
func (s *Synthesizer) Synthesize(ctx context.Context, pw *worldmodel.PartialWorld, prog ast.Program, cons ast.CodeConstraint, goal *goalmodel.Goal, opts Options, n int) ([]*worldmodel.World, error) {
	store := csp.NewStore()
	v := newVars(store, pw.Grid)

	if err := pinPartial(store, v, pw); err != nil {
		return nil, err
	}
	if err := postItemBaseProperties(store, v); err != nil {
		return nil, err
	}
	if err := postTileBaseProperties(store, v); err != nil {
		return nil, err
	}
	if err := postCrossComponentRules(store, v); err != nil {
		return nil, err
	}
	if err := postReachability(store, v); err != nil {
		return nil, err
	}
	if opts.EnableSymmetry {
		if err := postForbiddenSymmetry(store, v); err != nil {
			return nil, err
		}
	}

	ge := newGoalEmbedder(v, pw.Trace)
	if err := ge.postGoal(store, goal); err != nil {
		return nil, err
	}

	if pw.Turtle.Dir != nil {
		if err := postTraceOptimality(store, v, prog, cons, goal, pw.Trace, *pw.Turtle.Dir); err != nil {
			return nil, err
		}
	}

	if opts.Reference != nil && !hasDraw(goal) {
		rs := computeRefStats(opts.Reference)
		variation := opts.SimilarityVariation
		if variation == 0 {
			variation = 0.2
		}
		if err := postSimilarity(store, v, rs, variation); err != nil {
			return nil, err
		}
	}

	tryCap := n*tryCapMultiplier + tryCapMultiplier
	enumerator := csp.NewEnumerator(store, csp.NewDFSSearch(), tryCap)

	var results []*worldmodel.World
	seen := map[string]bool{}
	for len(results) < n {
		model, ok, err := enumerator.Next(ctx)
		if err != nil {
			return results, err
		}
		if !ok {
			break
		}
		w, err := readback(v, pw, model)
		if err != nil {
			continue
		}
		key, err := w.MarshalJSON()
		if err != nil {
			continue
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		results = append(results, w)
	}
	return results, nil
}

func hasDraw(g *goalmodel.Goal) bool {
	_, ok := g.Objectives[goalmodel.KindDraw]
	return ok
}
