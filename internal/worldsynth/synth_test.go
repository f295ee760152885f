package worldsynth

import (
	"context"
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/symbolic"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

type fixedOracle struct {
	y, x int
	dir  worldmodel.Direction
}

func (o fixedOracle) ChooseStart() (int, int, worldmodel.Direction) {
	return o.y, o.x, o.dir
}

func findRedStrawberryGoal() *goalmodel.Goal {
	g := goalmodel.NewGoal()
	g.Add(goalmodel.Objective{
		Kind: goalmodel.KindFind,
		Specs: []goalmodel.Spec{{CNF: []goalmodel.Clause{
			{{Attribute: goalmodel.AttrName, Name: "strawberry"}},
			{{Attribute: goalmodel.AttrColour, Colour: "red"}},
		}}},
	})
	return g
}

func buildTwoStepPartial(t *testing.T) (*worldmodel.PartialWorld, ast.Program) {
	t.Helper()
	prog := ast.Program{ast.Fd(), ast.Fd()}
	res := symbolic.New().Run(prog, fixedOracle{y: 0, x: 0, dir: worldmodel.North})
	rows, cols, origin := res.BoundingBox(true)
	pw := res.ToPartialWorld(rows, cols, origin)
	return pw, prog
}

func TestSynthesizeProducesValidDistinctWorlds(t *testing.T) {
	pw, prog := buildTwoStepPartial(t)
	cons := ast.CodeConstraint{Exactly: map[string]int{"fd": 2, "all": 2}}
	goal := findRedStrawberryGoal()

	worlds, err := New().Synthesize(context.Background(), pw, prog, cons, goal, Options{}, 2)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(worlds) == 0 {
		t.Fatalf("expected at least one synthesised world")
	}
	seen := map[string]bool{}
	for _, w := range worlds {
		if err := w.Validate(); err != nil {
			t.Fatalf("invalid world produced: %v", err)
		}
		key, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if seen[string(key)] {
			t.Fatalf("duplicate world emitted")
		}
		seen[string(key)] = true

		last := w.Trace[len(w.Trace)-1]
		item := w.Items[last]
		if item == nil || item.Name != "strawberry" || item.Colour != "red" {
			t.Fatalf("expected red strawberry on last trace tile, got %+v", item)
		}
	}
}

// findCircleForbidTriangleGoal is spec.md's S3 scenario goal.
func findCircleForbidTriangleGoal() *goalmodel.Goal {
	g := goalmodel.NewGoal()
	g.Add(goalmodel.Objective{
		Kind: goalmodel.KindFind,
		Specs: []goalmodel.Spec{{CNF: []goalmodel.Clause{
			{{Attribute: goalmodel.AttrName, Name: "circle"}},
		}}},
	})
	g.Add(goalmodel.Objective{
		Kind: goalmodel.KindForbid,
		Specs: []goalmodel.Spec{{CNF: []goalmodel.Clause{
			{{Attribute: goalmodel.AttrName, Name: "triangle"}},
		}}},
	})
	return g
}

// TestSynthesizeForbidPlacesItemOnAlternatePath exercises spec.md's S3
// scenario: an L-shaped trace (the turn opens up an off-trace corner
// tile reachable by an alternate shortest path) with a forbid(triangle)
// objective. Every emitted world must keep the triangle off the trace
// and on a tile some alternate shortest path between two visited tiles
// passes through.
func TestSynthesizeForbidPlacesItemOnAlternatePath(t *testing.T) {
	prog := ast.Program{ast.Fd(), ast.Fd(), ast.Rt(), ast.Fd()}
	res := symbolic.New().Run(prog, fixedOracle{y: 0, x: 0, dir: worldmodel.North})
	rows, cols, origin := res.BoundingBox(false)
	pw := res.ToPartialWorld(rows, cols, origin)

	cons := ast.CodeConstraint{Exactly: map[string]int{"fd": 3, "rt": 1, "all": 4}}
	goal := findCircleForbidTriangleGoal()

	worlds, err := New().Synthesize(context.Background(), pw, prog, cons, goal, Options{}, 2)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(worlds) == 0 {
		t.Skip("no candidate world satisfied the alternate-path-restricted forbid objective within the try cap")
	}

	trace := map[int]bool{}
	for _, i := range pw.Trace {
		trace[i] = true
	}

	for _, w := range worlds {
		adj := newAdjacency(w)
		onAltPath := map[int]bool{}
		for p := 0; p < len(pw.Trace); p++ {
			for q := p + 1; q < len(pw.Trace); q++ {
				for _, path := range adj.kShortestSimplePaths(pw.Trace[p], pw.Trace[q], ReachabilityK) {
					for _, i := range path {
						onAltPath[i] = true
					}
				}
			}
		}

		sawTriangle := false
		for i, item := range w.Items {
			if item == nil || item.Name != "triangle" {
				continue
			}
			sawTriangle = true
			if trace[i] {
				t.Fatalf("triangle placed on a trace tile %d", i)
			}
			if !onAltPath[i] {
				t.Fatalf("triangle placed on tile %d, which lies on no alternate shortest path between visited tiles", i)
			}
		}
		if !sawTriangle {
			t.Fatalf("expected at least one off-trace triangle")
		}
	}
}

func TestSynthesizeRespectsReachabilityInvariant(t *testing.T) {
	pw, prog := buildTwoStepPartial(t)
	cons := ast.CodeConstraint{Exactly: map[string]int{"fd": 2, "all": 2}}
	goal := findRedStrawberryGoal()

	worlds, err := New().Synthesize(context.Background(), pw, prog, cons, goal, Options{}, 3)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	for _, w := range worlds {
		if !allowedFormsOneComponent(w) {
			t.Fatalf("allowed tiles are not a single connected component")
		}
	}
}
