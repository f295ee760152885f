package pipeline

import (
	"context"
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/assets"
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/mutator"
)

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

func twoStepReference() *assets.Reference {
	return &assets.Reference{
		TaskID:     "ref1",
		Program:    ast.Program{ast.Fd(), ast.Fd()},
		Constraint: ast.CodeConstraint{Exactly: map[string]int{"fd": 2, "all": 2}},
		Goal:       findRedStrawberryGoal(),
	}
}

func TestBuildTriplesIsDeterministicGivenSameSeed(t *testing.T) {
	pairs := []mutator.MutationResult{
		{Program: ast.Program{ast.Fd()}, Constraint: ast.CodeConstraint{}},
		{Program: ast.Program{ast.Lt()}, Constraint: ast.CodeConstraint{}},
	}
	goals := []*goalmodel.Goal{findRedStrawberryGoal(), findRedStrawberryGoal()}

	a := buildTriples(pairs, goals, 42, 0)
	b := buildTriples(pairs, goals, 42, 0)
	if len(a) != len(b) || len(a) != 4 {
		t.Fatalf("expected 4 triples from both runs, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Program.Equal(b[i].Program) {
			t.Fatalf("triple %d order differs across runs with the same seed", i)
		}
	}
}

func TestBuildTriplesRespectsSampleCap(t *testing.T) {
	pairs := []mutator.MutationResult{
		{Program: ast.Program{ast.Fd()}},
		{Program: ast.Program{ast.Lt()}},
		{Program: ast.Program{ast.Rt()}},
	}
	goals := []*goalmodel.Goal{findRedStrawberryGoal()}
	got := buildTriples(pairs, goals, 7, 2)
	if len(got) != 2 {
		t.Fatalf("expected sample cap to truncate to 2, got %d", len(got))
	}
}

func TestRunEasyDifficultyUsesOnlyReferenceGoal(t *testing.T) {
	ref := twoStepReference()
	d, err := NewDriver(Config{
		NCodes: 2, NInitPerTriple: 1, NWorldsPerInit: 1, SampleCap: 2, MaxEmit: 2, MaxWorkers: 2, Seed: 1,
	})
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	goals, err := d.mutateGoals(context.Background(), ref.Goal, DefaultBudgets[Easy])
	if err != nil {
		t.Fatalf("mutate goals: %v", err)
	}
	if len(goals) != 1 || goals[0] != ref.Goal {
		t.Fatalf("expected easy difficulty to return exactly the reference goal, got %d goals", len(goals))
	}
}

func TestRunProducesVerifiedPuzzles(t *testing.T) {
	ref := twoStepReference()
	d, err := NewDriver(Config{
		NCodes: 1, NInitPerTriple: 1, NWorldsPerInit: 2, SampleCap: 1, MaxEmit: 5, MaxWorkers: 2, Seed: 3,
	})
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	puzzles, err := d.Run(context.Background(), ref, Easy)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(puzzles) == 0 {
		t.Fatalf("expected at least one accepted puzzle")
	}
	seen := map[string]bool{}
	for _, p := range puzzles {
		if seen[p.TaskID] {
			t.Fatalf("duplicate task_id emitted: %s", p.TaskID)
		}
		seen[p.TaskID] = true
		if _, err := p.MarshalJSON(); err != nil {
			t.Fatalf("marshal puzzle: %v", err)
		}
	}
}

func TestRunRespectsMaxEmit(t *testing.T) {
	ref := twoStepReference()
	d, err := NewDriver(Config{
		NCodes: 3, NInitPerTriple: 2, NWorldsPerInit: 3, SampleCap: 3, MaxEmit: 1, MaxWorkers: 4, Seed: 9,
	})
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	puzzles, err := d.Run(context.Background(), ref, Easy)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(puzzles) > 1 {
		t.Fatalf("expected MaxEmit=1 to cap accepted puzzles, got %d", len(puzzles))
	}
}

// TestRunIsDeterministicUnderConcurrencyWhenCapped reruns the same
// config/seed with MaxWorkers > 1 and a binding MaxEmit: since
// processTriple results are accepted in triple order regardless of
// which goroutine finishes first, both runs must emit the identical
// task_id sequence (spec.md §8 law 1).
func TestRunIsDeterministicUnderConcurrencyWhenCapped(t *testing.T) {
	cfg := Config{
		NCodes: 3, NInitPerTriple: 2, NWorldsPerInit: 3, SampleCap: 3, MaxEmit: 2, MaxWorkers: 4, Seed: 9,
	}

	run := func() []string {
		ref := twoStepReference()
		d, err := NewDriver(cfg)
		if err != nil {
			t.Fatalf("new driver: %v", err)
		}
		puzzles, err := d.Run(context.Background(), ref, Easy)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		ids := make([]string, len(puzzles))
		for i, p := range puzzles {
			ids[i] = p.TaskID
		}
		return ids
	}

	a, b := run(), run()
	if len(a) == 0 {
		t.Fatalf("expected at least one accepted puzzle")
	}
	if len(a) != len(b) {
		t.Fatalf("run produced different puzzle counts across repeats: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("task_id at position %d differs across repeats with the same seed: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestEdgeColoursCoverPenColoursRejectsUnseenColour(t *testing.T) {
	pen := map[ast.Colour]bool{ast.ColourRed: true}
	if edgeColoursCoverPenColours(pen, []string{"blue"}) {
		t.Fatalf("expected rejection when pen colour never appears among edge colours")
	}
	if !edgeColoursCoverPenColours(pen, []string{"red", "blue"}) {
		t.Fatalf("expected acceptance when pen colour appears among edge colours")
	}
}
