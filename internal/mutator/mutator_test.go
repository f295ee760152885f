package mutator

import (
	"context"
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/ast"
)

func TestMutateProducesStructurallyValidDistinctPrograms(t *testing.T) {
	ref := ast.Program{ast.Fd(), ast.Fd(), ast.Rt(), ast.Fd()}
	refCons := ast.CodeConstraint{Exactly: map[string]int{"fd": 3, "all": 4}}

	m := New()
	diff := Difficulty{MaxCodeInc: 1, MaxCodeDec: 1, MaxRepTimesInc: 1, MaxRepTimesDec: 1}
	results, err := m.Mutate(context.Background(), ref, refCons, diff, 5)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected at least one mutation")
	}
	seen := map[string]bool{}
	for _, r := range results {
		if err := r.Program.Validate(); err != nil {
			t.Fatalf("invalid program produced: %v", err)
		}
		if !structurallyValid(r.Program) {
			t.Fatalf("mutation violated structural rules: %+v", r.Program)
		}
		key := dedupeKey(r.Program, r.Constraint)
		if seen[key] {
			t.Fatalf("duplicate mutation result emitted")
		}
		seen[key] = true
	}
}

func TestMutateRespectsExactCodeInc(t *testing.T) {
	ref := ast.Program{ast.Fd(), ast.Rt()}
	refCons := ast.CodeConstraint{}
	exact := 1
	diff := Difficulty{ExactCodeInc: &exact}

	m := New()
	results, err := m.Mutate(context.Background(), ref, refCons, diff, 3)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for _, r := range results {
		if len(r.Program.Flatten()) != len(ref.Flatten())+exact {
			t.Fatalf("expected total block count %d, got %d", len(ref.Flatten())+exact, len(r.Program.Flatten()))
		}
	}
}
