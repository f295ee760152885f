package goalmutator

import (
	"context"
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

func findRedStrawberry() *goalmodel.Goal {
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

func TestMutateProducesValidDistinctGoals(t *testing.T) {
	ref := findRedStrawberry()
	m := New()
	results, err := m.Mutate(context.Background(), ref, Difficulty{}, 5)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	seen := map[string]bool{}
	for _, g := range results {
		if err := g.Validate(); err != nil {
			t.Fatalf("invalid goal produced: %v", err)
		}
		key := dedupeKey(g)
		if seen[key] {
			t.Fatalf("duplicate goal emitted")
		}
		seen[key] = true
		if isTriviallyInfeasible(g) {
			t.Fatalf("trivially infeasible goal emitted: %+v", g)
		}
	}
}

func TestSumTotalCntWithinBudget(t *testing.T) {
	ref := goalmodel.NewGoal()
	total := 2
	ref.Add(goalmodel.Objective{
		Kind:     goalmodel.KindSum,
		Specs:    []goalmodel.Spec{{CNF: []goalmodel.Clause{{{Attribute: goalmodel.AttrName, Name: "lemon"}}}}},
		TotalCnt: &total,
	})
	m := New()
	diff := Difficulty{MaxCountInc: 1, MaxCountDec: 1}
	results, err := m.Mutate(context.Background(), ref, diff, 5)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for _, g := range results {
		for _, o := range g.Objectives[goalmodel.KindSum] {
			if o.TotalCnt == nil {
				t.Fatalf("sum objective lost its total_cnt")
			}
			if *o.TotalCnt < total-diff.MaxCountDec || *o.TotalCnt > total+diff.MaxCountInc {
				t.Fatalf("total_cnt %d outside budget around %d", *o.TotalCnt, total)
			}
		}
	}
}
