package csp

import (
	"context"
	"testing"
)

func TestDomainBasics(t *testing.T) {
	d := DomainOf(8, 1, 3, 5)
	if d.Count() != 3 {
		t.Fatalf("expected count 3, got %d", d.Count())
	}
	if !d.Has(3) || d.Has(2) {
		t.Fatalf("unexpected membership")
	}
	d2 := d.Without(3)
	if d2.Count() != 2 || d2.Has(3) {
		t.Fatalf("Without did not remove value")
	}
}

func TestAllDifferentPropagation(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", SingletonDomain(3, 0))
	b := s.NewVar("b", FullDomain(3))
	c := s.NewVar("c", FullDomain(3))
	if err := s.Post(AllDifferent(a, b, c)); err != nil {
		t.Fatalf("post: %v", err)
	}
	if s.Domain(b).Has(0) {
		t.Fatalf("expected value 0 removed from b after AllDifferent with singleton a")
	}
}

func TestSumEqualBounds(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", SingletonDomain(5, 0))
	b := s.NewVar("b", FullDomain(5))
	if err := s.Post(SumEqual([]int{a, b}, []int{1, 1}, 4)); err != nil {
		t.Fatalf("post: %v", err)
	}
	if !s.Domain(b).IsSingleton() || s.Domain(b).SingletonValue() != 4 {
		t.Fatalf("expected b pinned to 4 once a=0 and a+b=4, got domain %v", s.Domain(b).Values())
	}
}

func TestEnumeratorFindsDistinctModelsThenStops(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", FullDomain(2))
	b := s.NewVar("b", FullDomain(2))
	if err := s.Post(AllDifferent(a, b)); err != nil {
		t.Fatalf("post: %v", err)
	}
	enum := NewEnumerator(s, NewDFSSearch(), 0)
	models, err := enum.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected exactly 2 distinct models for a 2-var all-different over {0,1}, got %d", len(models))
	}
	seen := map[[2]int]bool{}
	for _, m := range models {
		seen[[2]int{m[0], m[1]}] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 distinct assignments, got %d", len(seen))
	}
}

func TestPredicateConstraintFiltersUnsupportedValues(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", FullDomain(3))
	b := s.NewVar("b", FullDomain(3))
	// a + b must equal 2
	pred := Predicate([]int{a, b}, func(assign []int) bool {
		return assign[0]+assign[1] == 2
	})
	if err := s.Post(pred); err != nil {
		t.Fatalf("post: %v", err)
	}
	if s.Domain(a).Count() != 3 {
		t.Fatalf("expected all 3 values of a to have some support, got %d", s.Domain(a).Count())
	}
}
