package csp

import (
	"context"
	"fmt"
	"sort"
)

// VarOrder picks the next unassigned variable to branch on, or -1 if
// every variable is already singleton.
type VarOrder func(s *Store) int

// ValOrder returns the values of v's current domain in the order search
// should try them.
type ValOrder func(s *Store, v int) []int

// FirstUnassigned branches on the lowest-indexed non-singleton
// variable — the default, deterministic heuristic.
func FirstUnassigned(s *Store) int {
	for v := 0; v < s.NumVars(); v++ {
		if !s.Domain(v).IsSingleton() {
			return v
		}
	}
	return -1
}

// SmallestDomain branches on the non-singleton variable with the fewest
// remaining values, breaking ties by lowest index (fail-first
// heuristic).
func SmallestDomain(s *Store) int {
	best, bestCount := -1, 0
	for v := 0; v < s.NumVars(); v++ {
		d := s.Domain(v)
		if d.IsSingleton() {
			continue
		}
		if best == -1 || d.Count() < bestCount {
			best, bestCount = v, d.Count()
		}
	}
	return best
}

// Ascending tries a variable's values from smallest to largest.
func Ascending(s *Store, v int) []int {
	return s.Domain(v).Values()
}

// Descending tries a variable's values from largest to smallest.
func Descending(s *Store, v int) []int {
	vals := s.Domain(v).Values()
	sort.Sort(sort.Reverse(sort.IntSlice(vals)))
	return vals
}

// DFSSearch is depth-first search with chronological backtracking over
// a Store, mirroring gokando's DFSSearch but trimmed to single-threaded
// use (spec.md §5).
type DFSSearch struct {
	VarOrder VarOrder
	ValOrder ValOrder
}

// NewDFSSearch builds a search using the default heuristics.
func NewDFSSearch() *DFSSearch {
	return &DFSSearch{VarOrder: FirstUnassigned, ValOrder: Ascending}
}

// Model is one full assignment of every Store variable.
type Model []int

// FindModel runs search from the Store's current state and returns the
// first model found consistent with it, or ok=false if the subtree is
// exhausted (unsatisfiable from here). The Store's trail is restored to
// its pre-call mark before returning, whether or not a model was
// found; the caller decides whether to keep a found model by posting a
// blocking constraint (see Enumerator).
func (d *DFSSearch) FindModel(ctx context.Context, s *Store) (Model, bool, error) {
	mark := s.Mark()
	model, ok, err := d.search(ctx, s)
	s.Undo(mark)
	return model, ok, err
}

func (d *DFSSearch) search(ctx context.Context, s *Store) (Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	ok, err := s.Propagate()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	v := d.VarOrder(s)
	if v == -1 {
		if !s.AllSingleton() {
			return nil, false, fmt.Errorf("csp: search terminated with no branching variable but unresolved domains")
		}
		return snapshotModel(s), true, nil
	}
	for _, val := range d.ValOrder(s, v) {
		mark := s.Mark()
		n := len(s.Domain(v).words) * 64
		if s.Narrow(v, SingletonDomain(n, val)) {
			model, ok, err := d.search(ctx, s)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return model, true, nil
			}
		}
		s.Undo(mark)
	}
	return nil, false, nil
}

func snapshotModel(s *Store) Model {
	m := make(Model, s.NumVars())
	for v := range m {
		m[v] = s.Domain(v).SingletonValue()
	}
	return m
}
