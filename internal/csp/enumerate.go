package csp

import "context"

// Enumerator implements the "model blocker" enumeration idiom used
// throughout spec.md §4: request a model, forbid exactly that
// assignment, request another, until the solver reports unsat or an
// enumeration cap is reached.
type Enumerator struct {
	store  *Store
	search *DFSSearch
	cap    int
	found  int
	// exhausted is set once blocking the last model left the store
	// unsatisfiable, so no further model exists.
	exhausted bool
}

// NewEnumerator builds an Enumerator over store, stopping after cap
// models (cap<=0 means unbounded).
func NewEnumerator(store *Store, search *DFSSearch, cap int) *Enumerator {
	if search == nil {
		search = NewDFSSearch()
	}
	return &Enumerator{store: store, search: search, cap: cap}
}

// Next returns the next distinct model, or ok=false once the solver is
// exhausted or the cap is reached. Each returned model is immediately
// blocked by posting ¬(all variables equal these values) so a
// subsequent Next call cannot return it again, matching spec.md §4.D's
// "model blocker" loop and the cancellation contract of spec.md §5 (the
// last blocker clause survives, so resuming later continues from the
// next model).
func (e *Enumerator) Next(ctx context.Context) (Model, bool, error) {
	if e.exhausted || (e.cap > 0 && e.found >= e.cap) {
		return nil, false, nil
	}
	model, ok, err := e.search.FindModel(ctx, e.store)
	if err != nil || !ok {
		return nil, false, err
	}
	e.found++
	if err := e.store.Post(blockModel(model)); err != nil {
		// The blocker is unsatisfiable only when model was the last one.
		e.exhausted = true
	}
	return model, true, nil
}

// blockModel returns a constraint forbidding the exact assignment
// model, i.e. ¬(v0=model[0] ∧ v1=model[1] ∧ ...).
func blockModel(model Model) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		freeCount := 0
		freeVar := -1
		for v, val := range model {
			d := s.Domain(v)
			if !d.Has(val) {
				return true, nil // already diverges, constraint trivially satisfied
			}
			if !d.IsSingleton() || d.SingletonValue() != val {
				freeCount++
				freeVar = v
			}
		}
		if freeCount == 0 {
			return false, nil // every var still equals model: contradiction
		}
		if freeCount == 1 {
			// Every other var is pinned to model's value; the lone free
			// var must avoid model's value to prevent the full match.
			return s.Narrow(freeVar, s.Domain(freeVar).Without(model[freeVar])), nil
		}
		return true, nil
	})
}

// Drain collects up to max models (max<=0 means use the Enumerator's
// own cap / run to exhaustion).
func (e *Enumerator) Drain(ctx context.Context, max int) ([]Model, error) {
	var out []Model
	for max <= 0 || len(out) < max {
		m, ok, err := e.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out, nil
}
