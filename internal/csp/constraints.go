package csp

// Constraint narrows one or more variable domains in a Store. Propagate
// returns (false, nil) on failure (some domain became empty) and a
// non-nil error only for a genuine programming mistake (e.g. an
// out-of-range variable id), mirroring the ok/error split gokando's
// constraint propagators use.
type Constraint interface {
	Propagate(s *Store) (bool, error)
}

// constraintFunc adapts a plain function into a Constraint.
type constraintFunc func(s *Store) (bool, error)

func (f constraintFunc) Propagate(s *Store) (bool, error) { return f(s) }

// Equal pins variable v to value.
func Equal(v, value int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		return s.Narrow(v, s.Domain(v).Intersect(SingletonDomain(len(s.Domain(v).words)*64, value))), nil
	})
}

// In restricts v's domain to the given set of values.
func In(v int, values ...int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		n := len(s.Domain(v).words) * 64
		return s.Narrow(v, s.Domain(v).Intersect(DomainOf(n, values...))), nil
	})
}

// EqualVars forces a and b to take the same value once either narrows.
func EqualVars(a, b int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		merged := s.Domain(a).Intersect(s.Domain(b))
		okA := s.Narrow(a, merged)
		okB := s.Narrow(b, merged)
		return okA && okB, nil
	})
}

// NotEqualVars forbids a and b from taking the same value; it only
// propagates once one side is a singleton.
func NotEqualVars(a, b int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		da, db := s.Domain(a), s.Domain(b)
		ok := true
		if da.IsSingleton() {
			ok = s.Narrow(b, db.Without(da.SingletonValue())) && ok
		}
		if s.Domain(b).IsSingleton() {
			ok = s.Narrow(a, s.Domain(a).Without(s.Domain(b).SingletonValue())) && ok
		}
		return ok, nil
	})
}

// AllDifferent forbids any two variables in vars from sharing a value.
// Propagation is the simple "remove singletons from the rest" rule
// (not full Régin filtering); adequate for the short slot vectors D/E
// ever build.
func AllDifferent(vars ...int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		for _, v := range vars {
			d := s.Domain(v)
			if !d.IsSingleton() {
				continue
			}
			val := d.SingletonValue()
			for _, other := range vars {
				if other == v {
					continue
				}
				if !s.Narrow(other, s.Domain(other).Without(val)) {
					return false, nil
				}
			}
		}
		return true, nil
	})
}

// SumEqual asserts that the weighted sum of vars equals total, using
// interval (bounds) consistency rather than full domain consistency.
func SumEqual(vars []int, weights []int, total int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		minSum, maxSum := 0, 0
		bounds := make([][2]int, len(vars))
		for i, v := range vars {
			d := s.Domain(v)
			lo, ok := d.Min()
			if !ok {
				return false, nil
			}
			hi, _ := d.Max()
			w := weights[i]
			if w < 0 {
				lo, hi = hi, lo
			}
			bounds[i] = [2]int{lo * w, hi * w}
			minSum += bounds[i][0]
			maxSum += bounds[i][1]
		}
		if total < minSum || total > maxSum {
			return false, nil
		}
		// Bounds-tighten each variable given the others' extremes.
		for i, v := range vars {
			w := weights[i]
			if w == 0 {
				continue
			}
			restMin := minSum - bounds[i][0]
			restMax := maxSum - bounds[i][1]
			need := total - restMax
			needHi := total - restMin
			lo, hi := need, needHi
			if w < 0 {
				lo, hi = needHi, need
			}
			loVal, hiVal := ceilDiv(lo, w), floorDiv(hi, w)
			if w < 0 {
				loVal, hiVal = ceilDiv(hi, w), floorDiv(lo, w)
			}
			n := len(s.Domain(v).words) * 64
			restricted := s.Domain(v)
			for val := 0; val < n; val++ {
				if val < loVal || val > hiVal {
					restricted = restricted.Without(val)
				}
			}
			if !s.Narrow(v, restricted) {
				return false, nil
			}
		}
		return true, nil
	})
}

// SumInRange asserts that the weighted sum of vars lies in [lo,hi]
// inclusive. It fails once the interval of achievable sums no longer
// meets [lo,hi]; unlike SumEqual it does not narrow any domain. Used by the program/constraint mutator for the
// inc/dec-style budgets of spec.md §4.D (total block count, repeat
// body size, repeat times, constraint size).
func SumInRange(vars []int, weights []int, lo, hi int) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		minSum, maxSum := 0, 0
		for i, v := range vars {
			d := s.Domain(v)
			dlo, ok := d.Min()
			if !ok {
				return false, nil
			}
			dhi, _ := d.Max()
			w := weights[i]
			a, b := dlo*w, dhi*w
			if w < 0 {
				a, b = b, a
			}
			minSum += a
			maxSum += b
		}
		if hi < minSum || lo > maxSum {
			return false, nil
		}
		return true, nil
	})
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return a
	}
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

func floorDiv(a, b int) int {
	if b == 0 {
		return a
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Check posts a global constraint that defers until every variable in
// vars is singleton, then calls ok with their resolved values; it
// returns true (a no-op) while any variable is still undecided. This
// trades propagation strength for tractability on constraints whose
// semantics aren't naturally decomposable into per-pair support rules
// (spec.md §4.F's reachability and trace-optimality predicates, and
// the goal-embedding formulas of spec.md §4.F "Goal embedding" — each
// is cheap to *evaluate* on a concrete assignment but expensive to
// filter incrementally). DFSSearch's chronological backtracking still
// makes this sound: a violated Check simply fails the leaf and the
// search retries the next value.
func Check(vars []int, ok func(values []int) bool) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		values := make([]int, len(vars))
		for i, v := range vars {
			d := s.Domain(v)
			if !d.IsSingleton() {
				return true, nil
			}
			values[i] = d.SingletonValue()
		}
		return ok(values), nil
	})
}

// Predicate is a fully general n-ary constraint checked by brute-force
// generalised arc consistency: a value survives in a variable's domain
// only if some combination of the other variables' current domains
// satisfies admissible. This is only tractable for small domains and
// few variables, which is exactly the shape of the sliding-window
// pattern-prohibition rules in component D and the literal-assignment
// rules in component E.
func Predicate(vars []int, admissible func(assignment []int) bool) Constraint {
	return constraintFunc(func(s *Store) (bool, error) {
		doms := make([]Domain, len(vars))
		for i, v := range vars {
			doms[i] = s.Domain(v)
		}
		supported := make([]map[int]bool, len(vars))
		for i := range supported {
			supported[i] = map[int]bool{}
		}
		assignment := make([]int, len(vars))
		var walk func(i int)
		walk = func(i int) {
			if i == len(vars) {
				if admissible(assignment) {
					for j, a := range assignment {
						supported[j][a] = true
					}
				}
				return
			}
			for _, val := range doms[i].Values() {
				assignment[i] = val
				walk(i + 1)
			}
		}
		walk(0)
		ok := true
		for i, v := range vars {
			n := len(s.Domain(v).words) * 64
			keep := EmptyDomain(n)
			for val := range supported[i] {
				keep.words[val/64] |= 1 << uint(val%64)
			}
			if !s.Narrow(v, keep) {
				ok = false
			}
		}
		return ok, nil
	})
}
