package goalmutator

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// postConstraints posts every hard property from spec.md §4.E: per-clause
// attribute consistency and non-emptiness, goal-wide attribute symmetry,
// and the sum objective's total_cnt range.
func postConstraints(store *csp.Store, slots []*slot, objs []*objTemplate, diff Difficulty) error {
	for objIdx, t := range objs {
		for specIdx, clauses := range t.specs {
			for clauseIdx := range clauses {
				members := slotsInClause(slots, objIdx, specIdx, clauseIdx)
				if len(members) == 0 {
					continue
				}
				if err := store.Post(nonEmptyClause(members)); err != nil {
					return err
				}
				if err := postAttributeConsistency(store, members); err != nil {
					return err
				}
			}
		}
		if t.hasTotal {
			lo, hi := t.refTotal-diff.MaxCountDec, t.refTotal+diff.MaxCountInc
			if lo < 0 {
				lo = 0
			}
			t.totalVar = store.NewVar("total_cnt", csp.DomainOf(hi+1, intRange(lo, hi)...))
		}
	}
	if err := postSymmetry(store, slots); err != nil {
		return err
	}
	return nil
}

// nonEmptyClause forbids every literal of a clause taking its absent
// value simultaneously (spec.md §4.E "Non-empty clause").
func nonEmptyClause(members []*slot) csp.Constraint {
	vars := make([]int, len(members))
	absents := make([]int, len(members))
	for i, s := range members {
		vars[i], absents[i] = s.variable, s.absentValue
	}
	return csp.Predicate(vars, func(a []int) bool {
		for i, v := range a {
			if v != absents[i] {
				return true
			}
		}
		return false
	})
}

// postAttributeConsistency restricts a colour literal's domain to the
// palette of any shape/fruit name literal present in the same clause
// (spec.md §4.E "Attribute consistency").
func postAttributeConsistency(store *csp.Store, members []*slot) error {
	var nameSlot, colourSlot *slot
	for _, s := range members {
		switch s.attr {
		case goalmodel.AttrName:
			nameSlot = s
		case goalmodel.AttrColour:
			colourSlot = s
		}
	}
	if nameSlot == nil || colourSlot == nil {
		return nil
	}
	ns, cs := nameSlot, colourSlot
	return store.Post(csp.Predicate([]int{ns.variable, cs.variable}, func(a []int) bool {
		nameVal, colourVal := a[0], a[1]
		if nameVal == ns.absentValue || colourVal == cs.absentValue {
			return true // either side absent: the pairing rule doesn't apply
		}
		name := nameValues[nameVal]
		palette, hasPalette := goalmodel.ShapePalette[name]
		if fixed, isFruit := goalmodel.FruitColour[name]; isFruit {
			return colourValues[colourVal] == fixed
		}
		if !hasPalette {
			return true
		}
		want := colourValues[colourVal]
		for _, c := range palette {
			if c == want {
				return true
			}
		}
		return false
	}))
}

// postSymmetry implements the cross-goal "attribute symmetry" rule of
// spec.md §4.E: every literal slot whose reference value equals another
// slot's reference value (same attribute kind) is forced Equal; slots
// whose reference values differ are forced Distinct whenever both
// resolve to a non-absent value.
func postSymmetry(store *csp.Store, slots []*slot) error {
	groups := map[string][]*slot{}
	var order []string
	for _, s := range slots {
		key, refKey := groupKey(s)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
		_ = refKey
	}
	leaders := map[string]*slot{}
	for _, key := range order {
		members := groups[key]
		leader := members[0]
		leaders[key] = leader
		for _, s := range members[1:] {
			if err := store.Post(csp.EqualVars(leader.variable, s.variable)); err != nil {
				return err
			}
		}
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := leaders[order[i]], leaders[order[j]]
			if a.attr != b.attr {
				continue
			}
			if err := store.Post(distinctUnlessAbsent(a, b)); err != nil {
				return err
			}
		}
	}
	return nil
}

// groupKey returns a (attribute, reference-value) key so slots sharing a
// reference value land in the same equality group; "" for attributes
// this rule doesn't cover (counts and lines carry no symmetry grouping).
func groupKey(s *slot) (key, refKey string) {
	switch s.attr {
	case goalmodel.AttrName:
		return "name:" + s.refName, s.refName
	case goalmodel.AttrColour:
		return "colour:" + s.refColour, s.refColour
	default:
		return "", ""
	}
}

func distinctUnlessAbsent(a, b *slot) csp.Constraint {
	return csp.Predicate([]int{a.variable, b.variable}, func(v []int) bool {
		if v[0] == a.absentValue || v[1] == b.absentValue {
			return true
		}
		return v[0] != v[1] || a.attr != b.attr
	})
}

func intRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}
