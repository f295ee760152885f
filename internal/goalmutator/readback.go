package goalmutator

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// readback converts a solved model plus the objective templates into a
// concrete Goal, dropping any literal the solver assigned its absent
// value and any clause that became empty as a result.
func readback(objs []*objTemplate, slots []*slot, m csp.Model) *goalmodel.Goal {
	valueOf := map[[4]int]int{} // (objIdx,specIdx,clauseIdx,litIdx) -> resolved enum index
	for _, s := range slots {
		valueOf[[4]int{s.objIdx, s.specIdx, s.clauseIdx, s.litIdx}] = m[s.variable]
	}

	g := goalmodel.NewGoal()
	for objIdx, t := range objs {
		o := goalmodel.Objective{Kind: t.kind}
		for specIdx, clauses := range t.specs {
			var spec goalmodel.Spec
			for clauseIdx, lits := range clauses {
				var clause goalmodel.Clause
				for litIdx, sl := range lits {
					lit, keep := readbackLiteral(sl, valueOf, objIdx, specIdx, clauseIdx, litIdx)
					if keep {
						clause = append(clause, lit)
					}
				}
				if len(clause) > 0 {
					spec.CNF = append(spec.CNF, clause)
				}
			}
			o.Specs = append(o.Specs, spec)
		}
		if t.hasTotal {
			total := m[t.totalVar]
			o.TotalCnt = &total
		}
		g.Add(o)
	}
	return g
}

func readbackLiteral(sl sourceLiteral, valueOf map[[4]int]int, objIdx, specIdx, clauseIdx, litIdx int) (goalmodel.Literal, bool) {
	lit := goalmodel.Literal{Attribute: sl.attr, Negated: sl.negated}
	if sl.attr == goalmodel.AttrLine {
		lit.Line = sl.line
		return lit, true
	}
	val, ok := valueOf[[4]int{objIdx, specIdx, clauseIdx, litIdx}]
	if !ok {
		return lit, false
	}
	switch sl.attr {
	case goalmodel.AttrName:
		if val == nameAbsent() {
			return lit, false
		}
		lit.Name = nameValues[val]
	case goalmodel.AttrColour:
		if val == colourAbsent() {
			return lit, false
		}
		lit.Colour = colourValues[val]
	case goalmodel.AttrCount:
		if val == countAbsent() {
			return lit, false
		}
		lit.Count = countValues[val]
	default:
		return lit, false
	}
	return lit, true
}
