package mutator

import "github.com/xlogosyn/xlogosyn/internal/ast"

// deriveConstraint builds the CodeConstraint coupled to a mutated
// program, preserving refCons's category assignment (which names are
// Exactly vs AtMost vs StartBy) per spec.md §4.D's coupling rules:
// Exactly/AtMost counts must equal the mutated program's actual counts,
// and a StartBy prefix must literally match. ok is false when the
// mutated program cannot satisfy that coupling (e.g. its StartBy
// prefix diverged), in which case the candidate is rejected.
func deriveConstraint(refCons ast.CodeConstraint, refProg, mutProg ast.Program, diff Difficulty) (ast.CodeConstraint, bool) {
	counts := mutProg.BlockCount()
	out := ast.CodeConstraint{
		Exactly: map[string]int{},
		AtMost:  map[string]int{},
	}
	for name := range refCons.Exactly {
		out.Exactly[name] = counts[name]
	}
	for name := range refCons.AtMost {
		out.AtMost[name] = counts[name]
	}
	if len(refCons.StartBy) > 0 {
		flat := mutProg // StartBy matches the top-level sequence, not the unrolled trace
		if len(flat) < len(refCons.StartBy) {
			return ast.CodeConstraint{}, false
		}
		for i, k := range refCons.StartBy {
			if flat[i].Kind != k {
				return ast.CodeConstraint{}, false
			}
		}
		out.StartBy = append([]ast.Kind(nil), refCons.StartBy...)
	}
	if refSum, ok := refCons.Exactly["all"]; ok {
		refOthers := sumOtherExact(refCons)
		if refSum == refOthers {
			mutOthers := sumOtherExact(out)
			if out.Exactly["all"] != mutOthers {
				return ast.CodeConstraint{}, false
			}
		}
	}
	if err := out.Validate(len(mutProg)); err != nil {
		return ast.CodeConstraint{}, false
	}
	if !sizeWithinBudget(refCons, out, diff) {
		return ast.CodeConstraint{}, false
	}
	return out, true
}

func sumOtherExact(c ast.CodeConstraint) int {
	sum := 0
	for name, n := range c.Exactly {
		if name != "all" {
			sum += n
		}
	}
	return sum
}

func constraintSize(c ast.CodeConstraint) int {
	return len(c.Exactly) + len(c.AtMost) + len(c.StartBy)
}

func sizeWithinBudget(ref, mut ast.CodeConstraint, diff Difficulty) bool {
	delta := constraintSize(mut) - constraintSize(ref)
	if delta > 0 && delta > diff.MaxConsInc {
		return false
	}
	if delta < 0 && -delta > diff.MaxConsDec {
		return false
	}
	return true
}
