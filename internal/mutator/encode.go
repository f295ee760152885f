package mutator

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/csp"
)

// encoder wires a padded skeleton into a csp.Store: one kind variable
// per slot, a colour variable for every slot that may become setpc, a
// times variable per repeat slot, an indicator variable per slot used
// for the total-block-count budget, and twin-repeat equality across
// sibling repeats whose reference bodies were identical.
type encoder struct {
	store      *csp.Store
	diff       Difficulty
	indicators []int
}

func newEncoder(store *csp.Store, diff Difficulty) *encoder {
	return &encoder{store: store, diff: diff}
}

// encode posts every slot variable and hard constraint for the tree
// rooted at slots, returning the indicator variables created (used by
// the caller to bound the whole-program total separately from any
// per-repeat-body bound already posted here).
func (e *encoder) encode(slots []*slot) ([]int, error) {
	localIndicators := make([]int, 0, len(slots))
	for _, s := range slots {
		s.kindVar = e.store.NewVar("kind", csp.DomainOf(numCodes, s.allowedCodes()...))
		s.colourVar = e.store.NewVar("colour", csp.DomainOf(len(ast.PenPalette), colourRange()...))

		ind := e.store.NewVar("isblock", csp.FullDomain(2))
		if err := e.store.Post(indicatorConstraint(s.kindVar, ind)); err != nil {
			return nil, err
		}
		localIndicators = append(localIndicators, ind)
		e.indicators = append(e.indicators, ind)

		if s.isRepeat {
			refTimes := s.refBlock.Times
			lo, hi := refTimes-e.diff.MaxRepTimesDec, refTimes+e.diff.MaxRepTimesInc
			if lo < 1 {
				lo = 1
			}
			if hi > 12 {
				hi = 12
			}
			s.timesVar = e.store.NewVar("times", csp.DomainOf(13, intRange(lo, hi)...))

			bodyIndicators, err := e.encode(s.body)
			if err != nil {
				return nil, err
			}
			refBodyCount := bodyCountOf(s.refBlock.Body)
			lo2 := refBodyCount - e.diff.MaxRepBodyDec
			hi2 := refBodyCount + e.diff.MaxRepBodyInc
			if lo2 < 0 {
				lo2 = 0
			}
			weights := onesLike(bodyIndicators)
			if err := e.store.Post(csp.SumInRange(bodyIndicators, weights, lo2, hi2)); err != nil {
				return nil, err
			}
		}
	}
	return localIndicators, nil
}

// twinEquality finds sibling repeat slots in the same list whose
// reference bodies are structurally equal and forces their mutated
// kind/colour/times sequences to stay identical (spec.md §4.D: "twin
// repeat equality").
func (e *encoder) twinEquality(slots []*slot) error {
	repeats := make([]*slot, 0)
	for _, s := range slots {
		if s.isRepeat {
			repeats = append(repeats, s)
		}
		if s.isRepeat {
			if err := e.twinEquality(s.body); err != nil {
				return err
			}
		}
	}
	for i := 0; i < len(repeats); i++ {
		for j := i + 1; j < len(repeats); j++ {
			a, b := repeats[i], repeats[j]
			if !ast.Program(a.refBlock.Body).Equal(ast.Program(b.refBlock.Body)) {
				continue
			}
			if err := e.store.Post(csp.EqualVars(a.timesVar, b.timesVar)); err != nil {
				return err
			}
			if len(a.body) == len(b.body) {
				for k := range a.body {
					if err := e.store.Post(csp.EqualVars(a.body[k].kindVar, b.body[k].kindVar)); err != nil {
						return err
					}
					if err := e.store.Post(csp.EqualVars(a.body[k].colourVar, b.body[k].colourVar)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func indicatorConstraint(kindVar, indVar int) csp.Constraint {
	return csp.Predicate([]int{kindVar, indVar}, func(a []int) bool {
		isBlock := a[0] != codeNoBlock
		return (a[1] == 1) == isBlock
	})
}

func colourRange() []int {
	out := make([]int, len(ast.PenPalette))
	for i := range ast.PenPalette {
		out[i] = i
	}
	return out
}

func colourAt(i int) ast.Colour {
	return ast.PenPalette[i]
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

func onesLike(vars []int) []int {
	out := make([]int, len(vars))
	for i := range out {
		out[i] = 1
	}
	return out
}

// bodyCountOf returns a repeat body's effective (unrolled) block count,
// the quantity spec.md §4.D's max_rep_body_inc/dec budgets bound.
func bodyCountOf(body ast.Program) int {
	return len(body.Flatten())
}
