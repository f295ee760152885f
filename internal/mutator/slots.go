package mutator

import "github.com/xlogosyn/xlogosyn/internal/ast"

// Block codes for the csp.Domain encoding: the six ast.Kind values plus
// a noblock sentinel standing for an erased padding slot (spec.md
// §4.D: "Empty slots that the solver assigns noblock are erased on
// read-back").
const (
	codeFd      = int(ast.KindFd)
	codeBk      = int(ast.KindBk)
	codeLt      = int(ast.KindLt)
	codeRt      = int(ast.KindRt)
	codeSetPc   = int(ast.KindSetPc)
	codeRepeat  = int(ast.KindRepeat)
	codeNoBlock = int(ast.KindCursor) + 1
	numCodes    = codeNoBlock + 1
)

func kindToCode(k ast.Kind) int { return int(k) }

func codeToKind(c int) (ast.Kind, bool) {
	if c == codeNoBlock {
		return 0, false
	}
	return ast.Kind(c), true
}

// slot is one program position in the padded skeleton of spec.md
// §4.D's encoding step. A slot either corresponds 1:1 to a reference
// block (fromRef) or is inserted padding free to become any kind or
// noblock.
type slot struct {
	fromRef  bool
	refKind  ast.Kind
	refBlock ast.Block // valid when fromRef; carries colour/times/body
	isRepeat bool
	body     []*slot // nested slots, only for isRepeat

	kindVar   int
	colourVar int // only meaningful for setpc-capable slots
	timesVar  int // only for isRepeat slots
}

// allowedCodes returns the block codes this slot's kind variable may
// take, per the "restricted to the block kinds allowed by the
// corresponding reference slot" rule: turns mutate into turns, moves
// into moves, setpc into setpc, repeat headers stay repeat, and
// padding slots may be anything (including noblock).
func (s *slot) allowedCodes() []int {
	if !s.fromRef {
		return []int{codeFd, codeBk, codeLt, codeRt, codeSetPc, codeNoBlock}
	}
	switch {
	case s.refKind == ast.KindRepeat:
		return []int{codeRepeat}
	case s.refKind == ast.KindFd || s.refKind == ast.KindBk:
		return []int{codeFd, codeBk, codeNoBlock}
	case s.refKind == ast.KindLt || s.refKind == ast.KindRt:
		return []int{codeLt, codeRt, codeNoBlock}
	case s.refKind == ast.KindSetPc:
		return []int{codeSetPc, codeNoBlock}
	default:
		return []int{codeNoBlock}
	}
}

// newPaddingSlot builds a slot with no reference counterpart.
func newPaddingSlot() *slot {
	return &slot{fromRef: false}
}

// buildSkeleton pads a reference program per spec.md §4.D steps 1–4:
// heterogeneous padding at repeat/non-repeat boundaries and the two
// ends, homogeneous padding between two non-repeat blocks, and
// recursive padding of repeat bodies.
func buildSkeleton(ref ast.Program, pad Padding) []*slot {
	var out []*slot
	addHetero := func() {
		for i := 0; i < pad.Heterogeneous; i++ {
			out = append(out, newPaddingSlot())
		}
	}
	addHomog := func() {
		for i := 0; i < pad.Homogeneous; i++ {
			out = append(out, newPaddingSlot())
		}
	}

	addHetero()
	for i, b := range ref {
		out = append(out, newRefSlot(b, pad))
		if i < len(ref)-1 {
			if b.Kind == ast.KindRepeat || ref[i+1].Kind == ast.KindRepeat {
				addHetero()
			} else {
				addHomog()
			}
		}
	}
	addHetero()
	return out
}

func newRefSlot(b ast.Block, pad Padding) *slot {
	s := &slot{fromRef: true, refKind: b.Kind, refBlock: b}
	if b.Kind == ast.KindRepeat {
		s.isRepeat = true
		s.body = buildSkeleton(b.Body, pad)
	}
	return s
}

// flattenSlots returns every slot in the tree in execution order, including
// repeat headers themselves but not descending twice.
func flattenSlots(slots []*slot) []*slot {
	out := make([]*slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, s)
		if s.isRepeat {
			out = append(out, flattenSlots(s.body)...)
		}
	}
	return out
}
