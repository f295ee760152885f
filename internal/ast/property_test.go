package ast

import (
	"testing"

	"pgregory.net/rapid"
)

// genBlock draws one non-Repeat, non-Cursor block (rapid convention
// from dshills-dungo's graph_test.go: draw()-style generators composed
// inline rather than a separate Generator type).
func genBlock(t *rapid.T, label string) Block {
	kind := rapid.SampledFrom([]Kind{KindFd, KindBk, KindLt, KindRt, KindSetPc}).Draw(t, label+"_kind")
	switch kind {
	case KindSetPc:
		colour := rapid.SampledFrom(PenPalette).Draw(t, label+"_colour")
		return SetPc(colour)
	case KindFd:
		return Fd()
	case KindBk:
		return Bk()
	case KindLt:
		return Lt()
	default:
		return Rt()
	}
}

func genFlatProgram(t *rapid.T) Program {
	n := rapid.IntRange(0, 12).Draw(t, "len")
	p := make(Program, n)
	for i := range p {
		p[i] = genBlock(t, "b")
	}
	return p
}

// TestBlockCountAllMatchesLength checks spec.md §4.A's "all" count is
// always the flat block count for a Repeat-free program, across many
// randomly generated programs.
func TestBlockCountAllMatchesLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genFlatProgram(t)
		counts := p.BlockCount()
		if counts["all"] != len(p) {
			t.Fatalf("all=%d, want %d for program %+v", counts["all"], len(p), p)
		}
	})
}

// TestCloneProducesAnEqualProgram checks Program.Clone is always a
// deep, value-equal copy, never aliasing the original's slices.
func TestCloneProducesAnEqualProgram(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genFlatProgram(t)
		clone := p.Clone()
		if !clone.Equal(p) {
			t.Fatalf("clone not equal to original: %+v vs %+v", clone, p)
		}
		if len(p) > 0 {
			clone[0].Kind = KindCursor
			if p[0].Kind == KindCursor {
				t.Fatalf("mutating clone leaked into original")
			}
		}
	})
}

// TestExactlyConstraintIsSatisfiedByItsOwnCounts checks a constraint
// built directly from a program's own BlockCount always accepts that
// program (spec.md §8 law 3's closure property specialised to the
// identity mutation).
func TestExactlyConstraintIsSatisfiedByItsOwnCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genFlatProgram(t)
		cons := CodeConstraint{Exactly: map[string]int(p.BlockCount())}
		if !cons.Satisfies(p) {
			t.Fatalf("program does not satisfy a constraint built from its own counts: %+v", p)
		}
	})
}
