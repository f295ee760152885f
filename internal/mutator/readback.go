package mutator

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/csp"
)

// readback converts a solved model back into an ast.Program, erasing
// any slot the solver assigned noblock (spec.md §4.D).
func readback(slots []*slot, m csp.Model) ast.Program {
	out := make(ast.Program, 0, len(slots))
	for _, s := range slots {
		kind, ok := codeToKind(m[s.kindVar])
		if !ok {
			continue // noblock: erased
		}
		switch kind {
		case ast.KindFd:
			out = append(out, ast.Fd())
		case ast.KindBk:
			out = append(out, ast.Bk())
		case ast.KindLt:
			out = append(out, ast.Lt())
		case ast.KindRt:
			out = append(out, ast.Rt())
		case ast.KindSetPc:
			out = append(out, ast.SetPc(colourAt(m[s.colourVar])))
		case ast.KindRepeat:
			out = append(out, ast.Repeat(m[s.timesVar], readback(s.body, m)))
		}
	}
	return out
}
