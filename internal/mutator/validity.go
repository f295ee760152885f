package mutator

import "github.com/xlogosyn/xlogosyn/internal/ast"

// structurallyValid applies the spec.md §4.D hard properties that are
// cheaper to check against a concrete read-back program than to encode
// as solver constraints over a padded, possibly-erased slot vector:
// sliding-window pattern prohibition, the last-effective-block rule,
// adjacent-setpc colour distinctness, the exclusive blue/black palette,
// no-merge-into-repeat, and the per-repeat-body shape rules.
func structurallyValid(prog ast.Program) bool {
	flat := prog.Flatten()
	if !lastEffectiveNotTurn(prog) {
		return false
	}
	if forbiddenWindow(flat) {
		return false
	}
	if !adjacentSetPcDistinct(flat) {
		return false
	}
	if exclusivePaletteViolated(prog) {
		return false
	}
	for _, b := range prog {
		if b.Kind == ast.KindRepeat {
			if !repeatBodyValid(b.Body) {
				return false
			}
			if mergesIntoRepeat(prog, b) {
				return false
			}
		}
	}
	return true
}

func lastEffectiveNotTurn(prog ast.Program) bool {
	last, ok := prog.LastEffectiveBlock()
	return !ok || !last.IsTurn()
}

// forbiddenWindow checks the sliding-window prohibitions against the
// flattened (repeat-unrolled) execution order.
func forbiddenWindow(flat []ast.Block) bool {
	k := func(i int) ast.Kind { return flat[i].Kind }
	n := len(flat)
	for i := 0; i < n; i++ {
		if i+2 < n && k(i) == ast.KindLt && k(i+1) == ast.KindLt && k(i+2) == ast.KindLt {
			return true
		}
		if i+2 < n && k(i) == ast.KindRt && k(i+1) == ast.KindRt && k(i+2) == ast.KindRt {
			return true
		}
		if i+1 < n && k(i) == ast.KindLt && k(i+1) == ast.KindRt {
			return true
		}
		if i+1 < n && k(i) == ast.KindRt && k(i+1) == ast.KindLt {
			return true
		}
		if i+2 < n && k(i) == ast.KindFd && k(i+1) == ast.KindBk && k(i+2) == ast.KindFd {
			return true
		}
		if i+2 < n && k(i) == ast.KindBk && k(i+1) == ast.KindFd && k(i+2) == ast.KindBk {
			return true
		}
		if i+2 < n && k(i) == ast.KindRt && k(i+1) == ast.KindRt && (k(i+2) == ast.KindFd || k(i+2) == ast.KindBk) {
			return true
		}
		if i+2 < n && k(i) == ast.KindLt && k(i+1) == ast.KindLt && (k(i+2) == ast.KindFd || k(i+2) == ast.KindBk) {
			return true
		}
	}
	run := 0
	var runKind ast.Kind
	for i := 0; i < n; i++ {
		if flat[i].IsStraight() {
			if run > 0 && flat[i].Kind == runKind {
				run++
			} else {
				run, runKind = 1, flat[i].Kind
			}
		} else {
			run = 0
		}
		if run > maxStraightRun {
			return true
		}
	}
	return false
}

// maxStraightRun bounds consecutive fd/fd/... or bk/bk/... chains. The
// spec expresses this as "more than max(rows,cols) consecutive fd or
// bk"; the mutator runs before the synthesized world's grid size is
// known, so it uses a fixed bound instead, matching the original
// pipeline's own never-overridden default of a 3x3 synthesis grid
// (code_smt.py's disabling-pattern call always receives rows=cols=3).
const maxStraightRun = 3

func adjacentSetPcDistinct(flat []ast.Block) bool {
	for i := 0; i+1 < len(flat); i++ {
		if flat[i].Kind == ast.KindSetPc && flat[i+1].Kind == ast.KindSetPc {
			if flat[i].PenColour == flat[i+1].PenColour {
				return false
			}
		}
	}
	return true
}

func exclusivePaletteViolated(prog ast.Program) bool {
	colours := prog.PenColours()
	return colours[ast.ColourBlue] && colours[ast.ColourBlack]
}

func repeatBodyValid(body ast.Program) bool {
	if len(body) == 0 {
		return true
	}
	allFd, allBk, alternating := true, true, true
	for i, b := range body {
		if b.Kind != ast.KindFd {
			allFd = false
		}
		if b.Kind != ast.KindBk {
			allBk = false
		}
		want := ast.KindFd
		if i%2 == 1 {
			want = ast.KindBk
		}
		if b.Kind != want {
			wantRev := ast.KindBk
			if i%2 == 1 {
				wantRev = ast.KindFd
			}
			if b.Kind != wantRev {
				alternating = false
			}
		}
	}
	if allFd || allBk || (alternating && len(body) > 1) {
		return false
	}
	if len(body) >= 2 && body[0].IsTurn() && body[len(body)-1].IsTurn() {
		return false
	}
	return true
}

// mergesIntoRepeat rejects a repeat whose body equals the block
// sequence immediately before or after it in the parent program.
func mergesIntoRepeat(prog ast.Program, rep ast.Block) bool {
	idx := -1
	for i, b := range prog {
		if b.Kind == ast.KindRepeat && b.Equal(rep) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	n := len(rep.Body)
	if idx-n >= 0 {
		before := ast.Program(prog[idx-n : idx])
		if before.Equal(rep.Body) {
			return true
		}
	}
	if idx+1+n <= len(prog) {
		after := ast.Program(prog[idx+1 : idx+1+n])
		if after.Equal(rep.Body) {
			return true
		}
	}
	return false
}
