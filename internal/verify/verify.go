// Package verify implements the verification emulator (component I of
// spec.md §4.I): a final, cheap sanity net run on every candidate
// puzzle before it is emitted by the pipeline driver (component G). It
// never rejects anything the synthesizer (component F) should not
// already have excluded; a failure here indicates a bug upstream, not
// an expected rejection path.
package verify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/emulator"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldsynth"
)

// Result reports which of the three checks failed, if any.
type Result struct {
	OK             bool
	Crashed        *worldmodel.CrashReason
	CodeShapeOK    bool
	GoalOK         bool
	FailureMessage string
}

// Verifier runs component I over one candidate puzzle.
type Verifier struct {
	log *zap.Logger
}

// New constructs a Verifier. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Verifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{log: log}
}

// Check runs prog against a copy of w via the reference emulator,
// then checks the code-shape constraint structurally and the goal via
// a pinned re-assertion of component F's goal-embedding formula.
func (vf *Verifier) Check(w *worldmodel.World, prog ast.Program, cons ast.CodeConstraint, goal *goalmodel.Goal) (Result, error) {
	run := cloneWorld(w)
	res := emulator.New(vf.log).Run(run, prog)
	if res.Crashed != nil {
		return Result{Crashed: res.Crashed, FailureMessage: fmt.Sprintf("emulation crashed: %s", *res.Crashed)}, nil
	}

	codeOK := cons.Satisfies(prog)
	if !codeOK {
		vf.log.Warn("verify: code-shape check failed on an already-emitted candidate")
	}

	goalOK, err := worldsynth.VerifyGoal(run, goal)
	if err != nil {
		return Result{}, fmt.Errorf("verify: goal satisfiability check: %w", err)
	}
	if !goalOK {
		vf.log.Warn("verify: goal satisfiability check failed on an already-emitted candidate")
	}

	ok := codeOK && goalOK
	r := Result{OK: ok, CodeShapeOK: codeOK, GoalOK: goalOK}
	if !ok {
		r.FailureMessage = "code-shape or goal check failed"
	}
	return r, nil
}

// cloneWorld makes a shallow-per-field copy deep enough for the
// emulator to mutate (trace, drawn markers, turtle position) without
// disturbing the caller's world.
func cloneWorld(w *worldmodel.World) *worldmodel.World {
	cp := *w
	cp.Tiles = append([]worldmodel.Tile(nil), w.Tiles...)
	cp.Items = append([]*worldmodel.Item(nil), w.Items...)
	cp.Markers = append(worldmodel.MarkerGrid(nil), w.Markers...)
	cp.DrawnMarkers = worldmodel.NewMarkerGrid(w.Size())
	cp.Trace = nil
	cp.EdgeColours = nil
	cp.Crashed = nil
	cp.PenColour = ""
	return &cp
}
