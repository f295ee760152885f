// Package emulator implements the reference emulator (component B of
// spec.md §4.B): a deterministic interpreter that runs a Program against
// a fully concrete World, producing a trace, drawn markers, and a crash
// reason when the turtle runs off the rules.
package emulator

import (
	"go.uber.org/zap"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Result summarises one emulation run.
type Result struct {
	Crashed *worldmodel.CrashReason
	Calls   int
}

// Emulator runs Programs against Worlds. It carries no per-run state of
// its own; spec.md §5 requires a fresh instance per call, so New is
// cheap and callers are expected to construct one per unit of work.
type Emulator struct {
	log *zap.Logger
}

// New constructs an Emulator. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Emulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emulator{log: log}
}

// Run executes prog against w in place, recording trace, edge colours,
// drawn markers and pen colour on w, and returns the crash outcome.
func (e *Emulator) Run(w *worldmodel.World, prog ast.Program) Result {
	st := &state{w: w, penColour: "black"}
	if w.Trace == nil {
		st.w.Trace = append(st.w.Trace, w.TurtleIndex())
	}
	if w.DrawnMarkers == nil {
		st.w.DrawnMarkers = worldmodel.NewMarkerGrid(w.Size())
	}
	st.run(prog)
	w.PenColour = st.penColour
	return Result{Crashed: w.Crashed, Calls: st.calls}
}

// state carries per-run mutable bookkeeping; kept separate from
// Emulator so Emulator itself stays stateless and reusable.
type state struct {
	w         *worldmodel.World
	penColour string
	calls     int
}

func (st *state) run(prog ast.Program) {
	for _, b := range prog {
		if st.w.Crashed != nil {
			return
		}
		st.exec(b)
	}
}

func (st *state) exec(b ast.Block) {
	if st.w.Crashed != nil {
		return
	}
	if b.Kind == ast.KindRepeat {
		for i := 0; i < b.Times; i++ {
			st.run(b.Body)
			if st.w.Crashed != nil {
				return
			}
		}
		return
	}
	st.calls++
	if st.calls > worldmodel.MaxCalls {
		st.crash(worldmodel.CrashExceedMaxCalls)
		return
	}
	switch b.Kind {
	case ast.KindFd:
		st.move(true)
	case ast.KindBk:
		st.move(false)
	case ast.KindLt:
		st.w.Turtle.Dir = st.w.Turtle.Dir.Left()
	case ast.KindRt:
		st.w.Turtle.Dir = st.w.Turtle.Dir.Right()
	case ast.KindSetPc:
		st.penColour = b.PenColour.String()
	}
}

// move executes one fd (fwd=true) or bk (fwd=false) step.
func (st *state) move(fwd bool) {
	w := st.w
	from := w.TurtleIndex()
	exitSide := worldmodel.ExitSide(w.Turtle.Dir, fwd)
	if w.Tiles[from].Wall.Get(exitSide) {
		st.crash(worldmodel.CrashWall)
		return
	}
	dy, dx := w.Turtle.Dir.Delta()
	if !fwd {
		dy, dx = -dy, -dx
	}
	ny, nx := w.Turtle.Y+dy, w.Turtle.X+dx
	if !w.InBounds(ny, nx) {
		st.crash(worldmodel.CrashOutOfWorld)
		return
	}
	to := w.Index(ny, nx)
	tile := w.Tiles[to]
	switch {
	case !tile.Allowed:
		st.crash(worldmodel.CrashForbiddenArea)
		return
	case !tile.Exist:
		st.crash(worldmodel.CrashGridNotExist)
		return
	}
	w.Turtle.Y, w.Turtle.X = ny, nx
	w.Trace = append(w.Trace, to)
	w.Items[to] = nil
	w.EdgeColours = append(w.EdgeColours, st.penColour)
	edge := worldmodel.MarkerEdge{Present: true, Colour: st.penColour}
	w.DrawnMarkers[from] = w.DrawnMarkers[from].Set(exitSide, edge)
	w.DrawnMarkers[to] = w.DrawnMarkers[to].Set(exitSide.Opposite(), edge)
}

func (st *state) crash(reason worldmodel.CrashReason) {
	st.w.Crashed = &reason
}
