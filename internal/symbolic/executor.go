package symbolic

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Point is an (y,x) coordinate on the executor's unbounded working
// plane, before component F ever assigns the synthesized world a
// concrete grid size.
type Point struct{ Y, X int }

// Result is the symbolic executor's output before it is materialised
// into a sized PartialWorld: the trace of visited points, the pen
// colour at each step, and the facts forced true/false along the way.
type Result struct {
	Trace       []Point
	EdgeColours []string
	StartDir    worldmodel.Direction

	touched map[Point]bool
	wallSet map[Point]map[worldmodel.Side]bool
}

// Executor runs Programs over the unbounded plane per spec.md §4.C.
// Unlike the reference emulator it never crashes: whenever an
// instruction would require a currently-unknown fact, it forces the
// fact that keeps the run alive.
type Executor struct{}

// New constructs an Executor. It is stateless and safe to reuse or
// construct fresh per call (spec.md §5 calls for per-call instances
// only for the heavier FastEmulator; the symbolic executor is cheap
// either way).
func New() *Executor {
	return &Executor{}
}

// Run executes prog starting from a position and direction chosen by
// oracle.
func (e *Executor) Run(prog ast.Program, oracle Oracle) *Result {
	y, x, dir := oracle.ChooseStart()
	st := &execState{
		y: y, x: x, dir: dir,
		penColour: "black",
		res: &Result{
			StartDir: dir,
			touched:  map[Point]bool{{Y: y, X: x}: true},
			wallSet:  map[Point]map[worldmodel.Side]bool{},
		},
	}
	st.res.Trace = append(st.res.Trace, Point{Y: y, X: x})
	st.run(prog)
	return st.res
}

type execState struct {
	y, x      int
	dir       worldmodel.Direction
	penColour string
	res       *Result
}

func (st *execState) run(prog ast.Program) {
	for _, b := range prog {
		st.exec(b)
	}
}

func (st *execState) exec(b ast.Block) {
	switch b.Kind {
	case ast.KindFd:
		st.move(true)
	case ast.KindBk:
		st.move(false)
	case ast.KindLt:
		st.dir = st.dir.Left()
	case ast.KindRt:
		st.dir = st.dir.Right()
	case ast.KindSetPc:
		st.penColour = b.PenColour.String()
	case ast.KindRepeat:
		for i := 0; i < b.Times; i++ {
			st.run(b.Body)
		}
	}
}

// move forces the wall crossed to be false (no wall, so the step never
// crashes) and marks the destination tile allowed+existing.
func (st *execState) move(fwd bool) {
	from := Point{Y: st.y, X: st.x}
	exitSide := worldmodel.ExitSide(st.dir, fwd)
	st.clearWall(from, exitSide)

	dy, dx := st.dir.Delta()
	if !fwd {
		dy, dx = -dy, -dx
	}
	st.y += dy
	st.x += dx
	to := Point{Y: st.y, X: st.x}
	st.res.touched[to] = true
	st.clearWall(to, exitSide.Opposite())

	st.res.Trace = append(st.res.Trace, to)
	st.res.EdgeColours = append(st.res.EdgeColours, st.penColour)
}

func (st *execState) clearWall(p Point, s worldmodel.Side) {
	if st.res.wallSet[p] == nil {
		st.res.wallSet[p] = map[worldmodel.Side]bool{}
	}
	st.res.wallSet[p][s] = true
}

// BoundingBox returns the minimum enclosing rows×cols of the trace,
// clamped to at least 3×3, plus the origin (minimum row, minimum column
// over the trace, not necessarily a visited point) that maps to world
// tile (0,0). If square, rows and cols are
// both forced to the larger dimension.
func (r *Result) BoundingBox(square bool) (rows, cols int, origin Point) {
	minY, minX, maxY, maxX := r.Trace[0].Y, r.Trace[0].X, r.Trace[0].Y, r.Trace[0].X
	for _, p := range r.Trace {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}
	rows, cols = maxY-minY+1, maxX-minX+1
	if rows < 3 {
		rows = 3
	}
	if cols < 3 {
		cols = 3
	}
	if square {
		if cols > rows {
			rows = cols
		} else {
			cols = rows
		}
	}
	return rows, cols, Point{Y: minY, X: minX}
}

// ToPartialWorld materialises the executor's findings into a
// worldmodel.PartialWorld of the given size, anchored so that origin
// maps to tile (0,0). Every touched tile becomes Exist=True,
// Allowed=True; every forced-false wall side is set accordingly;
// everything else stays Unknown, matching spec.md §4.C's output
// contract ("every field touched by the execution is true/false as
// forced").
func (r *Result) ToPartialWorld(rows, cols int, origin Point) *worldmodel.PartialWorld {
	pw := worldmodel.NewPartial(rows, cols)
	for p := range r.touched {
		ry, rx := p.Y-origin.Y, p.X-origin.X
		if !pw.InBounds(ry, rx) {
			continue
		}
		i := pw.Index(ry, rx)
		pw.Tiles[i].Exist = worldmodel.True
		pw.Tiles[i].Allowed = worldmodel.True
	}
	for p, sides := range r.wallSet {
		ry, rx := p.Y-origin.Y, p.X-origin.X
		if !pw.InBounds(ry, rx) {
			continue
		}
		i := pw.Index(ry, rx)
		for s := range sides {
			pw.Tiles[i].Wall = pw.Tiles[i].Wall.Set(s, worldmodel.False)
		}
	}
	start := r.Trace[0]
	sy, sx := start.Y-origin.Y, start.X-origin.X
	dir := r.StartDir
	pw.Turtle = worldmodel.PartialTurtle{Y: &sy, X: &sx, Dir: &dir}
	for _, p := range r.Trace {
		ry, rx := p.Y-origin.Y, p.X-origin.X
		pw.Trace = append(pw.Trace, pw.Index(ry, rx))
	}
	return pw
}
