package emulator

import (
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

func openGrid(rows, cols int) *worldmodel.World {
	w := worldmodel.New(rows, cols)
	for i := range w.Tiles {
		w.Tiles[i] = worldmodel.Tile{Exist: true, Allowed: true}
	}
	w.Turtle = worldmodel.Turtle{Y: 1, X: 1, Dir: worldmodel.North}
	return w
}

func TestRunForwardMovesAndDraws(t *testing.T) {
	w := openGrid(3, 3)
	prog := ast.Program{ast.Fd()}
	res := New(nil).Run(w, prog)
	if res.Crashed != nil {
		t.Fatalf("unexpected crash: %v", *res.Crashed)
	}
	if w.Turtle.Y != 0 || w.Turtle.X != 1 {
		t.Fatalf("expected turtle at (0,1), got (%d,%d)", w.Turtle.Y, w.Turtle.X)
	}
	if len(w.Trace) != 2 {
		t.Fatalf("expected trace length 2, got %d", len(w.Trace))
	}
	if !w.DrawnMarkers[w.Index(1, 1)].Top.Present {
		t.Fatalf("expected a drawn top marker on the origin tile")
	}
}

func TestRunCrashesOnWall(t *testing.T) {
	w := openGrid(3, 3)
	i := w.Index(1, 1)
	w.Tiles[i].Wall.Top = true
	w.Tiles[w.Index(0, 1)].Wall.Bottom = true
	res := New(nil).Run(w, ast.Program{ast.Fd()})
	if res.Crashed == nil || *res.Crashed != worldmodel.CrashWall {
		t.Fatalf("expected WALL crash, got %v", res.Crashed)
	}
}

func TestRunCrashesOnForbiddenArea(t *testing.T) {
	w := openGrid(3, 3)
	w.Tiles[w.Index(0, 1)].Allowed = false
	res := New(nil).Run(w, ast.Program{ast.Fd()})
	if res.Crashed == nil || *res.Crashed != worldmodel.CrashForbiddenArea {
		t.Fatalf("expected FORBIDDEN_AREA crash, got %v", res.Crashed)
	}
}

func TestRunStopsAfterCrashInRepeat(t *testing.T) {
	w := openGrid(3, 3)
	w.Tiles[w.Index(0, 1)].Allowed = false
	prog := ast.Program{ast.Repeat(5, ast.Program{ast.Fd()})}
	res := New(nil).Run(w, prog)
	if res.Crashed == nil {
		t.Fatalf("expected crash inside repeat body")
	}
	if res.Calls != 1 {
		t.Fatalf("expected exactly 1 call before crash, got %d", res.Calls)
	}
}

func TestRunCollectsItemOnArrival(t *testing.T) {
	w := openGrid(3, 3)
	w.Items[w.Index(0, 1)] = &worldmodel.Item{Name: "lemon", Colour: "yellow", Count: 1}
	New(nil).Run(w, ast.Program{ast.Fd()})
	if w.ItemAt(0, 1) != nil {
		t.Fatalf("expected item to be collected (cleared) on arrival")
	}
}
