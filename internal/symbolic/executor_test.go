package symbolic

import (
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

type fixedOracle struct {
	y, x int
	dir  worldmodel.Direction
}

func (o fixedOracle) ChooseStart() (int, int, worldmodel.Direction) {
	return o.y, o.x, o.dir
}

func TestRunNeverCrashesAndTracksTrace(t *testing.T) {
	prog := ast.Program{ast.Fd(), ast.Fd(), ast.Rt(), ast.Fd()}
	res := New().Run(prog, fixedOracle{y: 5, x: 5, dir: worldmodel.North})
	if len(res.Trace) != 4 {
		t.Fatalf("expected 4 trace points (start + 3 moves), got %d", len(res.Trace))
	}
	if res.Trace[0] != (Point{Y: 5, X: 5}) {
		t.Fatalf("expected trace to start at oracle's chosen point")
	}
}

func TestBoundingBoxClampsToAtLeast3x3(t *testing.T) {
	prog := ast.Program{ast.Fd()}
	res := New().Run(prog, fixedOracle{y: 0, x: 0, dir: worldmodel.North})
	rows, cols, _ := res.BoundingBox(false)
	if rows < 3 || cols < 3 {
		t.Fatalf("expected bounding box clamped to >=3x3, got %dx%d", rows, cols)
	}
}

func TestToPartialWorldMarksTouchedTilesKnown(t *testing.T) {
	prog := ast.Program{ast.Fd()}
	res := New().Run(prog, fixedOracle{y: 0, x: 0, dir: worldmodel.North})
	rows, cols, origin := res.BoundingBox(true)
	pw := res.ToPartialWorld(rows, cols, origin)
	startIdx := pw.Trace[0]
	if pw.Tiles[startIdx].Exist != worldmodel.True || pw.Tiles[startIdx].Allowed != worldmodel.True {
		t.Fatalf("expected start tile known true, got %+v", pw.Tiles[startIdx])
	}
	endIdx := pw.Trace[len(pw.Trace)-1]
	if pw.Tiles[endIdx].Wall.Get(worldmodel.Bottom) != worldmodel.False {
		t.Fatalf("expected forced-false wall on destination tile's entry side")
	}
}
