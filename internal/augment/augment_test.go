package augment

import (
	"testing"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

func smallWorld() *worldmodel.World {
	w := worldmodel.New(2, 3)
	for i := range w.Tiles {
		w.Tiles[i] = worldmodel.Tile{Exist: true, Allowed: true}
	}
	w.Tiles[w.Index(0, 0)].Wall.Top = true
	w.Items[w.Index(1, 2)] = &worldmodel.Item{Name: "apple", Colour: "red", Count: 1}
	w.Turtle = worldmodel.Turtle{Y: 0, X: 0, Dir: worldmodel.East}
	return w
}

func TestRotate90FourTimesIsIdentityOnDimensions(t *testing.T) {
	w := smallWorld()
	cur := w
	for i := 0; i < 4; i++ {
		cur = Rotate90(cur)
	}
	if cur.Rows != w.Rows || cur.Cols != w.Cols {
		t.Fatalf("expected dimensions to return to %dx%d, got %dx%d", w.Rows, w.Cols, cur.Rows, cur.Cols)
	}
	if cur.Turtle.Dir != w.Turtle.Dir {
		t.Fatalf("expected turtle direction to return to %v after four rotations, got %v", w.Turtle.Dir, cur.Turtle.Dir)
	}
}

func TestRotate90MovesTurtleAndSwapsDimensions(t *testing.T) {
	w := smallWorld()
	out := Rotate90(w)
	if out.Rows != w.Cols || out.Cols != w.Rows {
		t.Fatalf("expected rotated dims %dx%d, got %dx%d", w.Cols, w.Rows, out.Rows, out.Cols)
	}
	if out.Turtle.Dir != worldmodel.North {
		t.Fatalf("expected east to rotate to north, got %v", out.Turtle.Dir)
	}
}

func TestFlipVerticalTwiceIsIdentity(t *testing.T) {
	w := smallWorld()
	out := FlipVertical(FlipVertical(w))
	if out.Rows != w.Rows || out.Cols != w.Cols {
		t.Fatalf("dims changed across double flip")
	}
	for i := range w.Tiles {
		if out.Tiles[i].Wall != w.Tiles[i].Wall {
			t.Fatalf("tile %d walls changed across double flip: got %+v want %+v", i, out.Tiles[i].Wall, w.Tiles[i].Wall)
		}
	}
	if out.Turtle.Dir != w.Turtle.Dir {
		t.Fatalf("expected direction unchanged for east across double flip, got %v", out.Turtle.Dir)
	}
}

func TestFlipVerticalSwapsNorthSouth(t *testing.T) {
	w := smallWorld()
	w.Turtle.Dir = worldmodel.North
	out := FlipVertical(w)
	if out.Turtle.Dir != worldmodel.South {
		t.Fatalf("expected north to flip to south, got %v", out.Turtle.Dir)
	}
}

func TestFlipVerticalMovesItemToMirroredRow(t *testing.T) {
	w := smallWorld()
	out := FlipVertical(w)
	// item was at (1,2) in a 2-row grid, mirrors to row 0.
	if out.Items[out.Index(0, 2)] == nil {
		t.Fatalf("expected item to appear at mirrored row 0")
	}
	if out.Items[out.Index(1, 2)] != nil {
		t.Fatalf("expected original row to be empty after flip")
	}
}

func TestFlipCodeSwapsLtRt(t *testing.T) {
	prog := ast.Program{ast.Fd(), ast.Lt(), ast.Rt(), ast.SetPc(ast.ColourRed)}
	out := FlipCode(prog)
	want := ast.Program{ast.Fd(), ast.Rt(), ast.Lt(), ast.SetPc(ast.ColourRed)}
	if !out.Equal(want) {
		t.Fatalf("flip_code mismatch: got %+v want %+v", out, want)
	}
}

func TestFlipCodeRecursesIntoRepeatBody(t *testing.T) {
	prog := ast.Program{ast.Repeat(3, ast.Program{ast.Lt(), ast.Fd()})}
	out := FlipCode(prog)
	want := ast.Program{ast.Repeat(3, ast.Program{ast.Rt(), ast.Fd()})}
	if !out.Equal(want) {
		t.Fatalf("flip_code did not recurse into repeat body: got %+v want %+v", out, want)
	}
}

func TestFlipCodeDoubleApplicationIsIdentity(t *testing.T) {
	prog := ast.Program{ast.Lt(), ast.Repeat(2, ast.Program{ast.Rt(), ast.Lt()})}
	out := FlipCode(FlipCode(prog))
	if !out.Equal(prog) {
		t.Fatalf("expected double flip_code to be identity: got %+v want %+v", out, prog)
	}
}

func TestGenerateEasyLeavesProgramUnchanged(t *testing.T) {
	w := smallWorld()
	prog := ast.Program{ast.Lt(), ast.Fd()}
	_, outProg := Generate(w, prog, Easy)
	if !outProg.Equal(prog) {
		t.Fatalf("expected easy difficulty to leave the program untouched")
	}
}

func TestGenerateMediumFlipsCode(t *testing.T) {
	w := smallWorld()
	prog := ast.Program{ast.Lt()}
	_, outProg := Generate(w, prog, Medium)
	if !outProg.Equal(ast.Program{ast.Rt()}) {
		t.Fatalf("expected medium difficulty to flip lt to rt, got %+v", outProg)
	}
}
