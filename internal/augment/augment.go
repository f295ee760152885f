// Package augment implements the rotate/flip data augmentation of
// spec.md's Non-goals ("rotation/flip data augmentation (pure
// geometric transforms on a finished puzzle)") — out of scope for the
// core synthesis pipeline, but, per SPEC_FULL.md's supplemented
// features, still given a standalone home as a post-processing helper
// invoked only from `cmd/xlogosyn augment`, never by component G.
// Ported from the original implementation's rotateflip.py, operating
// on the typed World/Program structures instead of raw JSON.
package augment

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Difficulty selects which geometric transform Generate applies,
// mirroring rotateflip.py's diff-keyed dispatch (easy: rotate only;
// medium: flip only; hard: rotate then flip).
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Generate applies the transform for diff to (w, prog) and returns the
// transformed pair, leaving the inputs untouched.
func Generate(w *worldmodel.World, prog ast.Program, diff Difficulty) (*worldmodel.World, ast.Program) {
	switch diff {
	case Easy:
		return Rotate90(w), prog.Clone()
	case Medium:
		return FlipVertical(w), FlipCode(prog)
	case Hard:
		return FlipVertical(Rotate90(w)), FlipCode(prog)
	default:
		return cloneWorld(w), prog.Clone()
	}
}

// cloneWorld returns a deep copy of w, used by Generate's no-op
// default case so callers never alias the input.
func cloneWorld(w *worldmodel.World) *worldmodel.World {
	out := worldmodel.New(w.Rows, w.Cols)
	copy(out.Tiles, w.Tiles)
	for i, item := range w.Items {
		if item != nil {
			clone := item.Clone()
			out.Items[i] = &clone
		}
	}
	copy(out.Markers, w.Markers)
	out.Turtle = w.Turtle
	return out
}

// Rotate90 rotates w a quarter turn counterclockwise: tile (y,x) in an R×C
// grid moves to (C-1-x, y) in the resulting C×R grid, and each tile's
// wall/marker sides rotate top→left→bottom→right→top in step (matches
// rotateflip.py's rotate()).
func Rotate90(w *worldmodel.World) *worldmodel.World {
	r, c := w.Rows, w.Cols
	out := worldmodel.New(c, r)
	for i := range w.Tiles {
		y, x := w.Coords(i)
		ny, nx := c-1-x, y
		ni := out.Index(ny, nx)
		out.Tiles[ni] = worldmodel.Tile{
			Exist:   w.Tiles[i].Exist,
			Allowed: w.Tiles[i].Allowed,
			Wall:    rotateWalls(w.Tiles[i].Wall),
		}
		if item := w.Items[i]; item != nil {
			clone := *item
			out.Items[ni] = &clone
		}
		out.Markers[ni] = rotateMarkers(w.Markers[i])
	}
	out.Turtle = worldmodel.Turtle{
		Y:   c - 1 - w.Turtle.X,
		X:   w.Turtle.Y,
		Dir: w.Turtle.Dir.Left(),
	}
	return out
}

// FlipVertical mirrors w top-to-bottom: tile (y,x) moves to (R-1-y,x),
// and top/bottom walls and markers swap (matches rotateflip.py's
// flip()).
func FlipVertical(w *worldmodel.World) *worldmodel.World {
	r, c := w.Rows, w.Cols
	out := worldmodel.New(r, c)
	for i := range w.Tiles {
		y, x := w.Coords(i)
		ny := r - 1 - y
		ni := out.Index(ny, x)
		out.Tiles[ni] = worldmodel.Tile{
			Exist:   w.Tiles[i].Exist,
			Allowed: w.Tiles[i].Allowed,
			Wall:    flipWallsVertical(w.Tiles[i].Wall),
		}
		if item := w.Items[i]; item != nil {
			clone := *item
			out.Items[ni] = &clone
		}
		out.Markers[ni] = flipMarkersVertical(w.Markers[i])
	}
	out.Turtle = worldmodel.Turtle{
		Y:   r - 1 - w.Turtle.Y,
		X:   w.Turtle.X,
		Dir: flipDirVertical(w.Turtle.Dir),
	}
	return out
}

func rotateWalls(w worldmodel.Walls) worldmodel.Walls {
	return worldmodel.Walls{Left: w.Top, Top: w.Right, Right: w.Bottom, Bottom: w.Left}
}

func flipWallsVertical(w worldmodel.Walls) worldmodel.Walls {
	return worldmodel.Walls{Top: w.Bottom, Bottom: w.Top, Left: w.Left, Right: w.Right}
}

func rotateMarkers(m worldmodel.TileMarkers) worldmodel.TileMarkers {
	var out worldmodel.TileMarkers
	out = out.Set(worldmodel.LeftSide, m.Get(worldmodel.Top))
	out = out.Set(worldmodel.Top, m.Get(worldmodel.RightSide))
	out = out.Set(worldmodel.RightSide, m.Get(worldmodel.Bottom))
	out = out.Set(worldmodel.Bottom, m.Get(worldmodel.LeftSide))
	return out
}

func flipMarkersVertical(m worldmodel.TileMarkers) worldmodel.TileMarkers {
	var out worldmodel.TileMarkers
	out = out.Set(worldmodel.Top, m.Get(worldmodel.Bottom))
	out = out.Set(worldmodel.Bottom, m.Get(worldmodel.Top))
	out = out.Set(worldmodel.LeftSide, m.Get(worldmodel.LeftSide))
	out = out.Set(worldmodel.RightSide, m.Get(worldmodel.RightSide))
	return out
}

func flipDirVertical(d worldmodel.Direction) worldmodel.Direction {
	switch d {
	case worldmodel.North:
		return worldmodel.South
	case worldmodel.South:
		return worldmodel.North
	default:
		return d
	}
}

// FlipCode swaps every Lt/Rt block (recursively through Repeat
// bodies), matching rotateflip.py's flip_code().
func FlipCode(prog ast.Program) ast.Program {
	out := make(ast.Program, len(prog))
	for i, b := range prog {
		switch b.Kind {
		case ast.KindLt:
			out[i] = ast.Rt()
		case ast.KindRt:
			out[i] = ast.Lt()
		case ast.KindRepeat:
			nb := b
			nb.Body = FlipCode(b.Body)
			out[i] = nb
		default:
			out[i] = b
		}
	}
	return out
}
