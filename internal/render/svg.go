// Package render implements the narrow, explicitly-optional SVG debug
// dump carried over from the retrieval pack's rendering dependency
// (ajstarks/svgo, the teacher of dshills-dungo). spec.md places image
// rendering out of scope for the synthesis engine proper; this package
// is never on the critical path of synthesis and exists only so a
// developer can eyeball a generated World with --debug-svg.
package render

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Options configures the SVG dump. Zero value is DefaultOptions.
type Options struct {
	CellSize int // pixels per grid cell, default 48
}

// DefaultOptions is a readable default cell size.
var DefaultOptions = Options{CellSize: 48}

// World renders w to an SVG document: tiles coloured by
// exist/allowed/forbidden, walls as thick black lines, items as
// labelled circles, markers as coloured edge lines, and the turtle as
// a triangle pointing in its current direction.
func World(w *worldmodel.World, opts Options) []byte {
	if opts.CellSize <= 0 {
		opts = DefaultOptions
	}
	cell := opts.CellSize
	width, height := w.Cols*cell+2*cell, w.Rows*cell+2*cell

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for i, t := range w.Tiles {
		y, x := w.Coords(i)
		px, py := cell+x*cell, cell+y*cell
		fill := "#f7f7f7"
		switch {
		case !t.Exist:
			fill = "#e0e0e0"
		case !t.Allowed:
			fill = "#ffd5d5"
		}
		canvas.Rect(px, py, cell, cell, fmt.Sprintf("fill:%s;stroke:#ccc", fill))

		if t.Wall.Top {
			canvas.Line(px, py, px+cell, py, "stroke:black;stroke-width:3")
		}
		if t.Wall.Left {
			canvas.Line(px, py, px, py+cell, "stroke:black;stroke-width:3")
		}
		if t.Wall.Right {
			canvas.Line(px+cell, py, px+cell, py+cell, "stroke:black;stroke-width:3")
		}
		if t.Wall.Bottom {
			canvas.Line(px, py+cell, px+cell, py+cell, "stroke:black;stroke-width:3")
		}

		if item := w.Items[i]; item != nil {
			cx, cy := px+cell/2, py+cell/2
			canvas.Circle(cx, cy, cell/3, fmt.Sprintf("fill:%s;stroke:black", item.Colour))
			canvas.Text(cx, cy+cell/2+4, fmt.Sprintf("%s x%d", item.Name, item.Count),
				"text-anchor:middle;font-size:9px")
		}

		tm := w.Markers[i]
		drawMarker(canvas, tm.Get(worldmodel.Top), px, py, px+cell, py)
		drawMarker(canvas, tm.Get(worldmodel.LeftSide), px, py, px, py+cell)
		drawMarker(canvas, tm.Get(worldmodel.RightSide), px+cell, py, px+cell, py+cell)
		drawMarker(canvas, tm.Get(worldmodel.Bottom), px, py+cell, px+cell, py+cell)
	}

	ty, tx := w.Turtle.Y, w.Turtle.X
	cx, cy := cell+tx*cell+cell/2, cell+ty*cell+cell/2
	drawTurtle(canvas, cx, cy, cell, w.Turtle.Dir)

	canvas.End()
	return buf.Bytes()
}

func drawMarker(canvas *svg.SVG, edge worldmodel.MarkerEdge, x1, y1, x2, y2 int) {
	if !edge.Present {
		return
	}
	colour := edge.Colour
	if colour == "" {
		colour = "black"
	}
	canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:2", colour))
}

func drawTurtle(canvas *svg.SVG, cx, cy, cell int, dir worldmodel.Direction) {
	r := cell / 3
	var xs, ys []int
	switch dir {
	case worldmodel.North:
		xs, ys = []int{cx, cx - r, cx + r}, []int{cy - r, cy + r, cy + r}
	case worldmodel.South:
		xs, ys = []int{cx, cx - r, cx + r}, []int{cy + r, cy - r, cy - r}
	case worldmodel.East:
		xs, ys = []int{cx + r, cx - r, cx - r}, []int{cy, cy - r, cy + r}
	default: // West
		xs, ys = []int{cx - r, cx + r, cx + r}, []int{cy, cy - r, cy + r}
	}
	canvas.Polygon(xs, ys, "fill:#2b6cb0;stroke:black")
}

// SaveToFile renders w and writes the SVG to path.
func SaveToFile(w *worldmodel.World, path string, opts Options) error {
	return os.WriteFile(path, World(w, opts), 0o644)
}
