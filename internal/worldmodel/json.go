package worldmodel

import "encoding/json"

// Wire structs for the World-JSON format of spec.md §6.1.
type turtleJSON struct {
	Y         int `json:"y"`
	X         int `json:"x"`
	Direction int `json:"direction"`
}

type wallsJSON struct {
	Top    *bool `json:"top,omitempty"`
	Left   *bool `json:"left,omitempty"`
	Right  *bool `json:"right,omitempty"`
	Bottom *bool `json:"bottom,omitempty"`
}

type tileJSON struct {
	X       int       `json:"x"`
	Y       int       `json:"y"`
	Exist   *bool     `json:"exist,omitempty"`
	Allowed bool      `json:"allowed"`
	Walls   wallsJSON `json:"walls"`
}

type itemJSON struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Name   string `json:"name"`
	Colour string `json:"color"`
	Count  int    `json:"count"`
}

type wireLine struct {
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
	Colour string `json:"color"`
}

type worldJSON struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Turtle turtleJSON `json:"turtle"`
	Tiles  []tileJSON `json:"tiles"`
	Items  []itemJSON `json:"items"`
	Lines  []wireLine `json:"lines"`
}

// MarshalJSON serialises the World to the spec.md §6.1 wire shape.
func (w *World) MarshalJSON() ([]byte, error) {
	wire := worldJSON{
		Rows: w.Rows,
		Cols: w.Cols,
		Turtle: turtleJSON{
			Y: w.Turtle.Y, X: w.Turtle.X, Direction: int(w.Turtle.Dir),
		},
	}
	for i, t := range w.Tiles {
		y, x := w.Coords(i)
		exist := t.Exist
		wire.Tiles = append(wire.Tiles, tileJSON{
			X: x, Y: y, Exist: &exist, Allowed: t.Allowed,
			Walls: wallsJSON{Top: &t.Wall.Top, Left: &t.Wall.Left, Right: &t.Wall.Right, Bottom: &t.Wall.Bottom},
		})
		if item := w.Items[i]; item != nil {
			wire.Items = append(wire.Items, itemJSON{X: x, Y: y, Name: item.Name, Colour: item.Colour, Count: item.Count})
		}
	}
	source := w.Markers
	if len(w.DrawnMarkers) != 0 {
		source = w.DrawnMarkers
	}
	for i, tm := range source {
		y, x := w.Coords(i)
		for _, s := range []Side{Top, LeftSide, RightSide, Bottom} {
			edge := tm.Get(s)
			if !edge.Present {
				continue
			}
			wire.Lines = append(wire.Lines, sideToLine(x, y, s, edge.Colour))
		}
	}
	return json.Marshal(wire)
}

// sideToLine converts a tile-relative edge into corner-coordinate form.
func sideToLine(x, y int, s Side, colour string) wireLine {
	switch s {
	case Top:
		return wireLine{X1: x, Y1: y, X2: x + 1, Y2: y, Colour: colour}
	case Bottom:
		return wireLine{X1: x, Y1: y + 1, X2: x + 1, Y2: y + 1, Colour: colour}
	case LeftSide:
		return wireLine{X1: x, Y1: y, X2: x, Y2: y + 1, Colour: colour}
	default: // RightSide
		return wireLine{X1: x + 1, Y1: y, X2: x + 1, Y2: y + 1, Colour: colour}
	}
}

// UnmarshalJSON parses the spec.md §6.1 wire shape into the World.
func (w *World) UnmarshalJSON(data []byte) error {
	var wire worldJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*w = *New(wire.Rows, wire.Cols)
	w.Turtle = Turtle{Y: wire.Turtle.Y, X: wire.Turtle.X, Dir: Direction(wire.Turtle.Direction)}
	for _, tw := range wire.Tiles {
		i := w.Index(tw.Y, tw.X)
		exist := true
		if tw.Exist != nil {
			exist = *tw.Exist
		}
		var wall Walls
		if tw.Walls.Top != nil {
			wall.Top = *tw.Walls.Top
		}
		if tw.Walls.Left != nil {
			wall.Left = *tw.Walls.Left
		}
		if tw.Walls.Right != nil {
			wall.Right = *tw.Walls.Right
		}
		if tw.Walls.Bottom != nil {
			wall.Bottom = *tw.Walls.Bottom
		}
		w.Tiles[i] = Tile{Exist: exist, Allowed: tw.Allowed, Wall: wall}
	}
	for _, iw := range wire.Items {
		i := w.Index(iw.Y, iw.X)
		item := Item{Name: iw.Name, Colour: iw.Colour, Count: iw.Count}
		w.Items[i] = &item
	}
	for _, lw := range wire.Lines {
		applyLine(w, lw)
	}
	return nil
}

// applyLine maps a corner-coordinate line back onto the tile(s) sharing
// that edge, setting both tiles' marker so the shared-edge invariant
// holds by construction.
func applyLine(w *World, lw wireLine) {
	dx, dy := lw.X2-lw.X1, lw.Y2-lw.Y1
	edge := MarkerEdge{Present: true, Colour: lw.Colour}
	switch {
	case dx == 1 && dy == 0: // horizontal: bottom of tile above, top of tile below
		if lw.Y1 > 0 && w.InBounds(lw.Y1-1, lw.X1) {
			i := w.Index(lw.Y1-1, lw.X1)
			w.Markers[i] = w.Markers[i].Set(Bottom, edge)
		}
		if w.InBounds(lw.Y1, lw.X1) {
			i := w.Index(lw.Y1, lw.X1)
			w.Markers[i] = w.Markers[i].Set(Top, edge)
		}
	case dy == 1 && dx == 0: // vertical: right of tile to the left, left of tile to the right
		if lw.X1 > 0 && w.InBounds(lw.Y1, lw.X1-1) {
			i := w.Index(lw.Y1, lw.X1-1)
			w.Markers[i] = w.Markers[i].Set(RightSide, edge)
		}
		if w.InBounds(lw.Y1, lw.X1) {
			i := w.Index(lw.Y1, lw.X1)
			w.Markers[i] = w.Markers[i].Set(LeftSide, edge)
		}
	}
}
