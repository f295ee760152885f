package worldmodel

import "fmt"

// World is a fully concrete grid world (spec.md §3.4): a rows×cols grid,
// one turtle, at most one item per tile, and a static marker grid. The
// Trace/EdgeColours/DrawnMarkers/PenColour/Crashed fields are derived
// state written by the reference emulator (component B) as it runs a
// Program against the world; they are the zero value before execution.
type World struct {
	Grid
	Tiles  []Tile
	Items  []*Item // nil entry means no item on that tile
	Turtle Turtle
	Markers MarkerGrid

	Trace        []int
	EdgeColours  []string
	DrawnMarkers MarkerGrid
	PenColour    string
	Crashed      *CrashReason
}

// New allocates an empty rows×cols world: every tile non-existent and
// disallowed, no items, no markers.
func New(rows, cols int) *World {
	g := Grid{Rows: rows, Cols: cols}
	return &World{
		Grid:    g,
		Tiles:   make([]Tile, g.Size()),
		Items:   make([]*Item, g.Size()),
		Markers: NewMarkerGrid(g.Size()),
	}
}

// TileAt returns the tile at (y,x).
func (w *World) TileAt(y, x int) Tile {
	return w.Tiles[w.Index(y, x)]
}

// ItemAt returns the item at (y,x), or nil.
func (w *World) ItemAt(y, x int) *Item {
	return w.Items[w.Index(y, x)]
}

// TurtleIndex returns the turtle's current tile index.
func (w *World) TurtleIndex() int {
	return w.Index(w.Turtle.Y, w.Turtle.X)
}

// Validate checks the structural invariants of spec.md §3.4.
func (w *World) Validate() error {
	n := w.Size()
	if len(w.Tiles) != n || len(w.Items) != n {
		return fmt.Errorf("worldmodel: tile/item slice length mismatch with %dx%d grid", w.Rows, w.Cols)
	}
	for i, t := range w.Tiles {
		// Symmetric walls: tile[i].right == tile[i+1].left, and the
		// equivalent for top/bottom.
		if nb, ok := w.Neighbor(i, RightSide); ok {
			if t.Wall.Right != w.Tiles[nb].Wall.Left {
				return fmt.Errorf("worldmodel: asymmetric wall between tile %d and its right neighbour", i)
			}
		} else if t.Wall.Right {
			return fmt.Errorf("worldmodel: tile %d has an outward wall on a boundary edge", i)
		}
		if nb, ok := w.Neighbor(i, Bottom); ok {
			if t.Wall.Bottom != w.Tiles[nb].Wall.Top {
				return fmt.Errorf("worldmodel: asymmetric wall between tile %d and its bottom neighbour", i)
			}
		} else if t.Wall.Bottom {
			return fmt.Errorf("worldmodel: tile %d has an outward wall on a boundary edge", i)
		}
		if !t.Exist && (t.Allowed || t.Wall != (Walls{})) {
			return fmt.Errorf("worldmodel: non-existent tile %d must be disallowed and wall-free", i)
		}
		if !t.Allowed && w.Items[i] != nil {
			return fmt.Errorf("worldmodel: forbidden tile %d carries an item", i)
		}
		if w.Items[i] != nil && t.Wall.FullyWalled() {
			return fmt.Errorf("worldmodel: tile %d carries an item but is walled in on all sides", i)
		}
	}
	ti := w.TurtleIndex()
	if ti < 0 || ti >= n {
		return fmt.Errorf("worldmodel: turtle position (%d,%d) out of bounds", w.Turtle.Y, w.Turtle.X)
	}
	tile := w.Tiles[ti]
	if !tile.Allowed {
		return fmt.Errorf("worldmodel: turtle tile %d is not allowed", ti)
	}
	if tile.Wall.FullyWalled() {
		return fmt.Errorf("worldmodel: turtle tile %d is completely walled in", ti)
	}
	return nil
}
