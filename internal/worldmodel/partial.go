package worldmodel

import "fmt"

// PartialWalls mirrors Walls but with each side three-valued.
type PartialWalls struct {
	Top, Left, Right, Bottom TriBool
}

func (w PartialWalls) Get(s Side) TriBool {
	switch s {
	case Top:
		return w.Top
	case LeftSide:
		return w.Left
	case RightSide:
		return w.Right
	case Bottom:
		return w.Bottom
	default:
		return Unknown
	}
}

func (w PartialWalls) Set(s Side, v TriBool) PartialWalls {
	switch s {
	case Top:
		w.Top = v
	case LeftSide:
		w.Left = v
	case RightSide:
		w.Right = v
	case Bottom:
		w.Bottom = v
	}
	return w
}

// PartialTile is a tile whose existence/allowed/wall fields may still be
// Unknown (spec.md §3.5).
type PartialTile struct {
	Exist   TriBool
	Allowed TriBool
	Wall    PartialWalls
}

// PartialItem describes a tile's item where any attribute, or the
// presence of an item at all, may be unresolved. A nil *PartialItem in
// PartialWorld.Items means "item presence itself is not yet addressed
// by the executor" and is treated as Unknown; once the executor (or a
// mutator) takes a position on presence, Present stops being Unknown.
type PartialItem struct {
	Present TriBool
	Name    *string
	Colour  *string
	Count   *int
}

// PartialTurtle is the turtle's start state, any field of which the
// oracle may still owe a decision.
type PartialTurtle struct {
	Y, X *int
	Dir  *Direction
}

// PartialMarkerEdge mirrors MarkerEdge with three-valued presence.
type PartialMarkerEdge struct {
	Present TriBool
	Colour  *string
}

// PartialTileMarkers holds the four partially-known edge markers around
// one tile.
type PartialTileMarkers struct {
	Top, Left, Right, Bottom PartialMarkerEdge
}

func (m PartialTileMarkers) Get(s Side) PartialMarkerEdge {
	switch s {
	case Top:
		return m.Top
	case LeftSide:
		return m.Left
	case RightSide:
		return m.Right
	case Bottom:
		return m.Bottom
	default:
		return PartialMarkerEdge{}
	}
}

func (m PartialTileMarkers) Set(s Side, e PartialMarkerEdge) PartialTileMarkers {
	switch s {
	case Top:
		m.Top = e
	case LeftSide:
		m.Left = e
	case RightSide:
		m.Right = e
	case Bottom:
		m.Bottom = e
	}
	return m
}

// PartialWorld is the symbolic executor's working state (spec.md §3.5):
// built once per run by C, then handed immutable to F. Trace is filled
// concretely as execution proceeds — the executor always decides
// concrete tile indices to visit, it is only the grid's own fields
// around those tiles that remain three-valued.
type PartialWorld struct {
	Grid
	Tiles   []PartialTile
	Items   []*PartialItem
	Turtle  PartialTurtle
	Markers []PartialTileMarkers

	Trace []int
}

// NewPartial allocates an all-Unknown rows×cols partial world.
func NewPartial(rows, cols int) *PartialWorld {
	g := Grid{Rows: rows, Cols: cols}
	n := g.Size()
	return &PartialWorld{
		Grid:    g,
		Tiles:   make([]PartialTile, n),
		Items:   make([]*PartialItem, n),
		Markers: make([]PartialTileMarkers, n),
	}
}

// Resolve converts a fully-decided PartialWorld into a concrete World.
// It returns an error naming the first tile with an unresolved field;
// F is expected to have pinned every field before calling this.
func (pw *PartialWorld) Resolve() (*World, error) {
	if pw.Turtle.Y == nil || pw.Turtle.X == nil || pw.Turtle.Dir == nil {
		return nil, fmt.Errorf("worldmodel: turtle position/direction not fully resolved")
	}
	w := New(pw.Rows, pw.Cols)
	w.Turtle = Turtle{Y: *pw.Turtle.Y, X: *pw.Turtle.X, Dir: *pw.Turtle.Dir}
	for i, pt := range pw.Tiles {
		exist, ok := pt.Exist.Bool()
		if !ok {
			return nil, fmt.Errorf("worldmodel: tile %d exist field unresolved", i)
		}
		allowed, ok := pt.Allowed.Bool()
		if !ok {
			return nil, fmt.Errorf("worldmodel: tile %d allowed field unresolved", i)
		}
		var wall Walls
		for _, s := range []Side{Top, LeftSide, RightSide, Bottom} {
			v, ok := pt.Wall.Get(s).Bool()
			if !ok {
				return nil, fmt.Errorf("worldmodel: tile %d wall side %d unresolved", i, s)
			}
			wall = wall.Set(s, v)
		}
		w.Tiles[i] = Tile{Exist: exist, Allowed: allowed, Wall: wall}
	}
	for i, pi := range pw.Items {
		if pi == nil {
			continue
		}
		present, ok := pi.Present.Bool()
		if !ok {
			return nil, fmt.Errorf("worldmodel: tile %d item presence unresolved", i)
		}
		if !present {
			continue
		}
		if pi.Name == nil || pi.Colour == nil || pi.Count == nil {
			return nil, fmt.Errorf("worldmodel: tile %d item attributes unresolved", i)
		}
		w.Items[i] = &Item{Name: *pi.Name, Colour: *pi.Colour, Count: *pi.Count}
	}
	for i, pm := range pw.Markers {
		var tm TileMarkers
		for _, s := range []Side{Top, LeftSide, RightSide, Bottom} {
			edge := pm.Get(s)
			present, ok := edge.Present.Bool()
			if !ok {
				return nil, fmt.Errorf("worldmodel: tile %d marker side %d unresolved", i, s)
			}
			colour := ""
			if present {
				if edge.Colour == nil {
					return nil, fmt.Errorf("worldmodel: tile %d marker side %d missing colour", i, s)
				}
				colour = *edge.Colour
			}
			tm = tm.Set(s, MarkerEdge{Present: present, Colour: colour})
		}
		w.Markers[i] = tm
	}
	w.Trace = append([]int(nil), pw.Trace...)
	return w, nil
}
