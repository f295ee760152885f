package worldmodel

// MarkerEdge is one coloured edge drawn by the turtle's pen, or asserted
// by the synthesizer's marker grid. Present distinguishes an undrawn
// edge from one drawn with a colour (spec.md §3.4: "a dense grid of
// four-sided edge flags plus per-side colour").
type MarkerEdge struct {
	Present bool
	Colour  string
}

// TileMarkers holds the four edge markers around one tile.
type TileMarkers struct {
	Top, Left, Right, Bottom MarkerEdge
}

func (m TileMarkers) Get(s Side) MarkerEdge {
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
		return MarkerEdge{}
	}
}

func (m TileMarkers) Set(s Side, e MarkerEdge) TileMarkers {
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

// MarkerGrid is a dense per-tile marker grid, indexed the same way as
// World.Tiles.
type MarkerGrid []TileMarkers

// NewMarkerGrid allocates an all-absent marker grid for an n-tile world.
func NewMarkerGrid(n int) MarkerGrid {
	return make(MarkerGrid, n)
}

// Line is one coloured drawn segment in the World-JSON "lines" wire
// representation (spec.md §6.1), expressed as tile-corner coordinates
// rather than tile-index/side.
type Line struct {
	X1, Y1, X2, Y2 int
	Colour         string
}
