package worldmodel

// Grid is the shared row-major addressing scheme used by World and
// PartialWorld: tile index i = y*cols + x.
type Grid struct {
	Rows, Cols int
}

// Index converts (y,x) to a flat tile index.
func (g Grid) Index(y, x int) int {
	return y*g.Cols + x
}

// Coords converts a flat tile index back to (y,x).
func (g Grid) Coords(i int) (y, x int) {
	return i / g.Cols, i % g.Cols
}

// InBounds reports whether (y,x) lies within the grid.
func (g Grid) InBounds(y, x int) bool {
	return y >= 0 && y < g.Rows && x >= 0 && x < g.Cols
}

// Size returns the total tile count.
func (g Grid) Size() int {
	return g.Rows * g.Cols
}

// Neighbor returns the tile index adjacent to i across side s, and
// whether that neighbour lies within the grid.
func (g Grid) Neighbor(i int, s Side) (int, bool) {
	y, x := g.Coords(i)
	switch s {
	case Top:
		y--
	case Bottom:
		y++
	case LeftSide:
		x--
	case RightSide:
		x++
	}
	if !g.InBounds(y, x) {
		return 0, false
	}
	return g.Index(y, x), true
}
