package worldmodel

// Walls holds the four wall flags of one tile.
type Walls struct {
	Top, Left, Right, Bottom bool
}

// Get returns the flag for a given side.
func (w Walls) Get(s Side) bool {
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
		return false
	}
}

// Set returns a copy of w with side s set to v.
func (w Walls) Set(s Side, v bool) Walls {
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

// FullyWalled reports whether every side is walled, which spec.md §3.4
// forbids for the turtle's own tile and for any allowed tile.
func (w Walls) FullyWalled() bool {
	return w.Top && w.Left && w.Right && w.Bottom
}
