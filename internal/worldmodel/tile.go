package worldmodel

// Tile is one concrete cell of a fully-built World (spec.md §3.4).
type Tile struct {
	Exist   bool
	Allowed bool
	Wall    Walls
}

// Turtle is the single mobile actor of a World.
type Turtle struct {
	Y, X int
	Dir  Direction
}
