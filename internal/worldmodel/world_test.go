package worldmodel

import "testing"

func simple3x3() *World {
	w := New(3, 3)
	for i := range w.Tiles {
		w.Tiles[i] = Tile{Exist: true, Allowed: true}
	}
	w.Turtle = Turtle{Y: 1, X: 1, Dir: North}
	return w
}

func TestValidateAcceptsOpenGrid(t *testing.T) {
	w := simple3x3()
	if err := w.Validate(); err != nil {
		t.Fatalf("expected valid world, got %v", err)
	}
}

func TestValidateRejectsWalledTurtleTile(t *testing.T) {
	w := simple3x3()
	i := w.TurtleIndex()
	w.Tiles[i].Wall = Walls{Top: true, Left: true, Right: true, Bottom: true}
	if err := w.Validate(); err == nil {
		t.Fatalf("expected validation error for fully walled turtle tile")
	}
}

func TestValidateRejectsAsymmetricWall(t *testing.T) {
	w := simple3x3()
	i := w.Index(1, 1)
	w.Tiles[i].Wall.Right = true
	if err := w.Validate(); err == nil {
		t.Fatalf("expected validation error for asymmetric wall")
	}
}

func TestValidateRejectsItemOnForbiddenTile(t *testing.T) {
	w := simple3x3()
	i := w.Index(0, 0)
	w.Tiles[i].Allowed = false
	w.Items[i] = &Item{Name: "lemon", Colour: "yellow", Count: 1}
	if err := w.Validate(); err == nil {
		t.Fatalf("expected validation error for item on forbidden tile")
	}
}

func TestWorldJSONRoundTrip(t *testing.T) {
	w := simple3x3()
	w.Items[w.Index(0, 0)] = &Item{Name: "lemon", Colour: "yellow", Count: 1}
	i := w.Index(1, 1)
	w.Markers[i] = w.Markers[i].Set(Top, MarkerEdge{Present: true, Colour: "#FF0000"})

	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back := &World{}
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Rows != w.Rows || back.Cols != w.Cols {
		t.Fatalf("grid mismatch after round trip")
	}
	if back.Turtle != w.Turtle {
		t.Fatalf("turtle mismatch after round trip: %+v vs %+v", back.Turtle, w.Turtle)
	}
	item := back.ItemAt(0, 0)
	if item == nil || !item.Equal(*w.Items[w.Index(0, 0)]) {
		t.Fatalf("item mismatch after round trip")
	}
	if !back.Markers[back.Index(1, 1)].Top.Present {
		t.Fatalf("expected top marker at (1,1) to survive round trip")
	}
}

func TestPartialResolveRequiresFullyKnownFields(t *testing.T) {
	pw := NewPartial(2, 2)
	if _, err := pw.Resolve(); err == nil {
		t.Fatalf("expected resolve error on all-unknown partial world")
	}
}

func TestPartialResolveSucceedsWhenFullyKnown(t *testing.T) {
	pw := NewPartial(2, 2)
	y, x, dir := 0, 0, North
	pw.Turtle = PartialTurtle{Y: &y, X: &x, Dir: &dir}
	for i := range pw.Tiles {
		pw.Tiles[i] = PartialTile{
			Exist: True, Allowed: True,
			Wall: PartialWalls{Top: False, Left: False, Right: False, Bottom: False},
		}
		none := PartialMarkerEdge{Present: False}
		pw.Markers[i] = PartialTileMarkers{Top: none, Left: none, Right: none, Bottom: none}
	}
	w, err := pw.Resolve()
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if w.Rows != 2 || w.Cols != 2 {
		t.Fatalf("unexpected grid size after resolve")
	}
}
