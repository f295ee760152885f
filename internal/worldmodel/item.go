package worldmodel

// Item is a tile's collectible: a name/colour/count triple. At most one
// Item may occupy a tile (spec.md §3.4).
type Item struct {
	Name   string
	Colour string
	Count  int
}

// Clone returns a value copy (Item has no reference fields, but Clone
// is provided for symmetry with the other domain types and to keep
// call sites future-proof against Item growing a reference field).
func (it Item) Clone() Item {
	return it
}

// Equal reports field-wise equality.
func (it Item) Equal(other Item) bool {
	return it.Name == other.Name && it.Colour == other.Colour && it.Count == other.Count
}
