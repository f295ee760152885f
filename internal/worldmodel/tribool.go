// Package worldmodel implements the concrete and partial grid-world
// representation from spec.md §3.4/§3.5: tiles, turtle, items, markers,
// and the three-valued fields the symbolic executor (component C) fills
// in as it runs.
package worldmodel

// TriBool is a three-valued logic value: a tile field, item attribute,
// or wall flag in a PartialWorld is either known true, known false, or
// Unknown until the symbolic executor constrains it.
type TriBool int8

const (
	Unknown TriBool = iota
	True
	False
)

// FromBool lifts a concrete bool into a known TriBool.
func FromBool(b bool) TriBool {
	if b {
		return True
	}
	return False
}

// Bool reports the concrete value and whether it is known.
func (t TriBool) Bool() (value bool, known bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// MustBool panics if t is Unknown; used once a partial world has been
// fully resolved into a concrete World.
func (t TriBool) MustBool() bool {
	v, ok := t.Bool()
	if !ok {
		panic("worldmodel: MustBool called on Unknown value")
	}
	return v
}

func (t TriBool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
