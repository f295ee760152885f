package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// pinPartial asserts every fact the symbolic executor (component C)
// already determined: known tile exist/allowed/wall bits, known
// item-presence (only "present=false" is ever known at this stage —
// spec.md §4.C: "items untouched, the world is still unknown"), the
// turtle's start position/direction, and known marker edges.
func pinPartial(store *csp.Store, v *vars, pw *worldmodel.PartialWorld) error {
	for i, pt := range pw.Tiles {
		if err := pinTriBool(store, v.tiles[i].exist, pt.Exist); err != nil {
			return err
		}
		if err := pinTriBool(store, v.tiles[i].allowed, pt.Allowed); err != nil {
			return err
		}
		for _, s := range []worldmodel.Side{worldmodel.Top, worldmodel.LeftSide, worldmodel.RightSide, worldmodel.Bottom} {
			if err := pinTriBool(store, v.tiles[i].wall[s].presentVar, pt.Wall.Get(s)); err != nil {
				return err
			}
		}
	}
	for i, pi := range pw.Items {
		if pi == nil {
			continue
		}
		if present, known := pi.Present.Bool(); known && !present {
			if err := store.Post(csp.Equal(v.tiles[i].nameVar, itemNameAbsent())); err != nil {
				return err
			}
		}
	}
	for i, pm := range pw.Markers {
		for _, s := range []worldmodel.Side{worldmodel.Top, worldmodel.LeftSide, worldmodel.RightSide, worldmodel.Bottom} {
			edge := pm.Get(s)
			if err := pinTriBool(store, v.tiles[i].markers[s].presentVar, edge.Present); err != nil {
				return err
			}
		}
	}
	if pw.Turtle.Y != nil && pw.Turtle.X != nil {
		idx := v.grid.Index(*pw.Turtle.Y, *pw.Turtle.X)
		if err := store.Post(csp.Equal(v.posVar, idx)); err != nil {
			return err
		}
	}
	if pw.Turtle.Dir != nil {
		if err := store.Post(csp.Equal(v.dirVar, int(*pw.Turtle.Dir))); err != nil {
			return err
		}
	}
	return nil
}

func pinTriBool(store *csp.Store, v int, t worldmodel.TriBool) error {
	val, known := t.Bool()
	if !known {
		return nil
	}
	want := 0
	if val {
		want = 1
	}
	return store.Post(csp.Equal(v, want))
}
