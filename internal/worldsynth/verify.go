package worldsynth

import (
	"context"

	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// VerifyGoal re-checks goal satisfaction against an already-concrete
// world: spec.md §4.I describes this as "a formula identical to F's
// goal embedding but with the item variables pinned to the candidate
// world", checked for satisfiability with a single solver call. It is
// a cheap sanity net, not a second source of truth — the synthesizer
// already enforces the same formula while the world is still being
// built.
func VerifyGoal(w *worldmodel.World, goal *goalmodel.Goal) (bool, error) {
	store := csp.NewStore()
	v := newVars(store, w.Grid)
	if err := pinConcrete(store, v, w); err != nil {
		return false, err
	}
	ge := newGoalEmbedder(v, w.Trace)
	if err := ge.postGoal(store, goal); err != nil {
		return false, err
	}
	enumerator := csp.NewEnumerator(store, csp.NewDFSSearch(), 1)
	_, ok, err := enumerator.Next(context.Background())
	if err != nil {
		return false, err
	}
	return ok, nil
}

// pinConcrete is pin.go's pinPartial counterpart for a fully resolved
// World: every variable is pinned to a known value rather than left
// free where the partial world's fact is unknown.
func pinConcrete(store *csp.Store, v *vars, w *worldmodel.World) error {
	for i, t := range w.Tiles {
		if err := pinBool(store, v.tiles[i].exist, t.Exist); err != nil {
			return err
		}
		if err := pinBool(store, v.tiles[i].allowed, t.Allowed); err != nil {
			return err
		}
		for _, s := range allSides {
			if err := pinBool(store, v.tiles[i].wall[s].presentVar, t.Wall.Get(s)); err != nil {
				return err
			}
		}

		item := w.Items[i]
		name, colour, count := itemNameAbsent(), itemColourAbsent(), 0
		if item != nil {
			name, colour, count = itemNameIndex(item.Name), itemColourIndex(item.Colour), item.Count
		}
		if err := store.Post(csp.Equal(v.tiles[i].nameVar, name)); err != nil {
			return err
		}
		if err := store.Post(csp.Equal(v.tiles[i].colourVar, colour)); err != nil {
			return err
		}
		if err := store.Post(csp.Equal(v.tiles[i].countVar, count)); err != nil {
			return err
		}

		tm := w.Markers[i]
		for _, s := range allSides {
			edge := tm.Get(s)
			if err := pinBool(store, v.tiles[i].markers[s].presentVar, edge.Present); err != nil {
				return err
			}
			colourIdx := itemColourAbsent()
			if edge.Present && edge.Colour != "" {
				colourIdx = itemColourIndex(edge.Colour)
			}
			if err := store.Post(csp.Equal(v.tiles[i].markers[s].colourVar, colourIdx)); err != nil {
				return err
			}
		}
	}
	if err := store.Post(csp.Equal(v.posVar, w.TurtleIndex())); err != nil {
		return err
	}
	return store.Post(csp.Equal(v.dirVar, int(w.Turtle.Dir)))
}

func pinBool(store *csp.Store, v int, b bool) error {
	want := 0
	if b {
		want = 1
	}
	return store.Post(csp.Equal(v, want))
}
