package worldsynth

import "github.com/xlogosyn/xlogosyn/internal/worldmodel"

// leafVarLayout fixes the order existAllowedWallVars packs variables in,
// so a resolved value slice from csp.Check can be decoded back into a
// worldmodel.World without re-deriving indices at every call site.
type leafVarLayout struct {
	exist, allowed []int
	wallVars       []int
	wallIdx        map[int]int
}

// existAllowedWallVars returns every exist/allowed boolean plus one
// variable per canonical wall edge (deduplicated through vars.edgeIDs,
// so a shared boundary/internal wall variable appears once).
func existAllowedWallVars(v *vars) leafVarLayout {
	n := len(v.tiles)
	lay := leafVarLayout{exist: make([]int, n), allowed: make([]int, n), wallIdx: map[int]int{}}
	for i, tv := range v.tiles {
		lay.exist[i] = tv.exist
		lay.allowed[i] = tv.allowed
		for _, s := range allSides {
			pv := tv.wall[s].presentVar
			if _, seen := lay.wallIdx[pv]; !seen {
				lay.wallIdx[pv] = len(lay.wallVars)
				lay.wallVars = append(lay.wallVars, pv)
			}
		}
	}
	return lay
}

// vars concatenates the layout's three sections into one Check variable
// list, in the order decodeWorld expects.
func (lay leafVarLayout) vars() []int {
	out := append([]int{}, lay.exist...)
	out = append(out, lay.allowed...)
	out = append(out, lay.wallVars...)
	return out
}

// decodeWorld materialises a worldmodel.World from a resolved value
// slice aligned to lay.vars(), for the leaf-only global checks in
// reachability.go and traceopt.go.
func (lay leafVarLayout) decodeWorld(v *vars, a []int) *worldmodel.World {
	n := len(v.tiles)
	w := worldmodel.New(v.grid.Rows, v.grid.Cols)
	for i := 0; i < n; i++ {
		w.Tiles[i].Exist = a[i] == 1
		w.Tiles[i].Allowed = a[n+i] == 1
	}
	for i, tv := range v.tiles {
		for _, s := range allSides {
			pv := tv.wall[s].presentVar
			val := a[2*n+lay.wallIdx[pv]]
			w.Tiles[i].Wall = w.Tiles[i].Wall.Set(s, val == 1)
		}
	}
	return w
}

// wallPresent reports the resolved wall state of tile i's side s, given
// a value slice decoded with the same layout.
func (lay leafVarLayout) wallPresent(v *vars, a []int, i int, s worldmodel.Side) bool {
	n := len(v.tiles)
	pv := v.tiles[i].wall[s].presentVar
	return a[2*n+lay.wallIdx[pv]] == 1
}
