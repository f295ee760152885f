package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// enum layouts for item/marker colour variables: valid values followed
// by a trailing "absent" sentinel, the same convention
// internal/goalmutator uses for literal slots.
var (
	itemNames   = goalmodel.ValidNames
	itemColours = goalmodel.ValidColours
)

func itemNameAbsent() int   { return len(itemNames) }
func itemColourAbsent() int { return len(itemColours) }

func itemNameIndex(v string) int {
	for i, n := range itemNames {
		if n == v {
			return i
		}
	}
	return itemNameAbsent()
}

func itemColourIndex(v string) int {
	for i, c := range itemColours {
		if c == v {
			return i
		}
	}
	return itemColourAbsent()
}

// edgeVar identifies one canonical undirected edge variable: either the
// boundary edge of tile/side, or the shared edge between tile and its
// neighbour across side.
type edgeVar struct {
	presentVar int // boolean: wall present (tile vars) or marker drawn (marker vars)
	colourVar  int // only populated for marker edges; -1 otherwise
}

// tileVars holds every solver variable describing one grid tile.
type tileVars struct {
	exist, allowed int
	wall           [4]edgeVar // indexed by worldmodel.Side
	markers        [4]edgeVar

	nameVar, colourVar, countVar int
}

// vars is the full variable table for one Synthesize call: per-tile
// vars plus the turtle's one-hot position/direction (a single
// integer-domain variable IS a one-hot encoding at the csp.Domain
// level, so no auxiliary boolean/sum-to-1 machinery is needed).
type vars struct {
	grid    worldmodel.Grid
	tiles   []tileVars
	posVar  int
	dirVar  int
	edgeIDs map[edgeKey]edgeVar // memoizes shared edges so both sides reuse one variable pair
}

type edgeKey struct {
	kind string
	a, b int
}

func newVars(store *csp.Store, g worldmodel.Grid) *vars {
	n := g.Size()
	v := &vars{grid: g, tiles: make([]tileVars, n), edgeIDs: map[edgeKey]edgeVar{}}
	for i := 0; i < n; i++ {
		tv := &v.tiles[i]
		tv.exist = store.NewVar("exist", csp.FullDomain(2))
		tv.allowed = store.NewVar("allowed", csp.FullDomain(2))
		tv.nameVar = store.NewVar("item_name", csp.FullDomain(itemNameAbsent()+1))
		tv.colourVar = store.NewVar("item_colour", csp.FullDomain(itemColourAbsent()+1))
		tv.countVar = store.NewVar("item_count", csp.FullDomain(5))
		for _, s := range []worldmodel.Side{worldmodel.Top, worldmodel.LeftSide, worldmodel.RightSide, worldmodel.Bottom} {
			tv.wall[s] = v.sharedWall(store, g, i, s)
			tv.markers[s] = v.sharedMarker(store, g, i, s)
		}
	}
	v.posVar = store.NewVar("turtle_pos", csp.FullDomain(n))
	v.dirVar = store.NewVar("turtle_dir", csp.FullDomain(4))
	return v
}

// sharedWall returns the wall-present boolean for tile i's side s,
// allocating a fresh variable on first sight and reusing it for the
// neighbour's mirrored side so wall symmetry holds by construction
// rather than by an extra equality constraint (spec.md §3.4: "tile[i].
// right == tile[i+1].left").
func (v *vars) sharedWall(store *csp.Store, g worldmodel.Grid, i int, s worldmodel.Side) edgeVar {
	return v.sharedEdge(store, g, i, s, "wall", false)
}

func (v *vars) sharedMarker(store *csp.Store, g worldmodel.Grid, i int, s worldmodel.Side) edgeVar {
	return v.sharedEdge(store, g, i, s, "marker", true)
}

func (v *vars) sharedEdge(store *csp.Store, g worldmodel.Grid, i int, s worldmodel.Side, label string, withColour bool) edgeVar {
	nb, ok := g.Neighbor(i, s)
	var key edgeKey
	if ok {
		key = edgeKey{label, min(i, nb), max(i, nb)}
	} else {
		key = edgeKey{label, i, -int(s) - 1} // boundary edges are never shared, keyed uniquely per (tile,side)
	}
	if ev, seen := v.edgeIDs[key]; seen {
		return ev
	}
	ev := edgeVar{colourVar: -1}
	if !ok {
		// Boundary edge: no outward wall/marker ever (spec.md §4.F:
		// "edge tiles have no outward wall"; markers mirror the rule).
		ev.presentVar = store.NewVar(label, csp.SingletonDomain(2, 0))
	} else {
		ev.presentVar = store.NewVar(label, csp.FullDomain(2))
	}
	if withColour {
		ev.colourVar = store.NewVar(label+"_colour", csp.FullDomain(itemColourAbsent()+1))
	}
	v.edgeIDs[key] = ev
	return ev
}
