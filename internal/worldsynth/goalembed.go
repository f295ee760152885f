package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// goalEmbedder assembles the per-objective formulas of spec.md §4.F
// "Goal embedding" against a fixed trace (the symbolic executor already
// decided which tiles are visited and in what order; only the world's
// item and marker variables are still free).
type goalEmbedder struct {
	v     *vars
	trace []int
	onTra []bool // onTra[i] reports whether tile i appears anywhere in trace
}

func newGoalEmbedder(v *vars, trace []int) *goalEmbedder {
	onTra := make([]bool, len(v.tiles))
	for _, i := range trace {
		onTra[i] = true
	}
	return &goalEmbedder{v: v, trace: trace, onTra: onTra}
}

// postGoal posts every objective in g as a Check constraint, deferred
// (like every global rule in this package) until the whole grid is
// resolved, since goal satisfaction is a whole-world property.
func (ge *goalEmbedder) postGoal(store *csp.Store, g *goalmodel.Goal) error {
	for _, kind := range g.OrderedKinds() {
		for _, obj := range g.Objectives[kind] {
			if err := ge.postObjective(store, obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ge *goalEmbedder) itemVars() []int {
	out := make([]int, 0, len(ge.v.tiles)*3)
	for _, tv := range ge.v.tiles {
		out = append(out, tv.nameVar, tv.colourVar, tv.countVar)
	}
	return out
}

func (ge *goalEmbedder) markerVars() []int {
	out := make([]int, 0, len(ge.v.tiles)*8)
	for _, tv := range ge.v.tiles {
		for _, s := range allSides {
			out = append(out, tv.markers[s].presentVar, tv.markers[s].colourVar)
		}
	}
	return out
}

const itemVarsPerTile = 3

func itemFactsAt(a []int, tileIdx int) goalmodel.ItemFacts {
	base := tileIdx * itemVarsPerTile
	name, colour, count := a[base], a[base+1], a[base+2]
	if name == itemNameAbsent() {
		return goalmodel.ItemFacts{Present: false}
	}
	return goalmodel.ItemFacts{Present: true, Name: itemNames[name], Colour: itemColours[colour], Count: count}
}

const markerVarsPerTile = 8 // 2 vars (present, colour) x 4 sides

// lineFactsFromMarkers builds a LineFacts closure from a resolved
// marker-variable assignment: a line literal is satisfied when the edge
// at its corner coordinates is drawn with the matching colour.
func (ge *goalEmbedder) lineFactsFromMarkers(a []int) goalmodel.LineFacts {
	g := ge.v.grid
	return func(x1, y1, x2, y2 int, colour string) bool {
		i, s, ok := cornersToEdge(g, x1, y1, x2, y2)
		if !ok {
			return false
		}
		base := i*markerVarsPerTile + int(s)*2
		present, col := a[base], a[base+1]
		if present == 0 {
			return false
		}
		return col != itemColourAbsent() && itemColours[col] == colour
	}
}

// cornersToEdge inverts worldmodel's corner-coordinate convention
// (wireLine's sideToLine in internal/worldmodel/json.go) back to a
// (tile,side) pair.
func cornersToEdge(g interface{ Index(y, x int) int; InBounds(y, x int) bool }, x1, y1, x2, y2 int) (int, uint8, bool) {
	switch {
	case y1 == y2 && x2 == x1+1:
		if g.InBounds(y1, x1) {
			return g.Index(y1, x1), 0, true // Top
		}
	case y1 == y2 && x1 == x2+1:
		if g.InBounds(y2, x2) {
			return g.Index(y2, x2), 0, true
		}
	case x1 == x2 && y2 == y1+1:
		if g.InBounds(y1, x1) {
			return g.Index(y1, x1), 1, true // LeftSide
		}
	case x1 == x2 && y1 == y2+1:
		if g.InBounds(y2, x2) {
			return g.Index(y2, x2), 1, true
		}
	}
	return 0, 0, false
}

func (ge *goalEmbedder) postObjective(store *csp.Store, obj goalmodel.Objective) error {
	switch obj.Kind {
	case goalmodel.KindFind:
		return ge.postFind(store, obj.Specs[0], false)
	case goalmodel.KindFindOnly:
		return ge.postFind(store, obj.Specs[0], true)
	case goalmodel.KindForbid:
		return ge.postForbid(store, obj.Specs[0])
	case goalmodel.KindCollectAll:
		return ge.postCollectAll(store, obj.Specs[0])
	case goalmodel.KindSum:
		return ge.postSum(store, obj.Specs[0], *obj.TotalCnt)
	case goalmodel.KindConcat:
		return ge.postConcat(store, obj.Specs)
	case goalmodel.KindDraw:
		return ge.postDraw(store, obj.Specs[0])
	}
	return nil
}

// postFind asserts exactly one tile in the world satisfies spec and it
// is the trace's last visited tile; onlyOne also forbids the negated
// spec's complementary region (spec.md: "findonly ... as find, plus the
// complementary spec is encoded as a forbid").
func (ge *goalEmbedder) postFind(store *csp.Store, spec goalmodel.Spec, onlyOne bool) error {
	vars := ge.itemVars()
	last := ge.trace[len(ge.trace)-1]
	check := csp.Check(vars, func(a []int) bool {
		count := 0
		satAt := -1
		for i := range ge.v.tiles {
			if spec.Satisfies(itemFactsAt(a, i), nil) {
				count++
				satAt = i
			}
		}
		return count == 1 && satAt == last
	})
	if err := store.Post(check); err != nil {
		return err
	}
	if onlyOne {
		neg := negateSpec(spec)
		return ge.postForbid(store, neg)
	}
	return nil
}

// postForbid asserts no trace tile satisfies spec, at least one
// off-trace tile does, and every satisfying off-trace tile lies on some
// shortest alternative path between two visited tiles — the
// reachability proxy's own kShortestSimplePaths, applied here over every
// pair of trace tiles so the forbiddance is the reason the trace
// deviates rather than an item dropped somewhere structurally
// unreachable from the route.
func (ge *goalEmbedder) postForbid(store *csp.Store, spec goalmodel.Spec) error {
	lay := existAllowedWallVars(ge.v)
	leafVars := lay.vars()
	vars := append(append([]int{}, leafVars...), ge.itemVars()...)
	onTra := ge.onTra
	trace := ge.trace
	nLeaf := len(leafVars)

	return store.Post(csp.Check(vars, func(a []int) bool {
		w := lay.decodeWorld(ge.v, a)
		itemValues := a[nLeaf:]
		adj := newAdjacency(w)
		onAltPath := map[int]bool{}
		for p := 0; p < len(trace); p++ {
			for q := p + 1; q < len(trace); q++ {
				for _, path := range adj.kShortestSimplePaths(trace[p], trace[q], ReachabilityK) {
					for _, i := range path {
						onAltPath[i] = true
					}
				}
			}
		}

		found := false
		for i := range ge.v.tiles {
			sat := spec.Satisfies(itemFactsAt(itemValues, i), nil)
			if sat && onTra[i] {
				return false
			}
			if sat && !onTra[i] {
				if !onAltPath[i] {
					return false
				}
				found = true
			}
		}
		return found
	}))
}

// postCollectAll asserts every satisfying tile lies exactly on the
// trace set, at least two such tiles exist, and the last visited tile
// satisfies spec.
func (ge *goalEmbedder) postCollectAll(store *csp.Store, spec goalmodel.Spec) error {
	vars := ge.itemVars()
	onTra := ge.onTra
	last := ge.trace[len(ge.trace)-1]
	traceSet := map[int]bool{}
	for _, i := range ge.trace {
		traceSet[i] = true
	}
	return store.Post(csp.Check(vars, func(a []int) bool {
		satisfying := map[int]bool{}
		for i := range ge.v.tiles {
			if spec.Satisfies(itemFactsAt(a, i), nil) {
				satisfying[i] = true
			}
		}
		if len(satisfying) < 2 {
			return false
		}
		if len(satisfying) != len(traceSet) {
			return false
		}
		for i := range satisfying {
			if !onTra[i] {
				return false
			}
		}
		return satisfying[last]
	}))
}

// postSum asserts the sum of count[i]*satisfy[i] over trace tiles (one
// contribution per trace visit) equals totalCnt, the running sum over
// all but the last visit stays below totalCnt, the world total exceeds
// totalCnt, and every satisfying distractor (off-trace) is a
// strawberry — spec.md's restriction to keep extra sum-matter visually
// distinct from the goal's own fruit.
func (ge *goalEmbedder) postSum(store *csp.Store, spec goalmodel.Spec, totalCnt int) error {
	vars := ge.itemVars()
	trace := ge.trace
	onTra := ge.onTra
	return store.Post(csp.Check(vars, func(a []int) bool {
		running := 0
		for idx, i := range trace {
			facts := itemFactsAt(a, i)
			contrib := 0
			if spec.Satisfies(facts, nil) {
				contrib = facts.Count
			}
			if idx < len(trace)-1 {
				running += contrib
				if running >= totalCnt {
					return false
				}
			} else {
				running += contrib
			}
		}
		if running != totalCnt {
			return false
		}
		worldTotal := 0
		for i := range ge.v.tiles {
			facts := itemFactsAt(a, i)
			if spec.Satisfies(facts, nil) {
				worldTotal += facts.Count
				if !onTra[i] && facts.Name != "strawberry" {
					return false
				}
			}
		}
		return worldTotal > totalCnt
	}))
}

// postConcat asserts each spec occurs exactly once in the world and the
// trace's visit order respects the spec order: for every split point i
// of the trace, if the (k+1)-th spec is satisfied at i then the k-th
// spec is satisfied somewhere earlier in the trace.
func (ge *goalEmbedder) postConcat(store *csp.Store, specs []goalmodel.Spec) error {
	vars := ge.itemVars()
	trace := ge.trace
	return store.Post(csp.Check(vars, func(a []int) bool {
		for _, spec := range specs {
			count := 0
			for i := range ge.v.tiles {
				if spec.Satisfies(itemFactsAt(a, i), nil) {
					count++
				}
			}
			if count != 1 {
				return false
			}
		}
		satisfiedBefore := make([]bool, len(specs))
		for _, tile := range trace {
			for k := len(specs) - 1; k >= 1; k-- {
				if specs[k].Satisfies(itemFactsAt(a, tile), nil) && !satisfiedBefore[k-1] {
					return false
				}
			}
			for k, spec := range specs {
				if spec.Satisfies(itemFactsAt(a, tile), nil) {
					satisfiedBefore[k] = true
				}
			}
		}
		return true
	}))
}

// postDraw asserts the edges drawn by the trace equal the goal's line
// literals, and tiles off-trace do not exist (spec.md: "draw" collapses
// the world down to exactly the traced shape).
func (ge *goalEmbedder) postDraw(store *csp.Store, spec goalmodel.Spec) error {
	vars := append(ge.markerVars(), existVars(ge.v)...)
	onTra := ge.onTra
	nTiles := len(ge.v.tiles)
	return store.Post(csp.Check(vars, func(a []int) bool {
		markerValues := a[:nTiles*markerVarsPerTile]
		existValues := a[nTiles*markerVarsPerTile:]
		lines := ge.lineFactsFromMarkers(markerValues)
		for i := 0; i < nTiles; i++ {
			exist := existValues[i] == 1
			if !onTra[i] && exist {
				return false
			}
		}
		return spec.Satisfies(goalmodel.ItemFacts{}, lines)
	}))
}

func existVars(v *vars) []int {
	out := make([]int, len(v.tiles))
	for i, tv := range v.tiles {
		out[i] = tv.exist
	}
	return out
}

// negateSpec complements every literal of a single-clause-per-literal
// spec built from a DNF source (spec.md §9 design note: goal specs stay
// small enough that a literal-by-literal negation is tractable); used
// only by findonly, whose complementary forbid is by construction a
// conjunction of negated literals from the original find spec.
func negateSpec(spec goalmodel.Spec) goalmodel.Spec {
	var cnf []goalmodel.Clause
	for _, clause := range spec.CNF {
		for _, lit := range clause {
			neg := lit
			neg.Negated = !lit.Negated
			cnf = append(cnf, goalmodel.Clause{neg})
		}
	}
	return goalmodel.Spec{CNF: cnf}
}
