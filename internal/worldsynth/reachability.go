package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// postReachability asserts spec.md §8 law 7: any two allowed tiles are
// connected through adjacent allowed tiles with no wall between them —
// equivalently, the allowed subset forms exactly one connected
// component of the wall-induced graph restricted to allowed tiles.
//
// The symbolic encoding spec.md §4.F describes (a per-pair connectivity
// predicate over the first k=100 shortest simple paths) exists to make
// the rule assertable incrementally, clause by clause, inside an
// incremental SAT solver. Check only ever runs on a fully resolved
// assignment, where exact reachability is no more expensive than the
// path-enumeration proxy and strictly decides the invariant rather than
// approximating it, so this package calls adjacency.bfsWithinAllowed
// directly. kShortestSimplePaths and ReachabilityK are used instead by
// the forbid objective's alternate-path rule (postForbid in
// goalembed.go); the trace-optimality pass (traceopt.go) enumerates its
// own candidate paths with enumerateBoundedPaths.
func postReachability(store *csp.Store, v *vars) error {
	lay := existAllowedWallVars(v)
	return store.Post(csp.Check(lay.vars(), func(a []int) bool {
		w := lay.decodeWorld(v, a)
		return allowedFormsOneComponent(w)
	}))
}

func allowedFormsOneComponent(w *worldmodel.World) bool {
	adj := newAdjacency(w)
	first := -1
	allowedCount := 0
	for i, t := range w.Tiles {
		if t.Exist && t.Allowed {
			allowedCount++
			if first == -1 {
				first = i
			}
		}
	}
	if allowedCount == 0 {
		return true
	}
	reach := adj.bfsWithinAllowed(first)
	return len(reach) == allowedCount
}

// bfsWithinAllowed is BFSReachable restricted to tiles that are both
// existing and allowed, matching the subgraph law 7 quantifies over.
func (g *adjacency) bfsWithinAllowed(start int) map[int]bool {
	if !g.w.Tiles[start].Exist || !g.w.Tiles[start].Allowed {
		return map[int]bool{}
	}
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.neighbours(cur) {
			if seen[nb] || !g.w.Tiles[nb].Allowed {
				continue
			}
			seen[nb] = true
			queue = append(queue, nb)
		}
	}
	return seen
}
