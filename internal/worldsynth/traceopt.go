package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/symbolic"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// maxTraceOptCandidates bounds the candidate-path search so a large
// grid can't make every leaf's optimality check unbounded; spec.md §9
// already treats the reachability proxy's own k=100 bound as an
// accepted, empirically-validated approximation, and this pass inherits
// the same posture.
const maxTraceOptCandidates = 300

// postTraceOptimality asserts spec.md §4.F's "Trace optimality": no
// candidate path shorter (in primitive-action count) than the
// reference trace, that also satisfies the code-shape constraint and
// the goal's feasibility predicate, may reach the goal without being
// physically blocked by a wall. It also forbids any "standalone" wall
// (between two allowed, existing tiles) that lies on neither the trace
// nor any qualifying candidate, since such a wall would serve no
// purpose but does constrain the grid.
func postTraceOptimality(store *csp.Store, v *vars, prog ast.Program, cons ast.CodeConstraint, goal *goalmodel.Goal, trace []int, startDir worldmodel.Direction) error {
	lay := existAllowedWallVars(v)
	itemVars := make([]int, 0, len(v.tiles)*3)
	for _, tv := range v.tiles {
		itemVars = append(itemVars, tv.nameVar, tv.colourVar, tv.countVar)
	}
	vars := append(lay.vars(), itemVars...)
	grid := v.grid
	nTiles := len(v.tiles)
	actionsT := len(prog.Flatten())
	start := trace[0]
	traceEdges := edgeSet(trace)

	return store.Post(csp.Check(vars, func(a []int) bool {
		w := lay.decodeWorld(v, a)
		itemValues := a[len(lay.vars()):]
		adj := newAdjacency(w)
		candidates := enumerateBoundedPaths(adj, start, actionsT, 3, maxTraceOptCandidates)

		touched := make(map[[2]int]bool, len(traceEdges))
		for e := range traceEdges {
			touched[e] = true
		}

		for _, path := range candidates {
			if len(path) < 2 {
				continue
			}
			if !symbolic.QuickOptimalityFilter(path) {
				continue
			}
			candProg := pathToProgram(grid, path, startDir)
			if len(candProg.Flatten()) >= actionsT {
				continue
			}
			if !cons.Satisfies(candProg) {
				continue
			}
			if !goalFeasibleOnPath(itemValues, nTiles, goal, path) {
				continue
			}
			blocked := false
			for k := 0; k < len(path)-1; k++ {
				if edgeWalled(lay, v, a, path[k], path[k+1]) {
					blocked = true
				}
				touched[edgeOf(path[k], path[k+1])] = true
			}
			if !blocked {
				return false
			}
		}

		for i, t := range w.Tiles {
			if !t.Exist || !t.Allowed {
				continue
			}
			for _, s := range allSides {
				nb, ok := grid.Neighbor(i, s)
				if !ok || nb < i || !w.Tiles[nb].Exist || !w.Tiles[nb].Allowed {
					continue
				}
				if !lay.wallPresent(v, a, i, s) {
					continue
				}
				if !touched[edgeOf(i, nb)] {
					return false
				}
			}
		}
		return true
	}))
}

func edgeOf(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

func edgeSet(path []int) map[[2]int]bool {
	set := map[[2]int]bool{}
	for k := 0; k+1 < len(path); k++ {
		set[edgeOf(path[k], path[k+1])] = true
	}
	return set
}

func edgeWalled(lay leafVarLayout, v *vars, a []int, i, j int) bool {
	for _, s := range allSides {
		if nb, ok := v.grid.Neighbor(i, s); ok && nb == j {
			return lay.wallPresent(v, a, i, s)
		}
	}
	return false
}

// enumerateBoundedPaths walks every simple-ish path from start (tiles
// may be revisited up to maxRevisit times, mirroring spec.md's
// "visiting each tile ≤3 times") with at most maxSteps grid moves,
// stopping early once cap paths have been found. maxSteps over-bounds
// the true action budget (turns cost actions too, never fewer moves
// than steps), so every program-length-qualifying candidate is
// guaranteed to appear before the cap is reached for reasonably small
// grids.
func enumerateBoundedPaths(adj *adjacency, start, maxSteps, maxRevisit, cap int) [][]int {
	var out [][]int
	visits := map[int]int{}
	var walk func(path []int)
	walk = func(path []int) {
		if len(out) >= cap {
			return
		}
		if len(path) > 1 {
			out = append(out, append([]int(nil), path...))
		}
		if len(path)-1 >= maxSteps {
			return
		}
		cur := path[len(path)-1]
		for _, nb := range adj.neighbours(cur) {
			if visits[nb] >= maxRevisit {
				continue
			}
			visits[nb]++
			walk(append(path, nb))
			visits[nb]--
			if len(out) >= cap {
				return
			}
		}
	}
	visits[start] = 1
	walk([]int{start})
	return out
}
