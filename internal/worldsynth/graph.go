// Package worldsynth implements the world synthesizer (component F of
// spec.md §4.F): given a partial world (from the symbolic executor), a
// goal, and a code-shape constraint, it completes the partial world
// into many distinct concrete worlds consistent with reachability,
// trace optimality, and goal satisfaction, using internal/csp the same
// typed-variable-and-model-blocker idiom as internal/mutator and
// internal/goalmutator.
package worldsynth

import "github.com/xlogosyn/xlogosyn/internal/worldmodel"

// adjacency is the wall-aware neighbour graph of a concrete World,
// ported from the original implementation's graph.py and shared (as
// the original does) between the reachability predicate and the
// trace-optimality candidate search.
type adjacency struct {
	w *worldmodel.World
}

func newAdjacency(w *worldmodel.World) *adjacency {
	return &adjacency{w: w}
}

// open reports whether tile i and its neighbour across side s are both
// existing and not separated by a wall — the edge traversal predicate
// every graph search in this file uses.
func (g *adjacency) open(i int, s worldmodel.Side) (int, bool) {
	if !g.w.Tiles[i].Exist || g.w.Tiles[i].Wall.Get(s) {
		return 0, false
	}
	nb, ok := g.w.Neighbor(i, s)
	if !ok || !g.w.Tiles[nb].Exist {
		return 0, false
	}
	return nb, true
}

// neighbours returns every tile open-adjacent to i.
func (g *adjacency) neighbours(i int) []int {
	var out []int
	for _, s := range []worldmodel.Side{worldmodel.Top, worldmodel.LeftSide, worldmodel.RightSide, worldmodel.Bottom} {
		if nb, ok := g.open(i, s); ok {
			out = append(out, nb)
		}
	}
	return out
}

// BFSReachable returns the set of tile indices reachable from start by
// crossing only wall-free edges between existing tiles.
func (g *adjacency) BFSReachable(start int) map[int]bool {
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.neighbours(cur) {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return seen
}

// kShortestSimplePaths enumerates up to k distinct simple paths (as
// tile-index sequences) between start and goal, in non-decreasing
// length order, using iterative-deepening DFS — the path-enumeration
// proxy of spec.md §4.F's reachability encoding, with the "first k=100"
// default spec.md §9 flags as an unguaranteed-complete but
// empirically-validated proxy. postReachability does not use it (it
// checks exact connectivity); postForbid's alternate-path rule does.
func (g *adjacency) kShortestSimplePaths(start, goal, k int) [][]int {
	var out [][]int
	for maxLen := 1; len(out) < k && maxLen <= g.w.Size(); maxLen++ {
		visited := map[int]bool{start: true}
		var walk func(path []int)
		walk = func(path []int) {
			if len(out) >= k {
				return
			}
			cur := path[len(path)-1]
			if cur == goal && len(path) > 1 {
				out = append(out, append([]int(nil), path...))
				return
			}
			if len(path) > maxLen {
				return
			}
			for _, nb := range g.neighbours(cur) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				walk(append(path, nb))
				visited[nb] = false
			}
		}
		walk([]int{start})
	}
	return dedupePaths(out, k)
}

func dedupePaths(paths [][]int, k int) [][]int {
	seen := map[string]bool{}
	var out [][]int
	for _, p := range paths {
		key := pathKey(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
		if len(out) >= k {
			break
		}
	}
	return out
}

func pathKey(p []int) string {
	b := make([]byte, 0, len(p)*4)
	for _, i := range p {
		b = append(b, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	}
	return string(b)
}

// ReachabilityK is the k in spec.md §4.F's reachability encoding.
const ReachabilityK = 100

// connectedComponents partitions every existing tile into the
// wall-induced components BFSReachable defines. Nothing in this package
// calls it; the reachability check (allowedFormsOneComponent) walks
// bfsWithinAllowed instead.
func (g *adjacency) connectedComponents() map[int]int {
	comp := map[int]int{}
	next := 0
	for i, t := range g.w.Tiles {
		if !t.Exist {
			continue
		}
		if _, seen := comp[i]; seen {
			continue
		}
		next++
		for nb := range g.BFSReachable(i) {
			comp[nb] = next
		}
	}
	return comp
}
