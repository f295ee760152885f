package worldsynth

import "github.com/xlogosyn/xlogosyn/internal/goalmodel"

// goalFeasibleOnPath re-evaluates whether g would be satisfied if path
// (rather than the real trace) were the visited sequence, given the
// same resolved item-variable assignment a that goalEmbedder.itemVars
// indexes. Used only by traceopt.go's candidate-path filter. The checks
// follow postFind/postForbid/postCollectAll/postSum/postConcat in
// goalembed.go but keep only the conditions that depend on the path:
// forbid only rejects a satisfying tile on the path (no off-path tile or
// alternate-path rule); collectall needs at least two satisfying visits
// and a satisfying last tile; sum compares only the final total; concat
// checks order but not that each spec is met exactly once. They run
// against an arbitrary candidate trace rather than the one fixed trace a
// goalEmbedder is built around.
func goalFeasibleOnPath(a []int, nTiles int, g *goalmodel.Goal, path []int) bool {
	onTra := make([]bool, nTiles)
	for _, i := range path {
		onTra[i] = true
	}
	last := path[len(path)-1]
	for _, kind := range g.OrderedKinds() {
		for _, obj := range g.Objectives[kind] {
			if !objectiveFeasible(a, nTiles, obj, path, onTra, last) {
				return false
			}
		}
	}
	return true
}

func objectiveFeasible(a []int, nTiles int, obj goalmodel.Objective, path []int, onTra []bool, last int) bool {
	switch obj.Kind {
	case goalmodel.KindFind, goalmodel.KindFindOnly:
		spec := obj.Specs[0]
		count, satAt := 0, -1
		for i := 0; i < nTiles; i++ {
			if spec.Satisfies(itemFactsAt(a, i), nil) {
				count++
				satAt = i
			}
		}
		return count == 1 && satAt == last
	case goalmodel.KindForbid:
		spec := obj.Specs[0]
		for i := 0; i < nTiles; i++ {
			if spec.Satisfies(itemFactsAt(a, i), nil) && onTra[i] {
				return false
			}
		}
		return true
	case goalmodel.KindCollectAll:
		spec := obj.Specs[0]
		satisfying := 0
		for _, i := range path {
			if spec.Satisfies(itemFactsAt(a, i), nil) {
				satisfying++
			}
		}
		return satisfying >= 2 && spec.Satisfies(itemFactsAt(a, last), nil)
	case goalmodel.KindSum:
		spec := obj.Specs[0]
		total := *obj.TotalCnt
		sum := 0
		for _, i := range path {
			facts := itemFactsAt(a, i)
			if spec.Satisfies(facts, nil) {
				sum += facts.Count
			}
		}
		return sum == total
	case goalmodel.KindConcat:
		satisfiedBefore := make([]bool, len(obj.Specs))
		for _, tile := range path {
			for k := len(obj.Specs) - 1; k >= 1; k-- {
				if obj.Specs[k].Satisfies(itemFactsAt(a, tile), nil) && !satisfiedBefore[k-1] {
					return false
				}
			}
			for k, spec := range obj.Specs {
				if spec.Satisfies(itemFactsAt(a, tile), nil) {
					satisfiedBefore[k] = true
				}
			}
		}
		return true
	case goalmodel.KindDraw:
		// Draw goals constrain the trace's own drawn edges, not a
		// candidate path's; a shorter path can never compete with a
		// draw objective the way it can with an item-search objective.
		return false
	}
	return true
}
