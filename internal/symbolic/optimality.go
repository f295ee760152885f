package symbolic

// QuickOptimalityFilter is a cheap syntactic pre-filter run before the
// expensive trace-optimality candidate check in component F: a path
// that immediately backtracks onto the tile it came from two steps ago
// can never be part of a shortest route, so there is no reason to pay
// for the full code-shape/goal-feasibility check on it. Ported from the
// original implementation's code_optimality.py, which runs an
// equivalent structural check before its SMT encoding.
func QuickOptimalityFilter(path []int) bool {
	for i := 2; i < len(path); i++ {
		if path[i] == path[i-2] {
			return false
		}
	}
	return true
}
