package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// postForbiddenSymmetry asserts spec.md §4.F's optional "symmetric
// forbidden areas" rule: the forbidden subset (existing but disallowed
// tiles) is invariant under at least one of the grid's axis mirrors
// (plus both diagonals when the grid is square). It is enable-on-demand
// per spec.md, so callers only post it when requested.
func postForbiddenSymmetry(store *csp.Store, v *vars) error {
	g := v.grid
	mirrors := axisMirrors(g)
	vars := make([]int, 0, len(v.tiles)*2)
	for _, tv := range v.tiles {
		vars = append(vars, tv.exist, tv.allowed)
	}
	n := len(v.tiles)
	return store.Post(csp.Check(vars, func(a []int) bool {
		forbidden := make([]bool, n)
		for i := 0; i < n; i++ {
			forbidden[i] = a[i] == 1 && a[n+i] == 0
		}
		for _, mirror := range mirrors {
			if symmetricUnder(forbidden, mirror) {
				return true
			}
		}
		return false
	}))
}

// axisMirrors returns the candidate index-permutations spec.md lists:
// both axis mirrors always, plus both diagonals when the grid is
// square (a diagonal mirror is only a permutation of tile indices when
// rows==cols).
func axisMirrors(g worldmodel.Grid) [][]int {
	lr := make([]int, g.Size())
	tb := make([]int, g.Size())
	for i := range lr {
		y, x := g.Coords(i)
		lr[i] = g.Index(y, g.Cols-1-x)
		tb[i] = g.Index(g.Rows-1-y, x)
	}
	out := [][]int{lr, tb}
	if g.Rows == g.Cols {
		main := make([]int, g.Size())
		anti := make([]int, g.Size())
		for i := range main {
			y, x := g.Coords(i)
			main[i] = g.Index(x, y)
			anti[i] = g.Index(g.Cols-1-x, g.Rows-1-y)
		}
		out = append(out, main, anti)
	}
	return out
}

func symmetricUnder(forbidden []bool, mirror []int) bool {
	for i, m := range mirror {
		if forbidden[i] != forbidden[m] {
			return false
		}
	}
	return true
}
