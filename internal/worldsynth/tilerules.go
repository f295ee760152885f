package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

var allSides = []worldmodel.Side{worldmodel.Top, worldmodel.LeftSide, worldmodel.RightSide, worldmodel.Bottom}

// postTileBaseProperties asserts spec.md §4.F's base world properties
// that are local to one tile or one tile/neighbour pair: allowed tiles
// exist, a non-existing tile has no walls, two forbidden neighbours
// have no wall between them, two existing tiles with different
// allowed-ness must have a wall between them, and a tile walled on all
// four sides must not be allowed.
func postTileBaseProperties(store *csp.Store, v *vars) error {
	for i := range v.tiles {
		tv := v.tiles[i]
		if err := store.Post(csp.Predicate([]int{tv.allowed, tv.exist}, func(a []int) bool {
			allowed, exist := a[0] == 1, a[1] == 1
			return !allowed || exist
		})); err != nil {
			return err
		}

		wallVars := make([]int, 0, 5)
		for _, s := range allSides {
			wallVars = append(wallVars, tv.wall[s].presentVar)
		}
		for _, s := range allSides {
			if err := store.Post(csp.Predicate([]int{tv.exist, tv.wall[s].presentVar}, func(a []int) bool {
				exist, wall := a[0] == 1, a[1] == 1
				return exist || !wall
			})); err != nil {
				return err
			}
		}
		allWall := append(append([]int(nil), wallVars...), tv.allowed)
		if err := store.Post(csp.Predicate(allWall, func(a []int) bool {
			allowed := a[4] == 1
			if !allowed {
				return true
			}
			for _, w := range a[:4] {
				if w == 0 {
					return true
				}
			}
			return false
		})); err != nil {
			return err
		}
	}

	for i := range v.tiles {
		for _, s := range allSides {
			nb, ok := v.grid.Neighbor(i, s)
			if !ok || nb < i {
				continue
			}
			if err := postPairRule(store, v, i, nb, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// postPairRule encodes the two cross-tile rules that relate a tile to
// one open neighbour: two forbidden neighbours never have a wall between
// them, and tiles that disagree on allowed-ness must have a wall between
// them.
func postPairRule(store *csp.Store, v *vars, i, nb int, s worldmodel.Side) error {
	ti, tn := v.tiles[i], v.tiles[nb]
	wallVar := ti.wall[s].presentVar
	vars := []int{ti.exist, ti.allowed, tn.exist, tn.allowed, wallVar}
	return store.Post(csp.Predicate(vars, func(a []int) bool {
		existI, allowedI, existN, allowedN, wall := a[0] == 1, a[1] == 1, a[2] == 1, a[3] == 1, a[4] == 1
		if !existI || !existN {
			return true
		}
		if !allowedI && !allowedN && wall {
			return false
		}
		if allowedI != allowedN && !wall {
			return false
		}
		return true
	}))
}

// postCrossComponentRules asserts spec.md §4.F's rules relating the
// turtle and items to tile shape: the turtle's tile is not forbidden,
// holds no item, and is not walled on all sides; forbidden tiles hold
// no items; an item tile has at least one open side.
func postCrossComponentRules(store *csp.Store, v *vars) error {
	for i := range v.tiles {
		tv := v.tiles[i]
		wallVars := [4]int{tv.wall[worldmodel.Top].presentVar, tv.wall[worldmodel.LeftSide].presentVar, tv.wall[worldmodel.RightSide].presentVar, tv.wall[worldmodel.Bottom].presentVar}

		vars := []int{tv.allowed, tv.nameVar, wallVars[0], wallVars[1], wallVars[2], wallVars[3]}
		if err := store.Post(csp.Predicate(vars, func(a []int) bool {
			allowed, name := a[0] == 1, a[1]
			hasItem := name != itemNameAbsent()
			if !allowed && hasItem {
				return false
			}
			if hasItem {
				open := false
				for _, w := range a[2:] {
					if w == 0 {
						open = true
					}
				}
				if !open {
					return false
				}
			}
			return true
		})); err != nil {
			return err
		}

		posVars := append([]int{v.posVar, tv.allowed, tv.nameVar}, wallVars[:]...)
		tileIdx := i
		if err := store.Post(csp.Check(posVars, func(a []int) bool {
			pos, allowed, name := a[0], a[1], a[2]
			if pos != tileIdx {
				return true
			}
			if allowed == 0 {
				return false
			}
			if name != itemNameAbsent() {
				return false
			}
			for _, w := range a[3:] {
				if w == 0 {
					return true
				}
			}
			return false
		})); err != nil {
			return err
		}
	}
	return nil
}
