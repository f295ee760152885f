package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// refStats summarises a reference world once, so the similarity check
// doesn't recompute it on every leaf.
type refStats struct {
	rows, cols      int
	itemTypes       map[string]bool
	countGT1Types   map[string]bool
	distinctColours int
	distinctShapes  int
	itemTotal       int
	wallRatio       float64
	forbiddenRatio  float64
}

var shapeNames = map[string]bool{"triangle": true, "rectangle": true, "cross": true, "circle": true}

func computeRefStats(ref *worldmodel.World) refStats {
	rs := refStats{rows: ref.Rows, cols: ref.Cols, itemTypes: map[string]bool{}, countGT1Types: map[string]bool{}}
	colours := map[string]bool{}
	shapes := map[string]bool{}
	for _, it := range ref.Items {
		if it == nil {
			continue
		}
		rs.itemTypes[it.Name] = true
		colours[it.Colour] = true
		if shapeNames[it.Name] {
			shapes[it.Name] = true
		}
		if it.Count > 1 {
			rs.countGT1Types[it.Name] = true
		}
		rs.itemTotal += it.Count
	}
	rs.distinctColours = len(colours)
	rs.distinctShapes = len(shapes)

	existing, forbidden := 0, 0
	internal, walled := 0, 0
	for i, t := range ref.Tiles {
		if !t.Exist {
			continue
		}
		existing++
		if !t.Allowed {
			forbidden++
		}
		for _, s := range []worldmodel.Side{worldmodel.RightSide, worldmodel.Bottom} {
			nb, ok := ref.Neighbor(i, s)
			if !ok || !ref.Tiles[nb].Exist {
				continue
			}
			internal++
			if t.Wall.Get(s) {
				walled++
			}
		}
	}
	if existing > 0 {
		rs.forbiddenRatio = float64(forbidden) / float64(existing)
	}
	if internal > 0 {
		rs.wallRatio = float64(walled) / float64(internal)
	}
	return rs
}

// postSimilarity asserts spec.md §4.F's optional "Reference-world
// similarity" rule set. Callers skip this entirely when any objective
// in the goal is `draw`, per spec.md ("All such constraints are
// disabled when an objective is draw").
func postSimilarity(store *csp.Store, v *vars, rs refStats, variation float64) error {
	vars := make([]int, 0, len(v.tiles)*5)
	for _, tv := range v.tiles {
		vars = append(vars, tv.exist)
	}
	for _, tv := range v.tiles {
		vars = append(vars, tv.allowed)
	}
	for _, tv := range v.tiles {
		vars = append(vars, tv.nameVar)
	}
	for _, tv := range v.tiles {
		vars = append(vars, tv.colourVar)
	}
	for _, tv := range v.tiles {
		vars = append(vars, tv.countVar)
	}
	for _, tv := range v.tiles {
		for _, s := range []worldmodel.Side{worldmodel.RightSide, worldmodel.Bottom} {
			vars = append(vars, tv.wall[s].presentVar)
		}
	}
	g := v.grid
	tolerance := 1
	if d := (g.Rows - rs.rows) + (g.Cols - rs.cols); d > 0 {
		tolerance += d
	}

	return store.Post(csp.Check(vars, func(a []int) bool {
		n := len(v.tiles)
		colours := map[string]bool{}
		shapes := map[string]bool{}
		itemTotal := 0
		countGroups := map[string][]int{}
		for i := 0; i < n; i++ {
			name := a[n*2+i]
			colour := a[n*2+n+i]
			count := a[n*2+2*n+i]
			if name == itemNameAbsent() {
				continue
			}
			nm := itemNames[name]
			if !rs.itemTypes[nm] {
				return false
			}
			if count > 1 && !rs.countGT1Types[nm] {
				return false
			}
			colours[itemColours[colour]] = true
			if shapeNames[nm] {
				shapes[nm] = true
			}
			itemTotal += count
			countGroups[itemColours[colour]] = append(countGroups[itemColours[colour]], count)
		}
		if rs.distinctColours >= 4 && len(shapes) > 1 {
			return false
		}
		if rs.distinctShapes >= 3 {
			if len(colours) != 3 {
				return false
			}
			if !nearEqualCounts(countGroups) {
				return false
			}
		}
		if diff := itemTotal - rs.itemTotal; diff > tolerance || diff < -tolerance {
			return false
		}

		existing, forbidden, internal, walled := 0, 0, 0, 0
		for i := 0; i < n; i++ {
			exist := a[i] == 1
			allowed := a[n+i] == 1
			if !exist {
				continue
			}
			existing++
			if !allowed {
				forbidden++
			}
		}
		wallBase := n * 5
		idx := 0
		for i := 0; i < n; i++ {
			for _, s := range []worldmodel.Side{worldmodel.RightSide, worldmodel.Bottom} {
				val := a[wallBase+idx]
				idx++
				if _, ok := g.Neighbor(i, s); !ok {
					continue
				}
				internal++
				if val == 1 {
					walled++
				}
			}
		}
		wallRatio := 0.0
		if internal > 0 {
			wallRatio = float64(walled) / float64(internal)
		}
		forbiddenRatio := 0.0
		if existing > 0 {
			forbiddenRatio = float64(forbidden) / float64(existing)
		}
		if abs(wallRatio-rs.wallRatio) > variation {
			return false
		}
		if abs(forbiddenRatio-rs.forbiddenRatio) > variation {
			return false
		}
		return true
	}))
}

func nearEqualCounts(groups map[string][]int) bool {
	min, max := -1, -1
	for _, counts := range groups {
		n := len(counts)
		if min == -1 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if min == -1 {
		return true
	}
	return max-min <= 1
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
