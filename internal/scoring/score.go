package scoring

import (
	"math"
	"sort"
)

// Puzzle bundles the feature inputs needed to score one candidate
// against its reference.
type Puzzle struct {
	World      WorldFeatures
	Program    ProgramFeatures
	Goal       GoalFeatures
	Constraint ConstraintFeatures
	// StandaloneWalls is the count of standalone walls in the
	// synthesised world (spec.md §4.F's "standalone wall": between two
	// allowed, existing tiles, touched by neither the trace nor any
	// shorter-path candidate). Worlds with more of them score lower,
	// since every standalone wall is a constraint the synthesizer added
	// for no visible reason.
	StandaloneWalls int
}

// mse is the mean squared error between two same-length feature
// vectors, scoring.py's per-axis distance primitive.
func mse(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(len(a))
}

func worldVec(f WorldFeatures) []float64 {
	return []float64{f.Rows, f.Cols, f.WallRatio, f.ForbiddenRatio, f.ItemCount, f.DistinctColours, f.DistinctShapes, f.MarkerCount}
}

func programVec(f ProgramFeatures) []float64 {
	return []float64{f.TotalBlocks, f.Depth, f.NumColours}
}

func goalVec(f GoalFeatures) []float64 {
	return []float64{f.NumObjectives, f.NumFind, f.NumForbid, f.NumCollectAll, f.NumConcat, f.NumSum, f.NumDraw, f.TotalLiterals}
}

func constraintVec(f ConstraintFeatures) []float64 {
	return []float64{f.NumExactly, f.NumAtMost, f.StartByLen, f.ExactlyTotal, f.AtMostTotal}
}

// Score computes spec.md §4.H's formula:
//
//	score = (visual_dist - (concept_dist + goal_dist + cons_dist)) * (100 - standalone_walls) / 100
//
// where visual_dist combines the world and program feature distances
// (the two axes a human actually looks at), and concept_dist is folded
// into a single term alongside goal_dist/cons_dist since spec.md names
// it only as part of the subtracted sum, not as a fourth independent
// encoder.
func Score(ref, cand Puzzle) float64 {
	visualDist := mse(worldVec(ref.World), worldVec(cand.World)) + mse(programVec(ref.Program), programVec(cand.Program))
	goalDist := mse(goalVec(ref.Goal), goalVec(cand.Goal))
	consDist := mse(constraintVec(ref.Constraint), constraintVec(cand.Constraint))
	conceptDist := goalDist + consDist

	raw := (visualDist - (conceptDist + goalDist + consDist)) * (100 - float64(cand.StandaloneWalls)) / 100
	if math.IsNaN(raw) {
		return 0
	}
	return raw
}

// Rank sorts puzzles by descending score against a shared reference
// and returns the sorted indices (stable, so puzzles with equal score
// keep their input order).
func Rank(ref Puzzle, candidates []Puzzle) []int {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = Score(ref, c)
	}
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	return idx
}

// Quartile buckets a 0-based rank position among n candidates into
// 1..4 (1 = top quartile), the bucketing spec.md §4.H mentions for
// sampling generated puzzles by score tier.
func Quartile(rank, n int) int {
	if n <= 0 {
		return 1
	}
	q := (rank * 4) / n
	if q > 3 {
		q = 3
	}
	return q + 1
}
