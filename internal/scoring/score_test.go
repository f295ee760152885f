package scoring

import "testing"

func TestScoreIdenticalPuzzlesIsZeroDistanceComponents(t *testing.T) {
	p := Puzzle{
		World:      WorldFeatures{Rows: 3, Cols: 3, ItemCount: 1},
		Program:    ProgramFeatures{TotalBlocks: 2},
		Goal:       GoalFeatures{NumObjectives: 1, NumFind: 1},
		Constraint: ConstraintFeatures{NumExactly: 2, ExactlyTotal: 6},
	}
	got := Score(p, p)
	if got != 0 {
		t.Fatalf("expected zero score for identical puzzles, got %v", got)
	}
}

func TestScorePenalisesStandaloneWalls(t *testing.T) {
	ref := Puzzle{World: WorldFeatures{Rows: 3, Cols: 3}}
	a := Puzzle{World: WorldFeatures{Rows: 3, Cols: 4}, StandaloneWalls: 0}
	b := a
	b.StandaloneWalls = 50
	if Score(ref, b) >= Score(ref, a) {
		t.Fatalf("expected more standalone walls to not increase score: a=%v b=%v", Score(ref, a), Score(ref, b))
	}
}

func TestRankOrdersDescending(t *testing.T) {
	ref := Puzzle{World: WorldFeatures{Rows: 3, Cols: 3}}
	cands := []Puzzle{
		{World: WorldFeatures{Rows: 10, Cols: 10}},
		{World: WorldFeatures{Rows: 3, Cols: 3}},
		{World: WorldFeatures{Rows: 5, Cols: 5}},
	}
	order := Rank(ref, cands)
	if len(order) != 3 {
		t.Fatalf("expected 3 ranked indices, got %d", len(order))
	}
	scores := make([]float64, 3)
	for i, c := range cands {
		scores[i] = Score(ref, c)
	}
	for i := 1; i < len(order); i++ {
		if scores[order[i]] > scores[order[i-1]] {
			t.Fatalf("ranking not descending: %v", order)
		}
	}
}

func TestQuartileBounds(t *testing.T) {
	if got := Quartile(0, 8); got != 1 {
		t.Fatalf("expected top quartile 1, got %d", got)
	}
	if got := Quartile(7, 8); got != 4 {
		t.Fatalf("expected bottom quartile 4, got %d", got)
	}
}
