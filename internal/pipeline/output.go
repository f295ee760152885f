package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Puzzle is one accepted candidate: a concrete world, the program that
// draws it, the code-shape constraint it satisfies, and the goal it is
// solvable against.
type Puzzle struct {
	TaskID     string
	World      *worldmodel.World
	Program    ast.Program
	Constraint ast.CodeConstraint
	Goal       *goalmodel.Goal
}

// MarshalJSON renders a Puzzle to spec.md §6.2's output format: a
// task_json that extends the World wire shape with id/description/goal,
// alongside the program and constraint under their own keys.
func (p Puzzle) MarshalJSON() ([]byte, error) {
	worldBytes, err := p.World.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("pipeline: marshal world: %w", err)
	}
	var task map[string]any
	if err := json.Unmarshal(worldBytes, &task); err != nil {
		return nil, fmt.Errorf("pipeline: re-decode world: %w", err)
	}
	task["id"] = p.TaskID
	task["description"] = ""

	goalBytes, err := goalmodel.MarshalGoalJSON(p.Goal)
	if err != nil {
		return nil, fmt.Errorf("pipeline: marshal goal: %w", err)
	}
	var goalRaw any
	if err := json.Unmarshal(goalBytes, &goalRaw); err != nil {
		return nil, fmt.Errorf("pipeline: re-decode goal: %w", err)
	}
	task["goal"] = goalRaw

	consBytes, err := json.Marshal(p.Constraint)
	if err != nil {
		return nil, fmt.Errorf("pipeline: marshal constraint: %w", err)
	}

	out := struct {
		Task        map[string]any  `json:"task_json"`
		Code        ast.Program     `json:"code_json"`
		Constraints json.RawMessage `json:"constraints"`
	}{Task: task, Code: p.Program, Constraints: consBytes}
	return json.Marshal(out)
}

// taskIDNamespace anchors the deterministic (seed, indices) -> uuid
// derivation below to a fixed namespace, the way uuid.NewSHA1's own
// doc comment recommends for a private, reproducible UUID space.
var taskIDNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("xlogosyn.pipeline.task_id"))

// newTaskID derives a task_id from refTaskID with a short uuid suffix
// computed deterministically from seed and the triple/init/world
// indices that produced this puzzle, so every mutation spawned from the
// same reference is distinguishable without a global counter shared
// across workers, and two runs with the same seed emit identical
// task_ids regardless of goroutine scheduling (spec.md §8 law 1).
func newTaskID(refTaskID string, seed int64, tripleIdx, initIdx, worldIdx int) string {
	data := fmt.Sprintf("%s|%d|%d|%d|%d", refTaskID, seed, tripleIdx, initIdx, worldIdx)
	id := uuid.NewSHA1(taskIDNamespace, []byte(data))
	return fmt.Sprintf("%s-%s", refTaskID, id.String()[:8])
}

// Save writes p to <dir>/<task_id>.json in the §6.2 wire format.
func (p Puzzle) Save(dir string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, p.TaskID+".json")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("pipeline: create save dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
