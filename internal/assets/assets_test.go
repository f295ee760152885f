package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJoinsFourFilesByTaskID(t *testing.T) {
	dir := t.TempDir()
	codePath := writeJSON(t, dir, "code.json", map[string]any{
		"t1": map[string]any{"code_json": map[string]any{"run": []any{map[string]any{"type": "fd"}}}},
	})
	consPath := writeJSON(t, dir, "constraints.json", map[string]any{
		"t1": map[string]any{"constraints": map[string]any{"exactly": map[string]int{"fd": 1}}},
	})
	worldsPath := writeJSON(t, dir, "worlds.json", map[string]any{
		"t1": map[string]any{"world_json": map[string]any{
			"rows": 3, "cols": 3,
			"turtle": map[string]any{"y": 1, "x": 1, "direction": 0},
			"tiles":  []any{},
			"items":  []any{},
			"lines":  []any{},
		}},
	})
	goalsPath := writeJSON(t, dir, "goals.json", map[string]any{
		"t1": map[string]any{"goal": []any{
			map[string]any{"name": "find", "specs": []any{[]any{map[string]any{"name": "strawberry", "neg": 0}}}},
		}},
	})

	dict, err := Load(codePath, consPath, worldsPath, goalsPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ref, ok := dict.Get("t1")
	if !ok {
		t.Fatalf("expected task t1 to be present")
	}
	if len(ref.Program) != 1 {
		t.Fatalf("expected a 1-block program, got %d", len(ref.Program))
	}
	if ref.Constraint.Exactly["fd"] != 1 {
		t.Fatalf("expected exactly.fd=1, got %v", ref.Constraint.Exactly)
	}
	if ref.World == nil || ref.World.Rows != 3 {
		t.Fatalf("expected a 3x3 world, got %+v", ref.World)
	}
}

func TestLoadFailsOnMismatchedTaskIDs(t *testing.T) {
	dir := t.TempDir()
	codePath := writeJSON(t, dir, "code.json", map[string]any{
		"t1": map[string]any{"code_json": map[string]any{"run": []any{}}},
	})
	consPath := writeJSON(t, dir, "constraints.json", map[string]any{})
	worldsPath := writeJSON(t, dir, "worlds.json", map[string]any{})
	goalsPath := writeJSON(t, dir, "goals.json", map[string]any{})

	if _, err := Load(codePath, consPath, worldsPath, goalsPath); err == nil {
		t.Fatalf("expected an error for a task_id missing from constraints")
	}
}
