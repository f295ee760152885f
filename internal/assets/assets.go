// Package assets loads the reference-asset dictionaries of spec.md
// §6.1: four JSON documents keyed by task_id (code, constraints,
// worlds, goals), read once at process startup per spec.md §5's
// shared-resource policy ("reference assets are read-once at
// startup"). Malformed assets are a fatal, load-time error per
// spec.md §7's error-handling taxonomy.
package assets

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

type codeEntry struct {
	CodeJSON ast.Program `json:"code_json"`
}

type constraintEntry struct {
	Constraints ast.CodeConstraint `json:"constraints"`
}

type worldEntry struct {
	WorldJSON *worldmodel.World `json:"world_json"`
}

type goalEntry struct {
	Goal json.RawMessage `json:"goal"`
}

// Reference is one task_id's bundled reference puzzle, the unit the
// pipeline driver (component G) operates on.
type Reference struct {
	TaskID     string
	Program    ast.Program
	Constraint ast.CodeConstraint
	World      *worldmodel.World
	Goal       *goalmodel.Goal
}

// Dictionary holds every reference asset keyed by task_id, loaded from
// the four JSON files spec.md §6.1 names.
type Dictionary struct {
	byTaskID map[string]*Reference
}

// Load reads the code/constraints/worlds/goals JSON files and joins
// them by task_id into one Dictionary. A task_id of the code file that
// is missing from any of the other three files makes Load fail with an
// error naming it, since a reference puzzle needs all four parts.
func Load(codePath, constraintsPath, worldsPath, goalsPath string) (*Dictionary, error) {
	var codes map[string]codeEntry
	if err := loadJSON(codePath, &codes); err != nil {
		return nil, fmt.Errorf("assets: load code: %w", err)
	}
	var constraints map[string]constraintEntry
	if err := loadJSON(constraintsPath, &constraints); err != nil {
		return nil, fmt.Errorf("assets: load constraints: %w", err)
	}
	var worlds map[string]worldEntry
	if err := loadJSON(worldsPath, &worlds); err != nil {
		return nil, fmt.Errorf("assets: load worlds: %w", err)
	}
	var goals map[string]goalEntry
	if err := loadJSON(goalsPath, &goals); err != nil {
		return nil, fmt.Errorf("assets: load goals: %w", err)
	}

	d := &Dictionary{byTaskID: map[string]*Reference{}}
	for id, c := range codes {
		cons, ok := constraints[id]
		if !ok {
			return nil, fmt.Errorf("assets: task %q missing from constraints file", id)
		}
		w, ok := worlds[id]
		if !ok {
			return nil, fmt.Errorf("assets: task %q missing from worlds file", id)
		}
		g, ok := goals[id]
		if !ok {
			return nil, fmt.Errorf("assets: task %q missing from goals file", id)
		}
		goal, err := goalmodel.UnmarshalGoalJSON(g.Goal)
		if err != nil {
			return nil, fmt.Errorf("assets: task %q goal: %w", id, err)
		}
		d.byTaskID[id] = &Reference{
			TaskID:     id,
			Program:    c.CodeJSON,
			Constraint: cons.Constraints,
			World:      w.WorldJSON,
			Goal:       goal,
		}
	}
	return d, nil
}

// Get returns the reference for taskID, or false if absent.
func (d *Dictionary) Get(taskID string) (*Reference, bool) {
	r, ok := d.byTaskID[taskID]
	return r, ok
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in %s: %w", path, err)
	}
	return nil
}
