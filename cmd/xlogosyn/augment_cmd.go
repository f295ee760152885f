package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/augment"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

var (
	augWorldPath string
	augCodePath  string
	augDiff      string
	augOutDir    string
)

var augmentCmd = &cobra.Command{
	Use:   "augment",
	Short: "apply a rotate/flip transform to a finished puzzle (never run by generate)",
	RunE:  runAugment,
}

func init() {
	f := augmentCmd.Flags()
	f.StringVar(&augWorldPath, "world", "", "world_json file of the puzzle to transform (required)")
	f.StringVar(&augCodePath, "code", "", "code_json file of the puzzle to transform (required)")
	f.StringVar(&augDiff, "diff", "easy", "transform: easy (rotate), medium (flip), or hard (rotate+flip)")
	f.StringVar(&augOutDir, "out", "augmented", "directory the transformed world/code pair is written to")
	augmentCmd.MarkFlagRequired("world")
	augmentCmd.MarkFlagRequired("code")
}

func runAugment(cmd *cobra.Command, args []string) error {
	worldData, err := os.ReadFile(augWorldPath)
	if err != nil {
		return fmt.Errorf("read world: %w", err)
	}
	var w worldmodel.World
	if err := json.Unmarshal(worldData, &w); err != nil {
		return fmt.Errorf("parse world: %w", err)
	}

	codeData, err := os.ReadFile(augCodePath)
	if err != nil {
		return fmt.Errorf("read code: %w", err)
	}
	var prog ast.Program
	if err := json.Unmarshal(codeData, &prog); err != nil {
		return fmt.Errorf("parse code: %w", err)
	}

	outWorld, outProg := augment.Generate(&w, prog, augment.Difficulty(augDiff))

	if err := os.MkdirAll(augOutDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	worldOut, err := outWorld.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal transformed world: %w", err)
	}
	if err := os.WriteFile(augOutDir+"/world.json", worldOut, 0o644); err != nil {
		return fmt.Errorf("write transformed world: %w", err)
	}
	codeOut, err := outProg.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal transformed code: %w", err)
	}
	if err := os.WriteFile(augOutDir+"/code.json", codeOut, 0o644); err != nil {
		return fmt.Errorf("write transformed code: %w", err)
	}

	logger.Info("xlogosyn: augment complete")
	return nil
}
