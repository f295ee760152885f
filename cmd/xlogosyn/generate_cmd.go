package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xlogosyn/xlogosyn/internal/assets"
	"github.com/xlogosyn/xlogosyn/internal/pipeline"
	"github.com/xlogosyn/xlogosyn/internal/render"
)

var (
	genTaskID      string
	genDiff        string
	genCodePath    string
	genConsPath    string
	genWorldsPath  string
	genGoalsPath   string
	genSaveDir     string
	genConfigPath  string
	genCacheDir    string
	genWatchCache  bool
	genDebugSVG    bool
	genNCodes      int
	genNGoals      int
	genNInitPos    int
	genNWorldsInit int
	genSampleCap   int
	genMaxEmit     int
	genMaxWorkers  int
	genSeed        int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "run the full pipeline over one reference task_id",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genTaskID, "task_id", "", "reference task_id to mutate from (required)")
	f.StringVar(&genDiff, "diff", "easy", "difficulty: easy, medium, or hard")
	f.StringVar(&genCodePath, "code", "code.json", "reference code_json dictionary path")
	f.StringVar(&genConsPath, "constraints", "constraints.json", "reference constraints dictionary path")
	f.StringVar(&genWorldsPath, "worlds", "worlds.json", "reference world_json dictionary path")
	f.StringVar(&genGoalsPath, "goals", "goals.json", "reference goal dictionary path")
	f.StringVar(&genSaveDir, "save_dir", "out", "directory accepted puzzles are written to")
	f.StringVar(&genConfigPath, "config", "", "optional YAML file of pipeline.Config overrides")
	f.StringVar(&genCacheDir, "cache_dir", "", "optional reachability cache directory")
	f.BoolVar(&genWatchCache, "watch-cache-dir", false, "watch cache_dir for externally pre-warmed cache files")
	f.BoolVar(&genDebugSVG, "debug-svg", false, "dump an SVG alongside every accepted puzzle")
	f.IntVar(&genNCodes, "n_codes", 0, "N_code: distinct (program,constraint) mutations")
	f.IntVar(&genNGoals, "n_goals", 0, "N_goal: distinct goal mutations (hard difficulty only)")
	f.IntVar(&genNInitPos, "n_init_pos", 0, "N_init: distinct symbolic start traces per triple")
	f.IntVar(&genNWorldsInit, "n_worlds_per_init", 0, "worlds requested from F per distinct partial world")
	f.IntVar(&genSampleCap, "n_tasks_per_triple", 0, "cap on the shuffled (program,constraint)xgoal product")
	f.IntVar(&genMaxEmit, "n_max", 0, "overall accepted-puzzle cap")
	f.IntVar(&genMaxWorkers, "max_workers", 0, "bounded concurrency across the triple partition")
	f.Int64Var(&genSeed, "seed", 1, "fixed seed for reproducible shuffling and oracle draws")
	generateCmd.MarkFlagRequired("task_id")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadDriverConfig(genConfigPath)
	if err != nil {
		return err
	}
	applyGenerateFlagOverrides(cmd, &cfg)
	cfg.Log = logger

	dict, err := assets.Load(genCodePath, genConsPath, genWorldsPath, genGoalsPath)
	if err != nil {
		return fmt.Errorf("load reference assets: %w", err)
	}
	ref, ok := dict.Get(genTaskID)
	if !ok {
		return fmt.Errorf("task_id %q not found in reference assets", genTaskID)
	}

	diff := pipeline.Difficulty(genDiff)
	if _, ok := pipeline.DefaultBudgets[diff]; !ok {
		return fmt.Errorf("unknown --diff %q: want easy, medium, or hard", genDiff)
	}

	driver, err := pipeline.NewDriver(cfg)
	if err != nil {
		return fmt.Errorf("build driver: %w", err)
	}

	if genWatchCache && genCacheDir != "" {
		logger.Warn("xlogosyn: --watch-cache-dir is only observed by long-running driver processes; this one-shot run primes the cache directly instead")
	}

	puzzles, err := driver.Run(cmd.Context(), ref, diff)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	for _, pz := range puzzles {
		if err := pz.Save(genSaveDir); err != nil {
			return fmt.Errorf("save puzzle %s: %w", pz.TaskID, err)
		}
		if genDebugSVG {
			svgPath := genSaveDir + "/" + pz.TaskID + ".svg"
			if err := render.SaveToFile(pz.World, svgPath, render.DefaultOptions); err != nil {
				logger.Warn("xlogosyn: svg dump failed", zap.String("task_id", pz.TaskID), zap.Error(err))
			}
		}
	}
	logger.Info("xlogosyn: generate complete", zap.Int("accepted", len(puzzles)), zap.String("save_dir", genSaveDir))
	return nil
}

// applyGenerateFlagOverrides lets explicitly-passed flags win over a
// --config file's values, leaving file-provided or zero fields alone
// otherwise.
func applyGenerateFlagOverrides(cmd *cobra.Command, cfg *pipeline.Config) {
	f := cmd.Flags()
	if f.Changed("n_codes") {
		cfg.NCodes = genNCodes
	}
	if f.Changed("n_goals") {
		cfg.NGoals = genNGoals
	}
	if f.Changed("n_init_pos") {
		cfg.NInitPerTriple = genNInitPos
	}
	if f.Changed("n_worlds_per_init") {
		cfg.NWorldsPerInit = genNWorldsInit
	}
	if f.Changed("n_tasks_per_triple") {
		cfg.SampleCap = genSampleCap
	}
	if f.Changed("n_max") {
		cfg.MaxEmit = genMaxEmit
	}
	if f.Changed("max_workers") {
		cfg.MaxWorkers = genMaxWorkers
	}
	if f.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = genSeed
	}
	if f.Changed("cache_dir") {
		cfg.CacheDir = genCacheDir
	}
}
