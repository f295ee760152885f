package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xlogosyn/xlogosyn/internal/pipeline"
)

// driverConfigYAML is the optional --config file shape: every field of
// pipeline.Config that makes sense to template across many runs,
// spec.md §6.4's --config flag. Flags passed explicitly on the command
// line still win over the file (see applyGenerateFlagOverrides).
type driverConfigYAML struct {
	NCodes         int     `yaml:"n_codes"`
	NGoals         int     `yaml:"n_goals"`
	NInitPerTriple int     `yaml:"n_init_pos"`
	NWorldsPerInit int     `yaml:"n_worlds_per_init"`
	SampleCap      int     `yaml:"n_tasks_per_triple"`
	MaxEmit        int     `yaml:"n_max"`
	MaxWorkers     int     `yaml:"max_workers"`
	Seed           int64   `yaml:"seed"`
	EnableSymmetry bool    `yaml:"enable_symmetry"`
	Similarity     float64 `yaml:"similarity_variation"`
	UseReference   bool    `yaml:"use_reference_world"`
	CacheDir       string  `yaml:"cache_dir"`
}

// loadDriverConfig reads path (if non-empty) into a pipeline.Config.
// A missing --config flag returns the zero Config, letting
// pipeline.Config.withDefaults fill it in.
func loadDriverConfig(path string) (pipeline.Config, error) {
	var cfg pipeline.Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var y driverConfigYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg = pipeline.Config{
		NCodes:              y.NCodes,
		NGoals:              y.NGoals,
		NInitPerTriple:      y.NInitPerTriple,
		NWorldsPerInit:      y.NWorldsPerInit,
		SampleCap:           y.SampleCap,
		MaxEmit:             y.MaxEmit,
		MaxWorkers:          y.MaxWorkers,
		Seed:                y.Seed,
		EnableSymmetry:      y.EnableSymmetry,
		SimilarityVariation: y.Similarity,
		UseReferenceWorld:   y.UseReference,
		CacheDir:            y.CacheDir,
	}
	return cfg, nil
}
