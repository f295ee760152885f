// Package pipeline implements the driver (component G of spec.md §4.G)
// that wires components D, C, E, F and I together: mutate the
// reference program/constraint and goal, pair every mutation with
// every other, symbolically trace each candidate program to a sized
// partial world, synthesize concrete worlds over it, and verify every
// candidate before emission. Parallelism fans out across the
// (program, constraint, goal) partition via golang.org/x/sync/errgroup
// layered on internal/parallel's bounded WorkerPool, grounded the same
// way gokando's internal/parallel is used by its own relation solver.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/xlogosyn/xlogosyn/internal/cache"
	"github.com/xlogosyn/xlogosyn/internal/goalmutator"
	"github.com/xlogosyn/xlogosyn/internal/mutator"
)

// Difficulty selects the mutation budgets for components D and E, and
// whether E mutates the goal at all.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Budget bundles the component D and E difficulty knobs one Difficulty
// level maps to. spec.md §4.G names the three levels but leaves their
// exact numeric budgets unspecified beyond "for difficulty easy/medium
// [the goal mutator] returns only the reference goal" — the concrete
// per-level numbers below are this driver's Open Question decision,
// recorded in DESIGN.md.
type Budget struct {
	Code mutator.Difficulty
	Goal goalmutator.Difficulty
	// MutateGoal is false for easy/medium: E is skipped entirely and
	// the reference goal is used as-is, per spec.md §4.G.
	MutateGoal bool
}

// DefaultBudgets maps each Difficulty to its component D/E budgets.
var DefaultBudgets = map[Difficulty]Budget{
	Easy: {
		Code: mutator.Difficulty{
			MaxCodeInc: 1, MaxCodeDec: 1,
			MaxRepBodyInc: 1, MaxRepBodyDec: 1,
			MaxRepTimesInc: 1, MaxRepTimesDec: 1,
			MaxConsInc: 1, MaxConsDec: 1,
		},
		MutateGoal: false,
	},
	Medium: {
		Code: mutator.Difficulty{
			MaxCodeInc: 2, MaxCodeDec: 2,
			MaxRepBodyInc: 2, MaxRepBodyDec: 1,
			MaxRepTimesInc: 2, MaxRepTimesDec: 2,
			MaxConsInc: 2, MaxConsDec: 1,
		},
		MutateGoal: false,
	},
	Hard: {
		Code: mutator.Difficulty{
			MaxCodeInc: 3, MaxCodeDec: 2,
			MaxRepBodyInc: 2, MaxRepBodyDec: 2,
			MaxRepTimesInc: 3, MaxRepTimesDec: 2,
			MaxConsInc: 3, MaxConsDec: 2,
		},
		Goal:       goalmutator.Difficulty{MaxCountInc: 2, MaxCountDec: 2},
		MutateGoal: true,
	},
}

// Config is the driver's tunable surface, one field per cmd/xlogosyn
// flag of spec.md §6.4.
type Config struct {
	NCodes         int // N_code: distinct (program, constraint) mutations from D
	NGoals         int // N_goal: distinct goal mutations from E (hard only)
	NInitPerTriple int // N_init: distinct symbolic start traces per triple
	NWorldsPerInit int // worlds F is asked for per distinct partial world
	SampleCap      int // cap on the shuffled (program,constraint)xgoal product
	MaxEmit        int // N_max: overall accepted-puzzle cap

	MaxWorkers int
	Seed       int64

	EnableSymmetry      bool
	SimilarityVariation float64
	UseReferenceWorld   bool // feed ref.World into worldsynth.Options.Reference

	CacheDir string // optional; empty disables the disk reachability cache

	Log *zap.Logger
}

// withDefaults fills zero fields with sane minimums so a Config built
// with only the fields a caller cares about still runs.
func (c Config) withDefaults() Config {
	if c.NCodes <= 0 {
		c.NCodes = 8
	}
	if c.NGoals <= 0 {
		c.NGoals = 4
	}
	if c.NInitPerTriple <= 0 {
		c.NInitPerTriple = 2
	}
	if c.NWorldsPerInit <= 0 {
		c.NWorldsPerInit = 2
	}
	if c.SampleCap <= 0 {
		c.SampleCap = c.NCodes * c.NGoals
	}
	if c.MaxEmit <= 0 {
		c.MaxEmit = c.SampleCap * c.NInitPerTriple * c.NWorldsPerInit
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c
}

// openCache opens the optional disk-backed reachability cache. A
// Config with no CacheDir runs with no disk cache at all, per spec.md
// §7's "cache I/O failure falls back to in-memory computation" — here
// applied at configuration time rather than after a failed read.
func openCache(cfg Config) (*cache.Store, error) {
	if cfg.CacheDir == "" {
		return nil, nil
	}
	return cache.New(cfg.CacheDir, cfg.Log)
}
