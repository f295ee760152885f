package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xlogosyn/xlogosyn/internal/assets"
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/cache"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/goalmutator"
	"github.com/xlogosyn/xlogosyn/internal/mutator"
	"github.com/xlogosyn/xlogosyn/internal/parallel"
	"github.com/xlogosyn/xlogosyn/internal/symbolic"
	"github.com/xlogosyn/xlogosyn/internal/verify"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldsynth"
)

// symbolicTryCapMultiplier mirrors internal/mutator's and
// internal/goalmutator's enumeration-cap convention: bound how many
// oracle draws the driver tries per triple before giving up on
// reaching NInitPerTriple distinct partial worlds.
const symbolicTryCapMultiplier = 8

// Driver runs component G over one reference puzzle.
type Driver struct {
	cfg   Config
	pool  *parallel.WorkerPool
	cache *cache.Store
	log   *zap.Logger
}

// NewDriver builds a Driver from cfg, opening the optional disk
// reachability cache if cfg.CacheDir is set.
func NewDriver(cfg Config) (*Driver, error) {
	cfg = cfg.withDefaults()
	store, err := openCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open cache: %w", err)
	}
	return &Driver{
		cfg:   cfg,
		pool:  parallel.NewWorkerPool(cfg.MaxWorkers),
		cache: store,
		log:   cfg.Log,
	}, nil
}

// Run executes the full D -> C -> E -> F -> I pipeline over ref at the
// given difficulty, returning every accepted Puzzle (up to
// Config.MaxEmit).
func (d *Driver) Run(ctx context.Context, ref *assets.Reference, diff Difficulty) ([]Puzzle, error) {
	budget, ok := DefaultBudgets[diff]
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown difficulty %q", diff)
	}

	pairs, err := mutator.New().Mutate(ctx, ref.Program, ref.Constraint, budget.Code, d.cfg.NCodes)
	if err != nil {
		return nil, fmt.Errorf("pipeline: component D: %w", err)
	}
	if len(pairs) == 0 {
		pairs = []mutator.MutationResult{{Program: ref.Program, Constraint: ref.Constraint}}
	}

	goals, err := d.mutateGoals(ctx, ref.Goal, budget)
	if err != nil {
		return nil, fmt.Errorf("pipeline: component E: %w", err)
	}

	triples := buildTriples(pairs, goals, d.cfg.Seed, d.cfg.SampleCap)
	d.log.Info("pipeline: dispatching triples",
		zap.Int("pairs", len(pairs)), zap.Int("goals", len(goals)), zap.Int("triples", len(triples)))

	gc := newGridCache(d.cache)

	// perTriple holds each triple's puzzles at its own index, written by
	// exactly one goroutine each; no two goroutines ever touch the same
	// slot, so this needs no mutex. Acceptance is decided afterward, in
	// triple order, so the final sequence depends only on Seed and never
	// on which goroutine happens to finish first (spec.md §8 law 1).
	perTriple := make([][]Puzzle, len(triples))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, tr := range triples {
		i, tr := i, tr
		eg.Go(func() error {
			if err := d.pool.Acquire(egCtx); err != nil {
				return err
			}
			defer d.pool.Release()

			puzzles, err := d.processTriple(egCtx, ref, tr, i, gc)
			d.pool.Stats().RecordDone(err)
			if err != nil {
				d.log.Warn("pipeline: triple failed", zap.Int("triple", i), zap.Error(err))
				return nil
			}
			perTriple[i] = puzzles
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var accepted []Puzzle
	for _, puzzles := range perTriple {
		for _, pz := range puzzles {
			if len(accepted) >= d.cfg.MaxEmit {
				break
			}
			accepted = append(accepted, pz)
		}
		if len(accepted) >= d.cfg.MaxEmit {
			break
		}
	}
	d.log.Info("pipeline: run complete", zap.String("stats", d.pool.Stats().String()), zap.Int("accepted", len(accepted)))
	return accepted, nil
}

// mutateGoals applies the easy/medium special case of spec.md §4.G:
// only the reference goal is used, E is never invoked.
func (d *Driver) mutateGoals(ctx context.Context, ref *goalmodel.Goal, budget Budget) ([]*goalmodel.Goal, error) {
	if !budget.MutateGoal {
		return []*goalmodel.Goal{ref}, nil
	}
	goals, err := goalmutator.New().Mutate(ctx, ref, budget.Goal, d.cfg.NGoals)
	if err != nil {
		return nil, err
	}
	return append([]*goalmodel.Goal{ref}, goals...), nil
}

// processTriple runs C up to (NInitPerTriple+1)*symbolicTryCapMultiplier
// times to find up to NInitPerTriple distinct non-rejected partial
// worlds, then F and I over each, returning every puzzle I accepted.
func (d *Driver) processTriple(ctx context.Context, ref *assets.Reference, tr triple, idx int, gc *gridCache) ([]Puzzle, error) {
	exec := symbolic.New()
	verifier := verify.New(d.log)
	synth := worldsynth.New()

	penColours := tr.Program.PenColours()

	type found struct {
		pw   *worldmodel.PartialWorld
		rows int
		cols int
	}
	var distinct []found
	seen := map[string]bool{}
	tryCap := d.cfg.NInitPerTriple*symbolicTryCapMultiplier + symbolicTryCapMultiplier

	for attempt := 0; attempt < tryCap && len(distinct) < d.cfg.NInitPerTriple; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		seed := d.cfg.Seed + int64(idx)*1_000_003 + int64(attempt)
		oracle := symbolic.NewRandomOracle(seed)
		res := exec.Run(tr.Program, oracle)

		if !edgeColoursCoverPenColours(penColours, res.EdgeColours) {
			continue
		}
		key := resultKey(res)
		if seen[key] {
			continue
		}
		seen[key] = true

		rows, cols, origin := res.BoundingBox(d.cfg.EnableSymmetry)
		if err := gc.ensure(rows, cols); err != nil {
			d.log.Warn("pipeline: grid cache priming failed", zap.Error(err))
		}
		distinct = append(distinct, found{pw: res.ToPartialWorld(rows, cols, origin), rows: rows, cols: cols})
	}

	var out []Puzzle
	opts := worldsynth.Options{SimilarityVariation: d.cfg.SimilarityVariation, EnableSymmetry: d.cfg.EnableSymmetry}
	if d.cfg.UseReferenceWorld {
		opts.Reference = ref.World
	}

	for initIdx, f := range distinct {
		worlds, err := synth.Synthesize(ctx, f.pw, tr.Program, tr.Constraint, tr.Goal, opts, d.cfg.NWorldsPerInit)
		if err != nil {
			return out, fmt.Errorf("component F: %w", err)
		}
		for worldIdx, w := range worlds {
			vr, err := verifier.Check(w, tr.Program, tr.Constraint, tr.Goal)
			if err != nil {
				return out, fmt.Errorf("component I: %w", err)
			}
			if !vr.OK {
				continue
			}
			out = append(out, Puzzle{
				TaskID:     newTaskID(ref.TaskID, d.cfg.Seed, idx, initIdx, worldIdx),
				World:      w,
				Program:    tr.Program,
				Constraint: tr.Constraint,
				Goal:       tr.Goal,
			})
		}
	}
	return out, nil
}

// edgeColoursCoverPenColours implements spec.md §4.G step 4a's
// rejection rule: a run is unusable if prog ever sets a pen colour
// that never appears among the trace's drawn edge colours.
func edgeColoursCoverPenColours(pen map[ast.Colour]bool, edges []string) bool {
	present := map[string]bool{}
	for _, e := range edges {
		present[e] = true
	}
	for c := range pen {
		if c == ast.ColourNull {
			continue
		}
		if !present[c.String()] {
			return false
		}
	}
	return true
}

// resultKey identifies a symbolic run by its trace and starting
// direction, used to dedupe distinct-start attempts.
func resultKey(res *symbolic.Result) string {
	key := res.StartDir.String()
	for _, p := range res.Trace {
		key += fmt.Sprintf("|%d,%d", p.Y, p.X)
	}
	return key
}
