// Package parallel provides the bounded-concurrency worker pool the
// pipeline driver (component G) layers errgroup.Group on top of,
// adapted from gokando's internal/parallel.WorkerPool down to the
// piece this domain actually needs: a fixed-size semaphore gating how
// many (program, constraint, goal) units run at once, plus the
// submission counters the driver logs at Info level per spec.md §5's
// ambient-stack guidance. The teacher's dynamic scaling, work-stealing,
// rate limiting and deadlock-detection machinery has no call site here
// (one fixed --max_workers flag, no queue-depth-driven rescaling) and
// is not carried over.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool bounds how many units of work run concurrently. Unlike
// the teacher's version it does not own the goroutines that run
// tasks — the pipeline driver's errgroup goroutines call Acquire
// before doing work and Release when done, so the pool is just a
// semaphore with submission accounting.
type WorkerPool struct {
	sem   chan struct{}
	stats *Stats
}

// NewWorkerPool builds a pool bounding concurrency to maxWorkers. A
// non-positive maxWorkers defaults to the host's CPU count.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		sem:   make(chan struct{}, maxWorkers),
		stats: &Stats{},
	}
}

// Acquire blocks until a worker slot is free or ctx is cancelled.
func (p *WorkerPool) Acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		atomic.AddInt64(&p.stats.Acquired, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a worker slot acquired by Acquire.
func (p *WorkerPool) Release() {
	<-p.sem
}

// MaxWorkers returns the pool's concurrency bound.
func (p *WorkerPool) MaxWorkers() int {
	return cap(p.sem)
}

// Stats returns the pool's running submission counters.
func (p *WorkerPool) Stats() *Stats {
	return p.stats
}

// Stats tracks how many units the driver has dispatched through the
// pool, reported in the driver's per-run Info log line.
type Stats struct {
	Acquired  int64
	Completed int64
	Failed    int64

	mu       sync.Mutex
	lastErr  error
}

// RecordDone records one unit's outcome.
func (s *Stats) RecordDone(err error) {
	if err != nil {
		atomic.AddInt64(&s.Failed, 1)
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return
	}
	atomic.AddInt64(&s.Completed, 1)
}

// LastError returns the most recently recorded failure, if any.
func (s *Stats) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// String renders a one-line summary suitable for an Info log field.
func (s *Stats) String() string {
	return fmt.Sprintf("acquired=%d completed=%d failed=%d",
		atomic.LoadInt64(&s.Acquired), atomic.LoadInt64(&s.Completed), atomic.LoadInt64(&s.Failed))
}
