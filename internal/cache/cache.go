// Package cache implements the reachability cache of spec.md §6.3/§5:
// a disk cache of reachability-formula payloads keyed by (rows, cols,
// k), written with create-then-rename so concurrent readers never see
// a torn file, plus an optional filesystem watcher (grounded on
// theRebelliousNerd-codenerd's fsnotify-based mangle_watcher.go) that
// notifies a long-running driver process when a batch pre-warming job
// drops new cache files in externally.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is a lock-free-read, create-then-rename-write disk cache
// rooted at Dir. Zero value is invalid; use New.
type Store struct {
	dir string
	log *zap.Logger
}

// New constructs a Store rooted at dir, creating it if necessary.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create cache dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// FileName is spec.md §6.3's cache-file naming convention.
func FileName(rows, cols, k int) string {
	return fmt.Sprintf("reachability_%dx%d_%d.smt2", rows, cols, k)
}

// Get reads the cached payload for (rows, cols, k). A missing file is
// reported as (nil, false, nil), never an error — spec.md §7 requires
// cache I/O failure to fall back to in-memory computation rather than
// fail the unit of work.
func (s *Store) Get(rows, cols, k int) ([]byte, bool, error) {
	path := filepath.Join(s.dir, FileName(rows, cols, k))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		s.log.Warn("cache: read failed, falling back to in-memory computation", zap.String("path", path), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

// Put writes payload for (rows, cols, k) via create-then-rename: the
// data lands in a temp file in the same directory first, then an
// atomic rename publishes it, so a reader never observes a partially
// written cache file (spec.md §5: "writers use create-then-rename to
// avoid torn files").
func (s *Store) Put(rows, cols, k int, payload []byte) error {
	final := filepath.Join(s.dir, FileName(rows, cols, k))
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cache: rename temp file: %w", err)
	}
	return nil
}
