package cache

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher notifies a callback whenever a new reachability cache file
// appears in a Store's directory, so a long-running driver process can
// pick up externally precomputed files without restarting. No code in
// this module starts one: the pipeline driver never creates a Watcher,
// and cmd/xlogosyn generate's --watch-cache-dir flag only logs a warning.
type Watcher struct {
	fsw *fsnotify.Watcher
	log *zap.Logger
}

// NewWatcher opens an fsnotify watch on the Store's directory.
func NewWatcher(s *Store, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(s.dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, log: log}, nil
}

// Run blocks, invoking onNew(path) for every create/write/rename event
// on a ".smt2" cache file, until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context, onNew func(path string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".smt2") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			onNew(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("cache: watcher error", zap.Error(err))
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
