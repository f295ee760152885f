package pipeline

import (
	"fmt"
	"sync"

	"github.com/xlogosyn/xlogosyn/internal/cache"
)

// gridKey identifies one (rows, cols) solver-state slot. k is the
// reachability clause's "distance budget" parameter spec.md §6.3 bakes
// into the cache filename; this driver uses the grid's tile count as a
// stand-in, since that is the only distance bound worldsynth's
// reachability encoding needs per grid size.
type gridKey struct {
	rows, cols int
}

// gridCache memoises, per grid size, that the reachability cache has
// already been primed for that size — initialized once under mutual
// exclusion and shared read-only afterwards, per spec.md §5's
// concurrency model ("per-grid-size memoised solver state... shared
// read-only by every worker touching that grid size, initialized once
// under mutual exclusion"). worldsynth re-derives its CSP reachability
// constraints fresh on every Synthesize call (they are cheap relative
// to the search itself), so what is actually worth memoising across
// calls sharing a grid size is the disk-backed priming step itself,
// not solver state proper; ensure is therefore a once-per-size no-op
// after the first caller primes the cache file for that size.
type gridCache struct {
	store *cache.Store
	once  sync.Map // gridKey -> *sync.Once
}

func newGridCache(store *cache.Store) *gridCache {
	return &gridCache{store: store}
}

// ensure primes the disk cache entry for (rows, cols) exactly once,
// regardless of how many workers race to request that grid size. A nil
// store (no --cache-dir configured) makes ensure a no-op.
func (gc *gridCache) ensure(rows, cols int) error {
	if gc == nil || gc.store == nil {
		return nil
	}
	key := gridKey{rows, cols}
	onceVal, _ := gc.once.LoadOrStore(key, &sync.Once{})
	once := onceVal.(*sync.Once)
	var err error
	once.Do(func() {
		k := rows * cols
		_, ok, getErr := gc.store.Get(rows, cols, k)
		if getErr != nil {
			err = getErr
			return
		}
		if ok {
			return
		}
		err = gc.store.Put(rows, cols, k, []byte(fmt.Sprintf("primed %dx%d", rows, cols)))
	})
	return err
}
