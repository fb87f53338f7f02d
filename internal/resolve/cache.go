package resolve

import (
	"sync"
	"time"

	"github.com/pawprint/labresolve/internal/model"
)

// snapshotCache holds immutable catalog views keyed by scope, each valid
// for a fixed TTL. Readers get either a whole snapshot or nothing; a fill
// or invalidation swaps entries atomically under the lock, so a reader can
// never observe a partially-updated catalog.
type snapshotCache struct {
	now     func() time.Time
	entries map[string]snapshotEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

type snapshotEntry struct {
	view      *model.CatalogView
	fetchedAt time.Time
}

func newSnapshotCache(ttl time.Duration, now func() time.Time) *snapshotCache {
	if now == nil {
		now = time.Now
	}
	return &snapshotCache{
		entries: make(map[string]snapshotEntry),
		ttl:     ttl,
		now:     now,
	}
}

// get returns the cached view for a scope if it is still fresh.
func (c *snapshotCache) get(scope model.Scope) (*model.CatalogView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[scope.Key()]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.view, true
}

// put stores a freshly-built view for a scope.
func (c *snapshotCache) put(scope model.Scope, view *model.CatalogView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[scope.Key()] = snapshotEntry{view: view, fetchedAt: c.now()}
}

// invalidate drops the entry for one scope.
func (c *snapshotCache) invalidate(scope model.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, scope.Key())
}

// invalidateAll drops every entry. Catalog writes invalidate conservatively:
// a global-layer write affects every merged view.
func (c *snapshotCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]snapshotEntry)
}
