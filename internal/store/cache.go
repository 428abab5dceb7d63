package store

import (
	"context"
	"sync"
	"time"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// DefaultTTL is how long a loaded snapshot stays fresh before the next read
// triggers a reload.
const DefaultTTL = 10 * time.Minute

type entry struct {
	snap     *models.Snapshot
	loadedAt time.Time
}

// Cache holds loaded snapshots keyed by source identity. Snapshots are
// immutable; a reload builds a new one and swaps the entry under the lock,
// so readers in flight against an old snapshot complete normally. A failed
// reload never evicts a still-cached snapshot mid-load; the stale entry is
// only replaced once a fresh load succeeds.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	loader *Loader
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func NewCache(loader *Loader, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]*entry),
		loader:  loader,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load returns the cached snapshot for a reference, loading a fresh one when
// the entry is missing or expired.
func (c *Cache) Load(ctx context.Context, ref models.SourceRef, rules models.ProfileConfig) (*models.Snapshot, error) {
	key := ref.Key()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.loadedAt) < c.ttl {
		snap := e.snap
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	snap, err := c.loader.Load(ctx, ref, rules)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &entry{snap: snap, loadedAt: c.now()}
	c.mu.Unlock()

	return snap, nil
}

// Invalidate drops one cached snapshot so the next read reloads.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll drops every cached snapshot.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
