// Package cache implements the generic TTL key-value store shared by every
// lookup in this service: flight queries, trajectories, route lookups, and
// elevation results. It distinguishes "absent", "present with a value",
// and "present with an explicit nil" (negative cache), which is what lets
// RouteClient remember "this callsign has no known route" without
// re-querying the upstream provider on every frame.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Outcome classifies the result of Get.
type Outcome int

const (
	// Absent means the key was never set, or its entry has expired.
	Absent Outcome = iota
	// HitValue means the key is present and holds a non-nil value.
	HitValue
	// HitNull means the key is present but was explicitly set to nil —
	// a negative cache entry, distinct from Absent.
	HitNull
)

type entry struct {
	value  any
	expiry time.Time
	isNull bool
}

// Stats is a snapshot of the cache's lifetime counters.
type Stats struct {
	Keys    int     `json:"keys"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Deletes int64   `json:"deletes"`
	HitRate float64 `json:"hitRate"`
}

// Cache is a TTL-keyed in-memory store. Expired entries are evicted
// lazily on Get and periodically swept. The zero value is not usable;
// construct with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// New constructs an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get looks up key, returning the outcome and the stored value (nil for
// Absent and HitNull). An expired entry is treated as Absent and counted
// as a miss, same as a key that was never set.
func (c *Cache) Get(key string) (Outcome, any) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiry) {
		c.misses.Add(1)
		if ok {
			// Lazily evict the expired entry.
			c.mu.Lock()
			if cur, still := c.entries[key]; still && cur.expiry.Equal(e.expiry) {
				delete(c.entries, key)
			}
			c.mu.Unlock()
		}
		return Absent, nil
	}

	c.hits.Add(1)
	if e.isNull {
		return HitNull, nil
	}
	return HitValue, e.value
}

// Has reports whether key is present and unexpired, without affecting
// hit/miss counters.
func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return ok && !time.Now().After(e.expiry)
}

// Set stores value under key with the given TTL. A nil value is a valid,
// distinct negative-cache entry (see HitNull). Concurrent sets on the
// same key race harmlessly — the cache makes no ordering guarantee beyond
// last-writer-wins, which spec §5 treats as acceptable since both values
// are semantically equivalent for this cache.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:  value,
		expiry: time.Now().Add(ttl),
		isNull: value == nil,
	}
	c.mu.Unlock()
	c.sets.Add(1)
}

// Del removes key, if present.
func (c *Cache) Del(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()
	if existed {
		c.deletes.Add(1)
	}
}

// Clear removes every entry. Hit/miss/set/delete counters are untouched —
// they are lifetime totals, not a per-generation snapshot.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Sweep removes every expired entry eagerly. Intended to be called from a
// periodic background goroutine so memory isn't held by keys nobody ever
// looks up again; lazy eviction in Get already bounds staleness for keys
// that are looked up.
func (c *Cache) Sweep() {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// SweepInterval is how often RunSweeper eagerly evicts expired entries.
const SweepInterval = 1 * time.Minute

// RunSweeper blocks, calling Sweep every SweepInterval, until stop is
// closed. Intended to be launched as `go c.RunSweeper(stopCh)` from main's
// bootstrap, alongside the session store's own sweeper.
func (c *Cache) RunSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	keys := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	var hitRate float64
	if hits+misses > 0 {
		hitRate = float64(hits) / float64(hits+misses)
	}

	return Stats{
		Keys:    keys,
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		HitRate: hitRate,
	}
}
