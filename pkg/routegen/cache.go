package routegen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ColinToft/OutAndBack/internal/util/geo"
)

// DefaultMaxVariants is the number of variants kept per key before the cache starts rotating.
const DefaultMaxVariants = 6

// A CacheKey identifies a request by origin and requested distance.
// Keys are compared by value, so callers quantize them with NewCacheKey.
type CacheKey struct {
	Lat        float64
	Lon        float64
	DistanceKm float64
}

// NewCacheKey rounds the origin and distance to precision decimal places.
// A negative precision keeps the exact values.
func NewCacheKey(origin geo.Coordinate, distanceKm float64, precision int) CacheKey {
	if precision < 0 {
		return CacheKey{Lat: origin.Lat, Lon: origin.Lon, DistanceKm: distanceKm}
	}
	return CacheKey{
		Lat:        geo.Round(origin.Lat, precision),
		Lon:        geo.Round(origin.Lon, precision),
		DistanceKm: geo.Round(distanceKm, precision),
	}
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%v,%v,%v", k.Lat, k.Lon, k.DistanceKm)
}

// A Generator produces a fresh route for a cache key.
type Generator func(ctx context.Context) (Route, error)

type cacheEntry struct {
	// Only touched while holding the key's lock
	variants []Route
	cursor   int

	// Mirror of len(variants), guarded by RouteCache.mu
	size int
}

// RouteCache keeps up to maxVariants routes per key. The first maxVariants
// requests for a key each generate a new route; afterwards the stored variants
// are served round robin until Reset.
//
// Requests for the same key are serialized so at most one generation per key
// is in flight, while different keys generate concurrently. The per-key locks
// outlive Reset, so a request arriving after a reset still waits for a
// generation that started before it.
type RouteCache struct {
	maxVariants int

	mu      sync.Mutex
	locks   map[CacheKey]chan struct{}
	entries map[CacheKey]*cacheEntry

	generations atomic.Uint64
	hits        atomic.Uint64
}

// NewRouteCache creates an empty cache. A non-positive maxVariants means DefaultMaxVariants.
func NewRouteCache(maxVariants int) *RouteCache {
	if maxVariants <= 0 {
		maxVariants = DefaultMaxVariants
	}
	return &RouteCache{
		maxVariants: maxVariants,
		locks:       make(map[CacheKey]chan struct{}),
		entries:     make(map[CacheKey]*cacheEntry),
	}
}

func (c *RouteCache) MaxVariants() int {
	return c.maxVariants
}

// lock returns the one-slot semaphore serializing work on key.
func (c *RouteCache) lock(key CacheKey) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	sem, ok := c.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		c.locks[key] = sem
	}
	return sem
}

// entry returns the live entry for key, creating it if needed.
// Callers hold the key's lock.
func (c *RouteCache) entry(key CacheKey) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}

// GetOrGenerate returns a new route from gen while the key holds fewer than
// maxVariants variants, storing it. Once the key is full it returns the variant
// at the rotation cursor and advances the cursor.
//
// A failed generation leaves the entry as it was.
func (c *RouteCache) GetOrGenerate(ctx context.Context, key CacheKey, gen Generator) (Route, error) {
	sem := c.lock(key)

	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return Route{}, fmt.Errorf("waiting for route generation: %w", ctx.Err())
	}
	defer func() { <-sem }()

	e := c.entry(key)

	if len(e.variants) >= c.maxVariants {
		route := e.variants[e.cursor]
		e.cursor = (e.cursor + 1) % c.maxVariants
		c.hits.Add(1)
		return route, nil
	}

	route, err := gen(ctx)
	if err != nil {
		return Route{}, err
	}

	e.variants = append(e.variants, route)
	c.generations.Add(1)

	c.mu.Lock()
	e.size = len(e.variants)
	c.mu.Unlock()

	return route, nil
}

// Reset drops every entry and cursor. Generations still in flight complete
// against the dropped entries and never reach the new storage. The per-key
// locks are kept.
func (c *RouteCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*cacheEntry)
}

// Len returns the number of variants stored for key.
func (c *RouteCache) Len(key CacheKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.size
	}
	return 0
}

// Status summarises the cache contents.
func (c *RouteCache) Status() CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := CacheStatus{
		MaxVariants: c.maxVariants,
		Generations: c.generations.Load(),
		Hits:        c.hits.Load(),
	}
	for _, e := range c.entries {
		if e.size == 0 {
			continue
		}
		s.Keys++
		s.Variants += e.size
		if e.size >= c.maxVariants {
			s.FullKeys++
		}
	}
	return s
}
