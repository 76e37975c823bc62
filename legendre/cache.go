package legendre

import (
	"sync"
)

// Cache memoizes bases by parameter set, so that each distinct (Count, N, A, B, Tolerance)
// is orthogonalized once. Bases are immutable and can be shared by all callers.
// Cache is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	bases map[[32]byte]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	basis *Basis
	err   error
}

// NewCache returns an empty [Cache].
func NewCache() *Cache {
	return &Cache{bases: map[[32]byte]*cacheEntry{}}
}

// Get returns the basis for params, building it on the first call.
// Construction errors are cached as well, since the construction is deterministic.
func (c *Cache) Get(params Parameters) (*Basis, error) {

	digest := params.Digest()

	c.mu.Lock()
	entry, ok := c.bases[digest]
	if !ok {
		entry = &cacheEntry{}
		c.bases[digest] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.basis, entry.err = NewBasis(params)
	})

	return entry.basis, entry.err
}

// Len returns the number of parameter sets held by the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bases)
}
