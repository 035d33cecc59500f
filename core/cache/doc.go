// Package cache defines the CacheProvider contract the executor pipeline
// reads and writes job results through, plus an in-memory reference
// implementation.
//
// Basic usage:
//
//	import "github.com/lploc94/orbit/core/cache"
//
//	c := cache.NewMemoryProvider()
//	c.Write("users", []User{u1, u2}, time.Minute)
//
//	if v, found := c.Read("users"); found {
//		users := v.([]User)
//		_ = users
//	}
//
// # Expiry
//
// A zero ttl passed to Write means the entry never expires on its own.
// Expired entries are treated as misses by Read and are evicted lazily on
// the next Read that observes them past their deadline.
//
// # Predicate deletion
//
// DeleteMatching removes every key for which the supplied predicate
// returns true (e.g. clearing every "users:*" entry after a mutation).
// Neither the executor pipeline nor the dispatcher calls it; it is there
// for application code that invalidates entries itself.
//
// # Thread safety
//
// MemoryProvider is safe for concurrent use from multiple goroutines.
package cache
