package job

import "time"

// CachePolicy governs how the executor pipeline reads and writes a job's
// cache entry.
type CachePolicy struct {
	// Key identifies the cache entry.
	Key string
	// TTL is passed to CacheProvider.Write on a successful worker result.
	// A nil TTL means the entry never expires on its own.
	TTL *time.Duration
	// Revalidate selects stale-while-revalidate: true means a cache hit
	// completes the handle immediately but the worker still runs
	// afterward to refresh the entry. false means cache-first: a hit
	// short-circuits the worker entirely.
	Revalidate bool
	// ForceRefresh skips the cache read entirely, as if no cache_key were
	// set for the read step; the cache is still written on success.
	ForceRefresh bool
}

// DataStrategy combines an optional placeholder value with an optional
// cache policy. The placeholder is not used by the EventJob pipeline (see
// package executor); it exists for compatibility with legacy, non-event
// jobs that some adapters may still construct.
type DataStrategy[T any] struct {
	Placeholder *T
	Cache       *CachePolicy
}
