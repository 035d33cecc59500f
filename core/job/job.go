package job

import (
	"time"

	"github.com/lploc94/orbit/core/bus"
)

// Job is a typed work request. R is the worker's result type; E is the
// domain event type emitted for that result. A Job is constructed once,
// dispatched once (I2: replay reconstructs a fresh Job rather than
// re-dispatching), and its id is unique per run (I1).
type Job[R any, E bus.Event] struct {
	// ID uniquely identifies this job; see NewID.
	ID string

	// Timeout, if set, bounds how long the worker may run before the
	// pipeline synthesizes a Timeout error.
	Timeout *time.Duration

	// Cancel is the cancellation token observed by the pipeline. A Job
	// without one cannot be cancelled mid-flight.
	Cancel *CancellationToken

	// Retry configures the pipeline's retry behavior. Nil means no
	// retries: the worker runs exactly once.
	Retry *RetryPolicy

	// Metadata is caller-defined context carried alongside the job; the
	// runtime never inspects it.
	Metadata map[string]any

	// Bus is the delivery target for every event this job's execution
	// produces (I3). The orchestrator attaches its own bus here before
	// dispatch; a nil Bus falls back to bus.Global() in the pipeline.
	Bus *bus.Bus

	// Strategy optionally carries a placeholder value and/or a cache
	// policy for this dispatch.
	Strategy *DataStrategy[R]

	// MakeEvent constructs the domain event delivered for a given result
	// and source. It must be non-nil.
	MakeEvent func(result R, source DataSource) E

	// InverseEvent, if set, constructs a rollback event for a failed
	// offline replay, so callers can undo optimistic UI state. Nothing in
	// the runtime calls it: the dispatcher's poison-pill path emits only a
	// NetworkSyncFailureEvent.
	InverseEvent func(err error) E
}

// EffectiveBus returns job.Bus, or the global bus if none was attached.
func (j *Job[R, E]) EffectiveBus() *bus.Bus {
	if j.Bus != nil {
		return j.Bus
	}
	return bus.Global()
}

// CachePolicy returns the job's cache policy, or nil if none is configured.
func (j *Job[R, E]) CachePolicy() *CachePolicy {
	if j.Strategy == nil {
		return nil
	}
	return j.Strategy.Cache
}
