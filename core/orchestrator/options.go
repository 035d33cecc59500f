package orchestrator

import (
	"log/slog"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/cache"
	"github.com/lploc94/orbit/core/dispatcher"
	"github.com/lploc94/orbit/core/executor"
)

// Option configures an Orchestrator[S].
type Option[S any] func(*Orchestrator[S])

// WithDispatcher supplies a pre-configured Dispatcher instead of the
// default one New would otherwise build from WithCache/WithObserver.
func WithDispatcher[S any](d *dispatcher.Dispatcher) Option[S] {
	return func(o *Orchestrator[S]) {
		if d != nil {
			o.Dispatcher = d
		}
	}
}

// WithCache sets the cache provider used by the default Dispatcher New
// builds. Has no effect if WithDispatcher is also given.
func WithCache[S any](c cache.Provider) Option[S] {
	return func(o *Orchestrator[S]) {
		if c != nil {
			o.Cache = c
		}
	}
}

// WithObserver sets the Observer used by the default Dispatcher New
// builds. Has no effect if WithDispatcher is also given.
func WithObserver[S any](obs executor.Observer) Option[S] {
	return func(o *Orchestrator[S]) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLogger attaches a structured logger used for circuit breaker trips
// and on_event panic recovery.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(o *Orchestrator[S]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBreakerLimits overrides the default sliding-window rate limit
// applied per event type.
func WithBreakerLimits[S any](limit int, window time.Duration) Option[S] {
	return func(o *Orchestrator[S]) {
		if limit > 0 && window > 0 {
			o.breaker = newBreaker(limit, window)
		}
	}
}

// WithRemovalGrace overrides how long a job id stays in the active set
// after its handle resolves.
func WithRemovalGrace[S any](d time.Duration) Option[S] {
	return func(o *Orchestrator[S]) {
		if d >= 0 {
			o.removalGrace = d
		}
	}
}

// WithOnEvent installs the override point the runtime calls for every
// event delivered to the bus the orchestrator subscribes to, after the
// circuit breaker and public-bus forwarding. Typically fn inspects the
// event, derives a new state from o.State(), and calls o.Emit. A panic
// inside fn is recovered and logged; it does not crash the orchestrator
// or prevent further events.
func WithOnEvent[S any](fn func(o *Orchestrator[S], event bus.Event)) Option[S] {
	return func(o *Orchestrator[S]) {
		o.onEvent = fn
	}
}
