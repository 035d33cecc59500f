package dispatcher

import (
	"log/slog"
	"time"

	"github.com/lploc94/orbit/core/cache"
	"github.com/lploc94/orbit/core/connectivity"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/queue"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConnectivity sets the Provider the dispatcher polls to decide
// whether to run a NetworkAction job immediately or queue it.
func WithConnectivity(p connectivity.Provider) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.connectivity = p
		}
	}
}

// WithQueue sets the offline queue manager.
func WithQueue(m *queue.Manager) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.queue = m
		}
	}
}

// WithQueueConfig sets the replay loop's poll interval and max retries.
func WithQueueConfig(cfg queue.Config) Option {
	return func(d *Dispatcher) { d.cfg = cfg }
}

// WithCache sets the cache provider every dispatched job reads and writes
// through.
func WithCache(c cache.Provider) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.cache = c
		}
	}
}

// WithObserver sets the Observer notified of every job's lifecycle.
func WithObserver(o executor.Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observer = o
		}
	}
}

// WithLogger attaches a structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for an in-flight replay.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.shutdownTimeout = timeout
		}
	}
}
