package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/cache"
	"github.com/lploc94/orbit/core/connectivity"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/job"
	"github.com/lploc94/orbit/core/queue"
)

// DefaultShutdownTimeout bounds how long Stop waits for an in-flight
// replay to finish before giving up.
const DefaultShutdownTimeout = 30 * time.Second

// replayFunc reconstructs and re-executes one queued NetworkAction job. It
// is the type-erased half of RegisterNetworkJob: the closure it wraps
// still knows the job's concrete R and E, but the Dispatcher's factory
// table only ever sees this signature.
type replayFunc func(ctx context.Context, payload []byte) error

// Dispatcher routes a Job to its worker immediately when connectivity is
// up, or to the offline queue for later replay when it is down. It owns
// the one background loop that drains the queue FIFO once connectivity
// returns, quarantining any entry that exhausts its retries rather than
// ever retrying out of order.
type Dispatcher struct {
	mu        sync.RWMutex
	factories map[string]replayFunc

	connectivity connectivity.Provider
	queue        *queue.Manager
	cache        cache.Provider
	observer     executor.Observer
	cfg          queue.Config
	logger       *slog.Logger

	shutdownTimeout time.Duration

	running    atomic.Bool
	cancelFunc atomic.Pointer[context.CancelFunc]
	done       atomic.Pointer[chan struct{}]
	wg         sync.WaitGroup

	jobsDispatched  atomic.Int64
	jobsQueued      atomic.Int64
	jobsReplayed    atomic.Int64
	jobsQuarantined atomic.Int64
	lastActivityAt  atomic.Int64
}

// Stats reports counters for observability and monitoring.
type Stats struct {
	JobsDispatched  int64
	JobsQueued      int64
	JobsReplayed    int64
	JobsQuarantined int64
	QueueLen        int
	IsRunning       bool
	LastActivityAt  time.Time
}

// New creates a Dispatcher with the given options applied over sensible
// defaults: an always-connected ManualProvider, an in-memory queue with no
// file safety delegate, an in-memory cache, and a discarding logger.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		factories:       make(map[string]replayFunc),
		connectivity:    connectivity.NewManualProvider(true),
		queue:           queue.NewManager(queue.NewMemoryStorage(), nil),
		cache:           cache.NewMemoryProvider(),
		observer:        executor.NoopObserver{},
		cfg:             queue.DefaultConfig(),
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs the replay loop until ctx is done. It is a blocking call; use
// Run for errgroup-style lifecycle management.
func (d *Dispatcher) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer d.running.Store(false)

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancelFunc.Store(&cancel)

	done := make(chan struct{})
	d.done.Store(&done)
	defer close(done)

	d.logger.InfoContext(loopCtx, "dispatcher replay loop started",
		slog.Duration("replay_interval", d.cfg.ReplayInterval))

	changes := d.connectivity.OnChange(loopCtx)
	ticker := time.NewTicker(d.cfg.ReplayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			d.logger.Info("dispatcher replay loop stopping")
			return loopCtx.Err()
		case connected, ok := <-changes:
			if ok && connected {
				d.drainQueue(loopCtx)
			}
		case <-ticker.C:
			if d.connectivity.IsConnected() {
				d.drainQueue(loopCtx)
			}
		}
	}
}

// Stop cancels the replay loop and waits up to shutdownTimeout for any
// in-flight replay to finish.
func (d *Dispatcher) Stop() error {
	if !d.running.Load() {
		return ErrNotStarted
	}

	if cancel := d.cancelFunc.Load(); cancel != nil {
		(*cancel)()
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer cancel()

	waitDone := make(chan struct{})
	go func() {
		if done := d.done.Load(); done != nil {
			<-*done
		}
		d.wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher: shutdown timeout exceeded after %s", d.shutdownTimeout)
	}
}

// Run adapts Start/Stop to the errgroup convention.
func (d *Dispatcher) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() { errCh <- d.Start(ctx) }()

		select {
		case <-ctx.Done():
			if err := d.Stop(); err != nil {
				d.logger.Error("dispatcher graceful shutdown failed", slog.String("error", err.Error()))
			}
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// drainQueue replays queued entries strictly FIFO until the queue is empty
// or connectivity drops mid-drain, in which case the in-flight entry is
// requeued unexamined rather than counted as a failed attempt.
func (d *Dispatcher) drainQueue(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		entry, err := d.queue.ClaimNext(ctx)
		if errors.Is(err, queue.ErrEmpty) {
			return
		}
		if err != nil {
			d.logger.ErrorContext(ctx, "failed to claim queued entry", slog.String("error", err.Error()))
			return
		}

		if !d.connectivity.IsConnected() {
			// Requeue counts an attempt; undo that so the drop costs the
			// entry nothing from its retry budget.
			entry.RetryCount--
			_ = d.queue.Requeue(ctx, entry, nil)
			return
		}

		d.wg.Add(1)
		d.replayOne(ctx, entry)
		d.wg.Done()
	}
}

func (d *Dispatcher) replayOne(ctx context.Context, entry queue.Entry) {
	d.mu.RLock()
	factory, ok := d.factories[entry.Type]
	d.mu.RUnlock()

	d.lastActivityAt.Store(time.Now().UnixNano())

	if !ok {
		d.logger.WarnContext(ctx, "no factory registered for queued entry type, quarantining",
			slog.String("type", entry.Type))
		_ = d.queue.Quarantine(ctx, entry)
		d.jobsQuarantined.Add(1)
		return
	}

	err := factory(ctx, entry.Payload)
	if err == nil {
		_ = d.queue.Complete(ctx, entry)
		d.jobsReplayed.Add(1)
		return
	}

	failedRetryCount := entry.RetryCount + 1
	poisoned := failedRetryCount >= d.cfg.MaxRetries
	bus.Global().Emit(executor.NetworkSyncFailureEvent{
		Meta:       job.NewMeta(entry.CorrelationID),
		JobID:      entry.ID.String(),
		Type:       entry.Type,
		Cause:      err.Error(),
		RetryCount: failedRetryCount,
		Poisoned:   poisoned,
	})

	if poisoned {
		_ = d.queue.Quarantine(ctx, entry)
		d.jobsQuarantined.Add(1)
		return
	}
	_ = d.queue.Requeue(ctx, entry, err)
}

// Stats returns current dispatcher statistics.
func (d *Dispatcher) Stats() Stats {
	last := d.lastActivityAt.Load()
	var lastTime time.Time
	if last > 0 {
		lastTime = time.Unix(0, last)
	}

	n, _ := d.queue.Len(context.Background())

	return Stats{
		JobsDispatched:  d.jobsDispatched.Load(),
		JobsQueued:      d.jobsQueued.Load(),
		JobsReplayed:    d.jobsReplayed.Load(),
		JobsQuarantined: d.jobsQuarantined.Load(),
		QueueLen:        n,
		IsRunning:       d.running.Load(),
		LastActivityAt:  lastTime,
	}
}

// Healthcheck reports an error if the replay loop is not running.
func (d *Dispatcher) Healthcheck(ctx context.Context) error {
	if !d.running.Load() {
		return ErrNotStarted
	}
	return nil
}
