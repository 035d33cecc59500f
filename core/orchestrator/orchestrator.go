// Package orchestrator is the top-level façade an application builds on:
// it owns application state S, dispatches jobs, subscribes to the bus
// those jobs emit on, and routes events back into state changes, guarding
// the whole thing with a circuit breaker against runaway event/dispatch
// feedback loops.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/cache"
	"github.com/lploc94/orbit/core/dispatcher"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/job"
)

// DefaultBreakerLimit is the number of events of the same runtime type the
// breaker allows within DefaultBreakerWindow before it starts dropping
// them.
const DefaultBreakerLimit = 50

// DefaultBreakerWindow is the sliding window the breaker measures against.
const DefaultBreakerWindow = time.Second

// DefaultRemovalGrace is how long a completed job's id stays in the active
// set after its handle resolves, so a listener reacting to the terminal
// event can still see the job as active.
const DefaultRemovalGrace = 2 * time.Second

// StateStreamBufferSize is the per-subscriber buffer depth of the channel
// returned by Stream. Sends are non-blocking: while a subscriber's buffer
// is full, every state Emit pushes is dropped for that subscriber.
const StateStreamBufferSize = 4

// Orchestrator is the shared runtime every dispatched job is routed
// through. It is the sole owner of state S: only Emit may change it, and
// only this orchestrator's on_event hook observes bus traffic to decide
// when Emit should run. The zero value is not usable; construct with New.
type Orchestrator[S any] struct {
	internal *bus.Bus
	public   *bus.Bus
	breaker  *breaker

	Dispatcher *dispatcher.Dispatcher
	Cache      cache.Provider
	observer   executor.Observer
	logger     *slog.Logger
	onEvent    func(o *Orchestrator[S], event bus.Event)

	removalGrace time.Duration

	mu       sync.Mutex
	active   map[string]time.Time
	disposed atomic.Bool

	breakerTrips atomic.Int64

	stateMu    sync.RWMutex
	state      S
	streamSubs map[int]chan S
	nextSubID  int
}

// Stats reports counters for observability and monitoring.
type Stats struct {
	ActiveJobs      int
	BreakerTrips    int64
	DispatcherStats dispatcher.Stats
}

// New builds an Orchestrator owning initial as its starting state and
// exposes a fresh public bus via Bus(). Unless WithDispatcher is given it
// builds its own Dispatcher; the orchestrator never starts or stops that
// Dispatcher's replay loop (run it with o.Dispatcher.Run), and Dispose
// does not stop it.
func New[S any](initial S, opts ...Option[S]) *Orchestrator[S] {
	o := &Orchestrator[S]{
		internal:     bus.New(),
		public:       bus.New(),
		breaker:      newBreaker(DefaultBreakerLimit, DefaultBreakerWindow),
		Cache:        cache.NewMemoryProvider(),
		observer:     executor.NoopObserver{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		removalGrace: DefaultRemovalGrace,
		active:       make(map[string]time.Time),
		state:        initial,
		streamSubs:   make(map[int]chan S),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Dispatcher == nil {
		o.Dispatcher = dispatcher.New(
			dispatcher.WithCache(o.Cache),
			dispatcher.WithObserver(o.observer),
		)
	}

	if _, err := o.internal.Subscribe(o.route); err != nil {
		// o.internal was just constructed above and is never disposed
		// before this point, so Subscribe cannot fail here.
		panic(fmt.Sprintf("orchestrator: unreachable subscribe failure: %v", err))
	}

	return o
}

// Bus returns the public bus external listeners subscribe to. Events
// emitted by jobs created through NewJob are delivered here only after
// passing the circuit breaker.
func (o *Orchestrator[S]) Bus() *bus.Bus { return o.public }

// State returns a snapshot of the current state.
func (o *Orchestrator[S]) State() S {
	o.stateMu.RLock()
	defer o.stateMu.RUnlock()
	return o.state
}

// Emit replaces state with newState and pushes it to every live Stream
// subscriber. It is a no-op once the orchestrator has been disposed.
func (o *Orchestrator[S]) Emit(newState S) {
	if o.disposed.Load() {
		return
	}

	o.stateMu.Lock()
	o.state = newState
	subs := make([]chan S, 0, len(o.streamSubs))
	for _, ch := range o.streamSubs {
		subs = append(subs, ch)
	}
	o.stateMu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- newState:
		default:
		}
	}
}

// Stream returns a channel that receives every state Emit pushes for as
// long as ctx is alive. The channel is closed when ctx is done or the
// orchestrator is disposed, whichever comes first.
func (o *Orchestrator[S]) Stream(ctx context.Context) <-chan S {
	ch := make(chan S, StateStreamBufferSize)

	o.stateMu.Lock()
	o.nextSubID++
	id := o.nextSubID
	o.streamSubs[id] = ch
	o.stateMu.Unlock()

	go func() {
		<-ctx.Done()
		o.stateMu.Lock()
		if _, ok := o.streamSubs[id]; ok {
			delete(o.streamSubs, id)
			close(ch)
		}
		o.stateMu.Unlock()
	}()

	return ch
}

// route is the orchestrator's sole subscription to its internal bus: it
// applies the circuit breaker, forwards surviving events to the public
// bus, and calls the on_event hook, recovering from any panic inside it.
func (o *Orchestrator[S]) route(event bus.Event) {
	allowed, tripped := o.breaker.allow(event)
	if !allowed {
		o.breakerTrips.Add(1)
		if tripped {
			o.logger.Warn("circuit breaker dropped event",
				slog.String("type", fmt.Sprintf("%T", event)),
				slog.String("correlation_id", event.CorrelationID()))
		}
		return
	}

	o.public.Emit(event)

	if o.onEvent != nil {
		o.callOnEvent(event)
	}
}

func (o *Orchestrator[S]) callOnEvent(event bus.Event) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestrator: on_event panicked",
				slog.Any("panic", r),
				slog.String("type", fmt.Sprintf("%T", event)))
		}
	}()
	o.onEvent(o, event)
}

// NewJob constructs a Job routed through this orchestrator's internal bus,
// so every event it produces passes through the circuit breaker before
// reaching Bus() and on_event.
func NewJob[S any, R any, E bus.Event](o *Orchestrator[S], id string, makeEvent func(result R, source job.DataSource) E) *job.Job[R, E] {
	return &job.Job[R, E]{
		ID:        id,
		Bus:       o.internal,
		MakeEvent: makeEvent,
	}
}

// Dispatch routes j through the orchestrator's Dispatcher, tracking its id
// as active until the removal grace (DefaultRemovalGrace unless set with
// WithRemovalGrace) has passed after handle resolves.
func Dispatch[S any, R any, E bus.Event](
	ctx context.Context,
	o *Orchestrator[S],
	j *job.Job[R, E],
	worker executor.WorkerFunc[R],
	handle *job.Handle[R],
	net *dispatcher.NetworkOptions[R],
) (string, error) {
	o.track(j.ID)
	id, err := dispatcher.Dispatch(ctx, o.Dispatcher, j, worker, handle, net)

	go func() {
		_, _ = handle.Await(context.Background())
		o.scheduleUntrack(j.ID)
	}()

	return id, err
}

func (o *Orchestrator[S]) track(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active[id] = time.Time{}
}

func (o *Orchestrator[S]) scheduleUntrack(id string) {
	time.AfterFunc(o.removalGrace, func() {
		o.mu.Lock()
		delete(o.active, id)
		o.mu.Unlock()
	})
}

// CancelJob forgets id from the active set. It does not itself cancel the
// job; actual cancellation requires the job to carry a
// job.CancellationToken the caller cancels separately.
func (o *Orchestrator[S]) CancelJob(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, id)
}

// IsActive reports whether id is a currently tracked job (including jobs
// within their post-completion removal grace period).
func (o *Orchestrator[S]) IsActive(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.active[id]
	return ok
}

// ActiveJobIDs returns the ids of every currently tracked job.
func (o *Orchestrator[S]) ActiveJobIDs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]string, 0, len(o.active))
	for id := range o.active {
		ids = append(ids, id)
	}
	return ids
}

// Stats returns current orchestrator statistics.
func (o *Orchestrator[S]) Stats() Stats {
	o.mu.Lock()
	n := len(o.active)
	o.mu.Unlock()

	return Stats{
		ActiveJobs:      n,
		BreakerTrips:    o.breakerTrips.Load(),
		DispatcherStats: o.Dispatcher.Stats(),
	}
}

// Dispose disposes the internal and the public bus, closes every live Stream, and
// clears job tracking. It is idempotent; after Dispose, dispatched jobs'
// events are silently dropped rather than delivered, and Emit is a no-op.
func (o *Orchestrator[S]) Dispose() {
	if !o.disposed.CompareAndSwap(false, true) {
		return
	}
	o.internal.Dispose()
	o.public.Dispose()

	o.stateMu.Lock()
	for id, ch := range o.streamSubs {
		close(ch)
		delete(o.streamSubs, id)
	}
	o.stateMu.Unlock()

	o.mu.Lock()
	o.active = make(map[string]time.Time)
	o.mu.Unlock()
}
