package job

import (
	"context"
	"sync"
)

// Result is the value delivered to a JobHandle on successful completion.
type Result[T any] struct {
	Data   T
	Source DataSource
}

// Progress is one update pushed onto a JobHandle's progress stream.
type Progress struct {
	Value       float64
	Message     string
	CurrentStep int
	TotalSteps  int
}

// ProgressBufferSize is the default capacity of a JobHandle's progress
// channel. Reports beyond this capacity are dropped rather than blocking
// the reporter, matching the bus's non-blocking delivery philosophy.
const ProgressBufferSize = 32

// Handle is the caller-visible future and progress stream for one
// dispatched job. The zero value is not usable; construct with NewHandle.
type Handle[T any] struct {
	id string

	mu       sync.Mutex
	done     bool
	result   Result[T]
	err      error
	waitCh   chan struct{}
	progress chan Progress
	pClosed  bool
}

// NewHandle creates a Handle for the job identified by id.
func NewHandle[T any](id string) *Handle[T] {
	return &Handle[T]{
		id:       id,
		waitCh:   make(chan struct{}),
		progress: make(chan Progress, ProgressBufferSize),
	}
}

// JobID returns the id of the job this handle belongs to.
func (h *Handle[T]) JobID() string { return h.id }

// Complete resolves the handle with data and source. Only the first call
// to Complete or CompleteError takes effect; later calls are silent
// no-ops. This is load-bearing for stale-while-revalidate, where the
// cache-sourced completion must not be overwritten by a later fresh
// result.
func (h *Handle[T]) Complete(data T, source DataSource) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return
	}
	h.done = true
	h.result = Result[T]{Data: data, Source: source}
	close(h.waitCh)
}

// CompleteError resolves the handle with a terminal error. Only the first
// call to Complete or CompleteError takes effect.
func (h *Handle[T]) CompleteError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return
	}
	h.done = true
	h.err = err
	close(h.waitCh)
}

// IsDone reports whether the handle has already been completed, either
// successfully or with an error.
func (h *Handle[T]) IsDone() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Await blocks until the handle completes or ctx is done, whichever comes
// first.
func (h *Handle[T]) Await(ctx context.Context) (Result[T], error) {
	select {
	case <-h.waitCh:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, h.err
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}

// Progress returns the read side of the progress stream. It is closed
// once the executor pipeline finishes its settle delay after completion;
// ranging over it terminates cleanly at that point.
func (h *Handle[T]) Progress() <-chan Progress {
	return h.progress
}

// ReportProgress clamps value into [0,1] and pushes an update onto the
// progress stream. It is a no-op if the stream has already been closed or
// if the buffer is full, so a slow or absent consumer never blocks the
// pipeline.
func (h *Handle[T]) ReportProgress(value float64, message string, currentStep, totalSteps int) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pClosed {
		return
	}

	select {
	case h.progress <- Progress{Value: value, Message: message, CurrentStep: currentStep, TotalSteps: totalSteps}:
	default:
	}
}

// ReportStep is a convenience wrapper over ReportProgress that computes
// value as current/total, treating a zero total as 0 progress.
func (h *Handle[T]) ReportStep(current, total int, message string) {
	var value float64
	if total > 0 {
		value = float64(current) / float64(total)
	}
	h.ReportProgress(value, message, current, total)
}

// CloseProgress closes the progress stream. It is idempotent and is
// called by the executor pipeline once, after a short settle delay
// following completion, so that any progress reports emitted in the same
// tick as the terminal event are not lost.
func (h *Handle[T]) CloseProgress() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pClosed {
		return
	}
	h.pClosed = true
	close(h.progress)
}
