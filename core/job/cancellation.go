package job

import "sync"

// CancellationToken is a one-way cancellation latch shared between a
// caller and the executor pipeline running a job.
type CancellationToken struct {
	mu        sync.Mutex
	cancelled bool
	nextID    uint64
	listeners map[uint64]func()
}

// NewCancellationToken returns a fresh, uncancelled token.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{listeners: make(map[uint64]func())}
}

// Cancel fires the token. It is idempotent: only the first call has any
// effect. Registered listeners run once, in registration order, then the
// listener list is cleared.
func (t *CancellationToken) Cancel() {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true

	ids := make([]uint64, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	// map iteration is unordered; sort ids to approximate registration
	// order since ids are assigned monotonically.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}

	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.listeners[id])
	}
	t.listeners = nil
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// IsCancelled reports whether Cancel has been called.
func (t *CancellationToken) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// ThrowIfCancelled returns ErrCancelled if the token has been cancelled,
// else nil.
func (t *CancellationToken) ThrowIfCancelled() error {
	if t.IsCancelled() {
		return ErrCancelled
	}
	return nil
}

// OnCancel registers fn to run when the token is cancelled. If the token
// is already cancelled, fn runs immediately before OnCancel returns. The
// returned function unregisters fn; calling it after fn has already run,
// or more than once, is a safe no-op.
func (t *CancellationToken) OnCancel(fn func()) (unregister func()) {
	t.mu.Lock()

	if t.cancelled {
		t.mu.Unlock()
		fn()
		return func() {}
	}

	t.nextID++
	id := t.nextID
	t.listeners[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.listeners != nil {
				delete(t.listeners, id)
			}
		})
	}
}
