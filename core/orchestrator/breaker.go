package orchestrator

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// breaker is a sliding-window rate limiter applied per event type. It
// exists to stop a feedback loop (a handler that, on receiving event A,
// dispatches a job whose completion emits another A) from saturating the
// bus and the goroutines behind it.
type breaker struct {
	mu         sync.Mutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration
}

type window struct {
	start time.Time
	count int
}

func newBreaker(limit int, windowSize time.Duration) *breaker {
	return &breaker{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
	}
}

// allow reports whether event may pass, and slides the window for its
// runtime type forward if the previous one has expired. tripped is true
// only for the first event that crosses the limit in a given window, so
// callers can log the trip exactly once rather than once per excess event.
func (b *breaker) allow(eventType any) (allowed, tripped bool) {
	key := fmt.Sprintf("%T", eventType)
	if rt := reflect.TypeOf(eventType); rt != nil {
		key = rt.String()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	w, ok := b.windows[key]
	if !ok || now.Sub(w.start) >= b.windowSize {
		w = &window{start: now}
		b.windows[key] = w
	}
	w.count++
	return w.count <= b.limit, w.count == b.limit+1
}
