// Package connectivity defines the ConnectivityProvider contract the
// dispatcher polls to decide whether a NetworkAction job should execute
// immediately or be queued, plus a manual/test implementation.
package connectivity

import (
	"context"
	"sync"
)

// Provider reports current connectivity and streams changes to it.
type Provider interface {
	// IsConnected returns a snapshot of the current connectivity state.
	IsConnected() bool
	// OnChange returns a channel that receives every connectivity
	// transition for as long as ctx is alive. The channel is closed when
	// ctx is done.
	OnChange(ctx context.Context) <-chan bool
}

// ManualProvider is a Provider whose state is toggled explicitly by test
// or local-dev code via SetConnected, rather than observed from a real
// network stack.
type ManualProvider struct {
	mu          sync.Mutex
	connected   bool
	subscribers map[int]chan bool
	nextID      int
}

// NewManualProvider returns a ManualProvider starting in the given state.
func NewManualProvider(initial bool) *ManualProvider {
	return &ManualProvider{
		connected:   initial,
		subscribers: make(map[int]chan bool),
	}
}

// IsConnected implements Provider.
func (p *ManualProvider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// OnChange implements Provider. Delivery to each subscriber is
// non-blocking: while a subscriber's buffer is full, every transition is
// dropped for that subscriber.
func (p *ManualProvider) OnChange(ctx context.Context) <-chan bool {
	ch := make(chan bool, 4)

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subscribers[id] = ch
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
		close(ch)
	}()

	return ch
}

// SetConnected updates the connectivity state. If the state actually
// changed, every live OnChange subscriber is notified.
func (p *ManualProvider) SetConnected(connected bool) {
	p.mu.Lock()
	if p.connected == connected {
		p.mu.Unlock()
		return
	}
	p.connected = connected
	subs := make([]chan bool, 0, len(p.subscribers))
	for _, ch := range p.subscribers {
		subs = append(subs, ch)
	}
	p.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- connected:
		default:
		}
	}
}
