// Package bus provides the broadcast transport domain events travel on.
//
// # Basic usage
//
//	b := bus.New()
//	defer b.Dispose()
//
//	sub, _ := b.Subscribe(func(e bus.Event) {
//		fmt.Println("received", e.CorrelationID())
//	})
//	defer sub.Cancel()
//
//	b.Emit(myDomainEvent{})
//
// # Global vs scoped
//
// bus.Global returns a process-wide singleton that must never be disposed
// by application code; it is the default delivery target for jobs that do
// not attach their own bus. bus.New returns an isolated instance whose
// lifetime the caller — typically an orchestrator — owns and must Dispose
// when it is done.
//
// # Delivery guarantees
//
// Emit is synchronous and unbuffered: every currently subscribed listener
// runs, in registration order, before Emit returns. A listener registered
// after Emit has already started does not see that delivery. A listener
// that panics is recovered and logged; it never prevents delivery to the
// remaining listeners.
package bus
