package executor

import (
	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/job"
)

// Observer is an opt-in hook for logging job lifecycle and every event
// that crosses a bus. Implementations must never panic across this
// boundary; the pipeline recovers and logs if one does, exactly as it
// does for bus listeners.
type Observer interface {
	OnJobStart(jobID string)
	OnJobSuccess(jobID string, result any, source job.DataSource)
	OnJobError(jobID string, err error)
	OnEvent(event bus.Event)
}

// NoopObserver discards every call. It is the default when no Observer is
// configured.
type NoopObserver struct{}

func (NoopObserver) OnJobStart(jobID string)                                 {}
func (NoopObserver) OnJobSuccess(jobID string, result any, src job.DataSource) {}
func (NoopObserver) OnJobError(jobID string, err error)                      {}
func (NoopObserver) OnEvent(event bus.Event)                                 {}

// safeObserver wraps an Observer so that a panicking hook never escapes
// into the pipeline.
type safeObserver struct {
	inner  Observer
	onPanic func(hook string, r any)
}

func newSafeObserver(o Observer, onPanic func(hook string, r any)) safeObserver {
	if o == nil {
		o = NoopObserver{}
	}
	return safeObserver{inner: o, onPanic: onPanic}
}

func (s safeObserver) guard(hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil && s.onPanic != nil {
			s.onPanic(hook, r)
		}
	}()
	fn()
}

func (s safeObserver) OnJobStart(jobID string) {
	s.guard("OnJobStart", func() { s.inner.OnJobStart(jobID) })
}

func (s safeObserver) OnJobSuccess(jobID string, result any, source job.DataSource) {
	s.guard("OnJobSuccess", func() { s.inner.OnJobSuccess(jobID, result, source) })
}

func (s safeObserver) OnJobError(jobID string, err error) {
	s.guard("OnJobError", func() { s.inner.OnJobError(jobID, err) })
}

func (s safeObserver) OnEvent(event bus.Event) {
	s.guard("OnEvent", func() { s.inner.OnEvent(event) })
}
