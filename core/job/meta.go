package job

import "time"

// Meta carries the fields every domain event needs to satisfy bus.Event
// and to be routed back to the job that produced it. Domain event types
// embed Meta and populate it via NewMeta when the job's MakeEvent closure
// runs.
type Meta struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMeta builds event metadata correlated to the given job id.
func NewMeta(correlationID string) Meta {
	return Meta{ID: correlationID, Timestamp: time.Now()}
}

// CorrelationID implements bus.Event.
func (m Meta) CorrelationID() string { return m.ID }
