// Package jobs defines the two demo workloads orbitdemo exercises: a
// cache-first/SWR read (LoadUsers) and an offline/optimistic write
// (SendMessage), plus the domain events each one emits.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/dispatcher"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/job"
	"github.com/lploc94/orbit/core/orchestrator"
)

// AppState is the state orbitdemo's orchestrator owns: the last data each
// demo job produced, applied by ApplyEvent as events arrive on the bus.
type AppState struct {
	Users       []User
	LastMessage string
}

// ApplyEvent is orbitdemo's on_event hook: it folds each domain event the
// orchestrator routes into AppState. Installed via orchestrator.WithOnEvent.
func ApplyEvent(o *orchestrator.Orchestrator[AppState], event bus.Event) {
	switch e := event.(type) {
	case UsersLoadedEvent:
		s := o.State()
		s.Users = e.Users
		o.Emit(s)
	case MessageSentEvent:
		s := o.State()
		s.LastMessage = fmt.Sprintf("%s: %s", e.To, e.Body)
		o.Emit(s)
	}
}

// User is the payload LoadUsers resolves.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UsersLoadedEvent is emitted every time a LoadUsers job completes,
// whatever its source (fresh/cached).
type UsersLoadedEvent struct {
	job.Meta
	Users  []User
	Source job.DataSource
}

// MessageSentEvent is emitted every time a SendMessage job completes,
// either from a live send or a successful replay.
type MessageSentEvent struct {
	job.Meta
	To     string
	Body   string
	Source job.DataSource
}

// SendMessageTypeName is the factory key SendMessage jobs are queued and
// replayed under.
const SendMessageTypeName = "send-message"

type sendMessagePayload struct {
	JobID string `json:"job_id"`
	To    string `json:"to"`
	Body  string `json:"body"`
}

// fakeUserStore simulates a slow backend for the LoadUsers demo job. It
// always returns the same two users after a short delay, unless ctx is
// done first.
func fakeUserStore(ctx context.Context) ([]User, error) {
	select {
	case <-time.After(150 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []User{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}, nil
}

// fakeMessageSend simulates a network call that delivers a message. It
// always succeeds; orbitdemo's offline behavior comes from the
// ManualProvider being disconnected at dispatch time, not from this
// function failing.
func fakeMessageSend(ctx context.Context, to, body string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// LoadUsers dispatches a cache-first LoadUsers job against o and returns
// its handle.
func LoadUsers(ctx context.Context, o *orchestrator.Orchestrator[AppState], cacheKey string, ttl time.Duration, revalidate bool) (string, *job.Handle[[]User]) {
	id := job.NewID("load-users")
	j := orchestrator.NewJob(o, id, func(result []User, source job.DataSource) UsersLoadedEvent {
		return UsersLoadedEvent{Meta: job.NewMeta(id), Users: result, Source: source}
	})
	j.Strategy = &job.DataStrategy[[]User]{
		Cache: &job.CachePolicy{Key: cacheKey, TTL: &ttl, Revalidate: revalidate},
	}

	handle := job.NewHandle[[]User](id)
	_, _ = orchestrator.Dispatch(ctx, o, j, fakeUserStore, handle, nil)
	return id, handle
}

// SendMessage dispatches a SendMessage job against o. If the orchestrator's
// dispatcher is currently offline, the handle resolves optimistically
// (job.Optimistic) and the send is queued for replay once connectivity
// returns; RegisterSendMessage must have been called on the same
// dispatcher for replay to succeed.
func SendMessage(ctx context.Context, o *orchestrator.Orchestrator[AppState], to, body string) (string, *job.Handle[string]) {
	id := job.NewID("send-message")
	j := orchestrator.NewJob(o, id, func(result string, source job.DataSource) MessageSentEvent {
		return MessageSentEvent{Meta: job.NewMeta(id), To: to, Body: body, Source: source}
	})

	payload, _ := json.Marshal(sendMessagePayload{JobID: id, To: to, Body: body})
	optimistic := fmt.Sprintf("queued:%s", id)

	handle := job.NewHandle[string](id)
	worker := func(ctx context.Context) (string, error) {
		if err := fakeMessageSend(ctx, to, body); err != nil {
			return "", err
		}
		return "sent", nil
	}

	_, _ = orchestrator.Dispatch(ctx, o, j, worker, handle, &dispatcher.NetworkOptions[string]{
		TypeName:         SendMessageTypeName,
		Payload:          payload,
		OptimisticResult: &optimistic,
	})
	return id, handle
}

// RegisterSendMessage teaches d how to rebuild and replay a queued
// SendMessage job. It must be called once per Dispatcher before any
// SendMessage call that might go offline.
func RegisterSendMessage(d *dispatcher.Dispatcher) error {
	return dispatcher.RegisterNetworkJob[string, MessageSentEvent](d, SendMessageTypeName,
		func(raw []byte) (*job.Job[string, MessageSentEvent], executor.WorkerFunc[string], error) {
			var p sendMessagePayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, nil, err
			}

			j := &job.Job[string, MessageSentEvent]{
				ID: p.JobID,
				MakeEvent: func(result string, source job.DataSource) MessageSentEvent {
					return MessageSentEvent{Meta: job.NewMeta(p.JobID), To: p.To, Body: p.Body, Source: source}
				},
			}
			worker := func(ctx context.Context) (string, error) {
				if err := fakeMessageSend(ctx, p.To, p.Body); err != nil {
					return "", err
				}
				return "sent", nil
			}
			return j, worker, nil
		})
}
