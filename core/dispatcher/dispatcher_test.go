package dispatcher_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/connectivity"
	"github.com/lploc94/orbit/core/dispatcher"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/job"
	"github.com/lploc94/orbit/core/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingEvent struct {
	job.Meta
	Reply string
}

func buildPingJob(id string, b *bus.Bus) *job.Job[string, pingEvent] {
	return &job.Job[string, pingEvent]{
		ID:  id,
		Bus: b,
		MakeEvent: func(result string, source job.DataSource) pingEvent {
			return pingEvent{Meta: job.NewMeta(id), Reply: result}
		},
	}
}

func TestDispatchOnline(t *testing.T) {
	t.Parallel()

	scoped := bus.New()
	d := dispatcher.New(dispatcher.WithConnectivity(connectivity.NewManualProvider(true)))

	j := buildPingJob("job-1", scoped)
	handle := job.NewHandle[string]("job-1")

	var received pingEvent
	sub, err := scoped.Subscribe(func(e bus.Event) {
		received = e.(pingEvent)
	})
	require.NoError(t, err)
	defer sub.Cancel()

	id, err := dispatcher.Dispatch(context.Background(), d, j, func(ctx context.Context) (string, error) {
		return "pong", nil
	}, handle, nil)
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	result, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", result.Data)
	assert.Equal(t, job.Fresh, result.Source)
	assert.Equal(t, "pong", received.Reply)
}

func TestDispatchOffline(t *testing.T) {
	t.Parallel()

	conn := connectivity.NewManualProvider(false)
	d := dispatcher.New(dispatcher.WithConnectivity(conn))

	j := buildPingJob("job-2", nil)
	handle := job.NewHandle[string]("job-2")
	optimistic := "optimistic-pong"

	_, err := dispatcher.Dispatch(context.Background(), d, j, func(ctx context.Context) (string, error) {
		return "pong", nil
	}, handle, &dispatcher.NetworkOptions[string]{
		TypeName:         "Ping",
		Payload:          []byte(`{}`),
		OptimisticResult: &optimistic,
	})
	require.NoError(t, err)

	result, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, optimistic, result.Data)
	assert.Equal(t, job.Optimistic, result.Source)
	assert.Equal(t, 1, d.Stats().QueueLen)
}

func TestDispatchOfflineNoOptimisticResult(t *testing.T) {
	t.Parallel()

	conn := connectivity.NewManualProvider(false)
	d := dispatcher.New(dispatcher.WithConnectivity(conn))

	j := buildPingJob("job-3", nil)
	handle := job.NewHandle[string]("job-3")

	_, err := dispatcher.Dispatch(context.Background(), d, j, func(ctx context.Context) (string, error) {
		return "pong", nil
	}, handle, &dispatcher.NetworkOptions[string]{TypeName: "Ping", Payload: []byte(`{}`)})
	require.NoError(t, err)

	_, err = handle.Await(context.Background())
	assert.Error(t, err)
}

type pingParams struct {
	Reply string `json:"reply"`
}

func TestRegisterNetworkJobAndReplay(t *testing.T) {
	t.Parallel()

	conn := connectivity.NewManualProvider(false)
	mgr := queue.NewManager(queue.NewMemoryStorage(), nil)
	d := dispatcher.New(
		dispatcher.WithConnectivity(conn),
		dispatcher.WithQueue(mgr),
		dispatcher.WithQueueConfig(queue.Config{MaxRetries: 5, ReplayInterval: 10 * time.Millisecond}),
	)

	err := dispatcher.RegisterNetworkJob(d, "Ping",
		func(payload []byte) (*job.Job[string, pingEvent], executor.WorkerFunc[string], error) {
			var p pingParams
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, nil, err
			}
			j := buildPingJob("replayed", nil)
			return j, func(ctx context.Context) (string, error) { return p.Reply, nil }, nil
		})
	require.NoError(t, err)

	payload, _ := json.Marshal(pingParams{Reply: "pong"})
	j := buildPingJob("job-4", nil)
	handle := job.NewHandle[string]("job-4")
	_, err = dispatcher.Dispatch(context.Background(), d, j, nil, handle,
		&dispatcher.NetworkOptions[string]{TypeName: "Ping", Payload: payload})
	require.NoError(t, err)
	require.Equal(t, 1, d.Stats().QueueLen)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)()
	defer cancel()

	conn.SetConnected(true)

	require.Eventually(t, func() bool {
		return d.Stats().QueueLen == 0 && d.Stats().JobsReplayed == 1
	}, time.Second, 5*time.Millisecond)
}

func TestRegisterNetworkJobDuplicate(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	build := func(payload []byte) (*job.Job[string, pingEvent], executor.WorkerFunc[string], error) {
		return nil, nil, errors.New("unused")
	}
	require.NoError(t, dispatcher.RegisterNetworkJob(d, "Ping", build))
	err := dispatcher.RegisterNetworkJob(d, "Ping", build)
	assert.ErrorIs(t, err, dispatcher.ErrAlreadyRegistered)
}

func TestUnknownTypeIsQuarantined(t *testing.T) {
	t.Parallel()

	conn := connectivity.NewManualProvider(false)
	mgr := queue.NewManager(queue.NewMemoryStorage(), nil)
	d := dispatcher.New(
		dispatcher.WithConnectivity(conn),
		dispatcher.WithQueue(mgr),
		dispatcher.WithQueueConfig(queue.Config{MaxRetries: 5, ReplayInterval: 10 * time.Millisecond}),
	)

	_, err := mgr.Enqueue(context.Background(), "Unregistered", []byte(`{}`), "corr")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)()

	conn.SetConnected(true)

	require.Eventually(t, func() bool {
		return d.Stats().JobsQuarantined == 1
	}, time.Second, 5*time.Millisecond)
}
