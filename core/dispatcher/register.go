package dispatcher

import (
	"context"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/executor"
	"github.com/lploc94/orbit/core/job"
)

// NetworkOptions marks a dispatch as a NetworkAction: one that must be
// queued for later replay, rather than run inline, while disconnected.
// TypeName and Payload must match a factory registered via
// RegisterNetworkJob for the dispatcher's replay loop to reconstruct it
// later. OptimisticResult, if set, resolves the JobHandle immediately with
// job.Optimistic so the caller's UI can proceed without waiting for the
// real network round trip.
type NetworkOptions[R any] struct {
	TypeName         string
	Payload          []byte
	OptimisticResult *R
}

// Dispatch runs j's worker immediately if the dispatcher is connected (or
// net is nil, meaning j is not network-bound at all), or enqueues it for
// replay and optionally resolves handle optimistically when disconnected.
// It returns j.ID synchronously; the worker itself, when it runs inline,
// runs in its own goroutine and resolves handle asynchronously.
func Dispatch[R any, E bus.Event](
	ctx context.Context,
	d *Dispatcher,
	j *job.Job[R, E],
	worker executor.WorkerFunc[R],
	handle *job.Handle[R],
	net *NetworkOptions[R],
) (string, error) {
	d.jobsDispatched.Add(1)
	d.lastActivityAt.Store(time.Now().UnixNano())

	if net != nil && !d.connectivity.IsConnected() {
		correlationID := j.ID
		if _, err := d.queue.Enqueue(ctx, net.TypeName, net.Payload, correlationID); err != nil {
			handle.CompleteError(job.NewWorkerError(err))
			return j.ID, err
		}
		d.jobsQueued.Add(1)

		if net.OptimisticResult != nil {
			event := j.MakeEvent(*net.OptimisticResult, job.Optimistic)
			j.EffectiveBus().Emit(event)
			handle.Complete(*net.OptimisticResult, job.Optimistic)
		} else {
			handle.CompleteError(job.NewWorkerError(ErrOffline))
		}
		return j.ID, nil
	}

	go executor.Run(ctx, j, worker, handle, d.cache, d.observer)
	return j.ID, nil
}

// RegisterNetworkJob teaches the dispatcher how to reconstruct and replay
// a NetworkAction job of the given type name once connectivity returns.
// rebuild must be deterministic given only the serialized payload: it
// rebuilds the same Job and worker the original, optimistic dispatch would
// have built, so the replayed execution produces the same domain event
// shape a live call would have.
func RegisterNetworkJob[R any, E bus.Event](
	d *Dispatcher,
	typeName string,
	rebuild func(payload []byte) (*job.Job[R, E], executor.WorkerFunc[R], error),
) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.factories[typeName]; exists {
		return ErrAlreadyRegistered
	}

	d.factories[typeName] = func(ctx context.Context, payload []byte) error {
		j, worker, err := rebuild(payload)
		if err != nil {
			return err
		}

		handle := job.NewHandle[R](j.ID)
		executor.Run(ctx, j, worker, handle, d.cache, d.observer)

		_, err = handle.Await(ctx)
		return err
	}
	return nil
}
