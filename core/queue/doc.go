// Package queue implements the offline replay queue: durable storage for
// NetworkAction jobs dispatched while disconnected, drained strictly
// FIFO once connectivity returns.
//
// # Basic usage
//
//	storage := queue.NewMemoryStorage()
//	mgr := queue.NewManager(storage, nil) // nil safety -> filesafety.Noop
//
//	entry, err := mgr.Enqueue(ctx, "SendMessage", payload, correlationID)
//
// The dispatcher's replay loop drains the queue with ClaimNext, then calls
// either Complete or Requeue depending on the outcome:
//
//	entry, err := mgr.ClaimNext(ctx)
//	if errors.Is(err, queue.ErrEmpty) {
//		return // nothing to replay
//	}
//	if replayFailed {
//		if entry.RetryCount+1 >= cfg.MaxRetries {
//			_ = mgr.Quarantine(ctx, entry) // this failure would be the Nth
//		} else {
//			_ = mgr.Requeue(ctx, entry, cause)
//		}
//		return
//	}
//	_ = mgr.Complete(ctx, entry)
//
// A Requeue'd entry goes back onto the tail, never the head, so one
// malfunctioning entry cannot starve the rest of the queue.
package queue
