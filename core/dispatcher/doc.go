// Package dispatcher routes a Job to its worker, transparently queueing
// NetworkAction jobs while offline and replaying them FIFO once
// connectivity returns.
//
// # Basic usage
//
//	d := dispatcher.New(
//		dispatcher.WithConnectivity(connProvider),
//		dispatcher.WithQueue(queue.NewManager(queue.NewMemoryStorage(), nil)),
//	)
//
//	// Register how to rebuild a SendMessage job from its serialized form,
//	// so a replay after a process restart can still reconstruct it.
//	_ = dispatcher.RegisterNetworkJob(d, "SendMessage",
//		func(payload []byte) (*job.Job[Ack, MessageSentEvent], executor.WorkerFunc[Ack], error) {
//			var params SendMessageParams
//			if err := json.Unmarshal(payload, &params); err != nil {
//				return nil, nil, err
//			}
//			return buildSendMessageJob(params), sendMessageWorker(params), nil
//		})
//
//	go d.Run(ctx)()
//
//	// Each dispatch call is ordinary Go generics, not reflection:
//	handle := job.NewHandle[Ack](j.ID)
//	jobID, _ := dispatcher.Dispatch(ctx, d, j, sendMessageWorker(params), handle,
//		&dispatcher.NetworkOptions[Ack]{
//			TypeName:         "SendMessage",
//			Payload:          payload,
//			OptimisticResult: &optimisticAck,
//		})
//
// A nil NetworkOptions means the job always runs inline regardless of
// connectivity; it is never queued.
package dispatcher
