package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/spf13/cobra"
)

func (a *App) newReplayCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Flip connectivity on and drain the offline queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), wait)
			defer cancel()

			o, provider, err := a.buildOrchestrator(false, nil)
			if err != nil {
				return err
			}
			defer o.Dispose()

			// Replayed jobs are rebuilt by the dispatcher's factory registry
			// without an attached Bus (job.EffectiveBus falls back to
			// bus.Global()), the same target the dispatcher itself uses for
			// NetworkSyncFailureEvent, so that's what replay listens on.
			sub, err := bus.Global().Subscribe(func(e bus.Event) {
				fmt.Printf("replay event: %T %+v\n", e, e)
			})
			if err != nil {
				return err
			}
			defer sub.Cancel()

			done := make(chan error, 1)
			go func() { done <- o.Dispatcher.Run(ctx)() }()

			provider.SetConnected(true)
			fmt.Println("connectivity restored, draining queue...")

			<-ctx.Done()
			<-done

			stats := o.Stats().DispatcherStats
			fmt.Printf("replayed=%d quarantined=%d queue_len=%d\n",
				stats.JobsReplayed, stats.JobsQuarantined, stats.QueueLen)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 2*time.Second, "how long to let the replay loop drain before stopping")
	return cmd
}
