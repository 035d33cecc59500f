package cli

import (
	"fmt"
	"time"

	"github.com/lploc94/orbit/cmd/orbitdemo/internal/jobs"
	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/job"
	"github.com/spf13/cobra"
)

func (a *App) newRunCmd() *cobra.Command {
	var offline bool
	var to, body string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Dispatch a LoadUsers job and a SendMessage job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, _, err := a.buildOrchestrator(!offline, nil)
			if err != nil {
				return err
			}
			defer o.Dispose()

			sub, err := o.Bus().Subscribe(func(e bus.Event) {
				fmt.Printf("event: %T %+v\n", e, e)
			})
			if err != nil {
				return err
			}
			defer sub.Cancel()

			_, usersHandle := jobs.LoadUsers(ctx, o, "users:all", time.Minute, false)
			usersResult, err := usersHandle.Await(ctx)
			if err != nil {
				fmt.Printf("LoadUsers failed: %v\n", err)
			} else {
				fmt.Printf("LoadUsers (%s): %d users\n", usersResult.Source, len(usersResult.Data))
			}

			id, msgHandle := jobs.SendMessage(ctx, o, to, body)
			msgResult, err := msgHandle.Await(ctx)
			switch {
			case err != nil:
				fmt.Printf("SendMessage %s failed: %v\n", id, err)
			case msgResult.Source == job.Optimistic:
				fmt.Printf("SendMessage %s queued for replay (optimistic result %q)\n", id, msgResult.Data)
			default:
				fmt.Printf("SendMessage %s delivered (%s)\n", id, msgResult.Source)
			}

			if o.Dispatcher.Stats().JobsQueued > 0 {
				fmt.Println("run `orbitdemo replay` once connectivity returns to drain the queue")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "simulate no connectivity for network-bound jobs")
	cmd.Flags().StringVar(&to, "to", "alice", "SendMessage recipient")
	cmd.Flags().StringVar(&body, "body", "hello from orbitdemo", "SendMessage body")
	return cmd
}
