package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/lploc94/orbit/cmd/orbitdemo/internal/cli/tui"
	"github.com/lploc94/orbit/core/queue"
	"github.com/spf13/cobra"
)

func (a *App) newInspectQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect-queue",
		Short: "Print the current contents of the offline replay queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := queue.NewYAMLFileStorage(a.queueFile)
			if err != nil {
				return fmt.Errorf("open queue file %s: %w", a.queueFile, err)
			}

			entries, err := storage.List(context.Background())
			if err != nil {
				return err
			}

			styles := tui.DefaultStyles()
			fmt.Println(styles.Title.Render("orbit offline queue"))
			fmt.Println(styles.Dim.Render(a.queueFile))

			if len(entries) == 0 {
				fmt.Println(styles.Dim.Render("(empty)"))
				return nil
			}

			header := fmt.Sprintf("%-10s  %-16s  %-8s  %-24s  %s", "ID", "TYPE", "RETRIES", "ENQUEUED", "LAST ERROR")
			fmt.Println(styles.Header.Render(header))
			fmt.Println(styles.Border.Render(strings.Repeat("-", len(header))))

			for _, e := range entries {
				row := fmt.Sprintf("%-10s  %-16s  %-8d  %-24s  %s",
					shortID(e.ID.String()), e.Type, e.RetryCount,
					e.EnqueuedAt.Format("2006-01-02 15:04:05"), e.LastError)

				style := styles.RowFresh
				icon := ""
				switch {
				case e.Poisoned(queue.DefaultMaxRetries):
					style = styles.RowFailed
					icon = tui.IconQuarantine + " "
				case e.RetryCount > 0:
					style = styles.RowPending
					icon = tui.IconQueued + " "
				}
				fmt.Println(style.Render(icon + row))
			}
			return nil
		},
	}
	return cmd
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
