// Package cli wires orbitdemo's Cobra command tree: run, replay, and
// inspect-queue, all sharing a --queue-file flag so the offline queue
// persists between separate invocations of the binary.
package cli

import (
	"github.com/spf13/cobra"
)

// App represents the orbitdemo CLI application.
type App struct {
	rootCmd *cobra.Command

	queueFile string

	version string
	commit  string
	date    string
}

// New builds an App with its full command tree wired.
func New() *App {
	a := &App{version: "dev", commit: "unknown", date: "unknown"}
	a.setupRootCmd()
	a.rootCmd.AddCommand(a.newRunCmd())
	a.rootCmd.AddCommand(a.newReplayCmd())
	a.rootCmd.AddCommand(a.newInspectQueueCmd())
	a.rootCmd.AddCommand(a.newVersionCmd())
	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string reported by `orbitdemo version`.
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "orbitdemo",
		Short: "Demonstrates the orbit job orchestration runtime",
		Long: `orbitdemo drives the orbit runtime end to end: a cache-first
LoadUsers job, an offline/optimistic SendMessage job, and the FIFO replay
queue that drains once connectivity returns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().StringVar(&a.queueFile, "queue-file", "orbitdemo-queue.yaml",
		"path to the YAML file backing the offline replay queue")
}
