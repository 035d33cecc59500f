package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print orbitdemo's version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("orbitdemo %s (%s, built %s)\n", a.version, a.commit, a.date)
			return nil
		},
	}
}
