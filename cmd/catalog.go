package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvidela/rallymetrics/internal/report"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the achievement catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report.PrintCatalog(os.Stdout)
		return nil
	},
}
