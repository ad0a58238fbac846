package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvidela/rallymetrics/internal/insights"
	"github.com/mvidela/rallymetrics/internal/report"
	"github.com/mvidela/rallymetrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show insights for a stored match by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	return showByPrefix(db, args[0])
}

func showByPrefix(db *storage.DB, prefix string) error {
	m, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if m == nil {
		fmt.Fprintf(os.Stderr, "No match found with hash prefix %q\n", prefix)
		return nil
	}

	ins, _ := insights.Compute(m)
	report.PrintMatchSummary(os.Stdout, m.Summary())
	report.PrintInsights(os.Stdout, ins, m.GameType)
	return nil
}
