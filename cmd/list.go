package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'rallymetrics ingest <match.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-8s  %-10s  %7s  %-5s  %s\n",
		"HASH", "SPORT", "TYPE", "DATE", "SCORE", "W/L", "POINTS")
	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-8s  %-10s  %7s  %-5s  %s\n",
		"──────────────", "────────────", "────────", "──────────", "───────", "─────", "──────")
	for _, m := range matches {
		score := fmt.Sprintf("%d-%d", m.PlayerScore, m.OpponentScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-8s  %-10s  %7s  %-5s  %d\n",
			m.Hash[:12], m.Sport, m.GameType, m.MatchDate, score, m.Outcome, m.EventCount)
	}
	return nil
}
