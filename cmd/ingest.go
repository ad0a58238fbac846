package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvidela/rallymetrics/internal/insights"
	"github.com/mvidela/rallymetrics/internal/matchio"
	"github.com/mvidela/rallymetrics/internal/progress"
	"github.com/mvidela/rallymetrics/internal/report"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <match.json>",
	Short: "Ingest a finished match export and update progression",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	matchPath := args[0]

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := matchio.LoadFile(matchPath)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}

	exists, err := db.MatchExists(m.Hash)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		recorded, err := db.MatchRecorded(m.Hash)
		if err != nil {
			return fmt.Errorf("check match: %w", err)
		}
		if recorded {
			fmt.Fprintf(os.Stdout, "Match %s already recorded — showing cached results.\n", m.Hash[:12])
			return showByPrefix(db, m.Hash)
		}
		// Stored but never folded into progression: an earlier ingest was
		// interrupted between the insert and the progression commit.
		fmt.Fprintf(os.Stdout, "Match %s was stored but not counted — completing progression.\n", m.Hash[:12])
	} else if err := db.InsertMatch(m); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	recorder := progress.NewRecorder(db, nil)
	res, err := recorder.Record(m, time.Now())
	if err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	if err := db.MarkRecorded(m.Hash); err != nil {
		return fmt.Errorf("mark recorded: %w", err)
	}

	ins, _ := insights.Compute(m)
	report.PrintMatchSummary(os.Stdout, m.Summary())
	report.PrintInsights(os.Stdout, ins, m.GameType)
	report.PrintNewTiers(os.Stdout, res.NewTiers)
	report.PrintAwardBreakdown(os.Stdout, res.Award, res.Experience, res.LeveledUp)
	return nil
}
