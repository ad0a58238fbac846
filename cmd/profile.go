package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvidela/rallymetrics/internal/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show lifetime stats, achievements, and level",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.LoadStats()
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	xp, err := db.LoadExperience()
	if err != nil {
		return fmt.Errorf("load experience: %w", err)
	}
	progressMap, err := db.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	report.PrintProfileSummary(os.Stdout, stats, xp)
	report.PrintAchievementTable(os.Stdout, progressMap)
	return nil
}
