package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	resetConfirm bool
	resetMatches bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe achievement progress, experience, and lifetime stats",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "actually perform the wipe")
	resetCmd.Flags().BoolVar(&resetMatches, "matches", false, "also delete stored matches")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirm {
		fmt.Fprintln(os.Stdout, "This deletes all progression data. Re-run with --confirm to proceed.")
		return nil
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ResetProfile(resetMatches); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintln(os.Stdout, "Profile reset.")
	return nil
}
