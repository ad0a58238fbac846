package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvidela/rallymetrics/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "rallymetrics",
	Short: "Racket-sport match insights and progression tracker",
	Long:  "Ingest finished pickleball/padel matches and compute per-match insights, achievement progress, and experience.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".rallymetrics", "rallymetrics.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
}

// openStorage creates the database directory if needed and opens the store.
// Every command goes through here, so read-only commands on a fresh machine
// see an empty database instead of an open error.
func openStorage() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
