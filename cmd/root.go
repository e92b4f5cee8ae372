package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/model"
	"github.com/courtside/go-court-stats/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "courtstats",
	Short: "Racket-sport scoresheet and stats tool",
	Long:  "Record match points box by box and derive serve, return, and shot statistics.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".courtstats", "matches.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(faultCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(boxesCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(addGameCmd)
	rootCmd.AddCommand(addTieBreakCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(playerCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openStore opens the database, creating its directory on first use.
func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// loadByPrefix resolves an ID prefix and loads the match. Returns
// (nil, nil) after printing a notice when nothing matches the prefix.
func loadByPrefix(db *storage.DB, prefix string) (*model.Match, error) {
	id, err := db.ResolveID(prefix)
	if err != nil {
		return nil, fmt.Errorf("resolve match: %w", err)
	}
	if id == "" {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", prefix)
		return nil, nil
	}
	m, err := db.LoadMatch(id)
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	return m, nil
}
