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
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'courtstats new' to create one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-8s  %-16s  %5s  %3s  %s\n",
		"ID", "TITLE", "MODE", "CREATED", "GAMES", "TB", "POINTS")
	fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-8s  %-16s  %5s  %3s  %s\n",
		"──────────", "────────────────────", "────────", "────────────────", "─────", "───", "──────")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-8s  %-16s  %5d  %3d  %d\n",
			m.ID[:8], m.Title, m.Mode, m.CreatedAt.Format("2006-01-02 15:04"),
			m.Games, m.TieBreaks, m.Points)
	}
	return nil
}
