package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/model"
)

var (
	newMode  string
	newTeamA string
	newTeamB string
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new match with one empty game",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newMode, "mode", "singles", "match mode: singles or doubles")
	newCmd.Flags().StringVar(&newTeamA, "team-a", "", "comma-separated player name(s) for side A")
	newCmd.Flags().StringVar(&newTeamB, "team-b", "", "comma-separated player name(s) for side B")
}

func runNew(cmd *cobra.Command, args []string) error {
	mode := model.ParseMode(newMode)
	teamA := splitNames(newTeamA)
	teamB := splitNames(newTeamB)

	want := 1
	if mode == model.ModeDoubles {
		want = 2
	}
	if len(teamA) != want || len(teamB) != want {
		return fmt.Errorf("%s mode needs exactly %d player(s) per side (got %d and %d)",
			mode, want, len(teamA), len(teamB))
	}

	title := "Match"
	if len(args) == 1 && args[0] != "" {
		title = args[0]
	}

	m := model.NewMatch(title, model.Roster{Mode: mode, TeamA: teamA, TeamB: teamB})

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveMatch(m); err != nil {
		return fmt.Errorf("save match: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Created %s match %q with ID %s\n", mode, title, m.ID)
	return nil
}

func splitNames(s string) []string {
	var out []string
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
