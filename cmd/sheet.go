package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/model"
)

// Commands that edit the sheet around the point log: serve-fault flags,
// deuce boxes, game scores, server selection, slot clearing, and
// appending games/tie-breaks. Each one is a single load-mutate-save.

var (
	faultGame int
	faultBox  int

	clearGame     int
	clearTieBreak int
	clearBox      int

	boxesGame     int
	boxesTieBreak int
	boxesAdd      bool
	boxesRemove   bool

	scoreGame int
	scoreA    int
	scoreB    int

	serverGame   int
	serverTeam   string
	serverPlayer string
)

var faultCmd = &cobra.Command{
	Use:   "fault <id-prefix>",
	Short: "Toggle the first-serve-fault flag for a game box",
	Args:  cobra.ExactArgs(1),
	RunE:  runFault,
}

var clearCmd = &cobra.Command{
	Use:   "clear <id-prefix>",
	Short: "Empty a point box",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

var boxesCmd = &cobra.Command{
	Use:   "boxes <id-prefix>",
	Short: "Add or remove two deuce boxes",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxes,
}

var scoreCmd = &cobra.Command{
	Use:   "score <id-prefix>",
	Short: "Set the displayed game score",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var serverCmd = &cobra.Command{
	Use:   "server <id-prefix>",
	Short: "Set the serving side (and doubles server) for a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runServer,
}

var addGameCmd = &cobra.Command{
	Use:   "addgame <id-prefix>",
	Short: "Append an empty game to the sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddGame,
}

var addTieBreakCmd = &cobra.Command{
	Use:   "addtiebreak <id-prefix>",
	Short: "Append an empty tie-break to the sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddTieBreak,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id-prefix>",
	Short: "Delete a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	faultCmd.Flags().IntVar(&faultGame, "game", 0, "game number (1-based)")
	faultCmd.Flags().IntVar(&faultBox, "box", 0, "box number (1-based)")

	clearCmd.Flags().IntVar(&clearGame, "game", 0, "game number (1-based)")
	clearCmd.Flags().IntVar(&clearTieBreak, "tiebreak", 0, "tie-break number (1-based)")
	clearCmd.Flags().IntVar(&clearBox, "box", 0, "box number (1-based)")

	boxesCmd.Flags().IntVar(&boxesGame, "game", 0, "game number (1-based)")
	boxesCmd.Flags().IntVar(&boxesTieBreak, "tiebreak", 0, "tie-break number (1-based)")
	boxesCmd.Flags().BoolVar(&boxesAdd, "add", false, "add two boxes")
	boxesCmd.Flags().BoolVar(&boxesRemove, "remove", false, "remove two boxes")

	scoreCmd.Flags().IntVar(&scoreGame, "game", 0, "game number (1-based)")
	scoreCmd.Flags().IntVar(&scoreA, "a", -1, "side A score (0-99)")
	scoreCmd.Flags().IntVar(&scoreB, "b", -1, "side B score (0-99)")

	serverCmd.Flags().IntVar(&serverGame, "game", 0, "game number (1-based)")
	serverCmd.Flags().StringVar(&serverTeam, "team", "", "serving side: A or B")
	serverCmd.Flags().StringVar(&serverPlayer, "player", "", "doubles: serving player name")
}

// withMatch runs fn against the match resolved from prefix and saves it
// when fn reports a mutation happened.
func withMatch(prefix string, fn func(m *model.Match) (bool, error)) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadByPrefix(db, prefix)
	if err != nil || m == nil {
		return err
	}

	changed, err := fn(m)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := db.SaveMatch(m); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

func runFault(cmd *cobra.Command, args []string) error {
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		g, err := gameAt(m, faultGame)
		if err != nil {
			return false, err
		}
		idx, err := boxIndex(faultBox, g.TotalBoxes)
		if err != nil {
			return false, err
		}
		g.ToggleServiceInfo(idx)
		return true, nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	if (clearGame == 0) == (clearTieBreak == 0) {
		return fmt.Errorf("exactly one of --game or --tiebreak is required")
	}
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		if clearGame > 0 {
			g, err := gameAt(m, clearGame)
			if err != nil {
				return false, err
			}
			idx, err := boxIndex(clearBox, g.TotalBoxes)
			if err != nil {
				return false, err
			}
			g.ClearPoint(idx)
		} else {
			tb, err := tieBreakAt(m, clearTieBreak)
			if err != nil {
				return false, err
			}
			idx, err := boxIndex(clearBox, tb.TotalBoxes)
			if err != nil {
				return false, err
			}
			tb.ClearPoint(idx)
		}
		return true, nil
	})
}

func runBoxes(cmd *cobra.Command, args []string) error {
	if (boxesGame == 0) == (boxesTieBreak == 0) {
		return fmt.Errorf("exactly one of --game or --tiebreak is required")
	}
	if boxesAdd == boxesRemove {
		return fmt.Errorf("exactly one of --add or --remove is required")
	}
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		if boxesGame > 0 {
			g, err := gameAt(m, boxesGame)
			if err != nil {
				return false, err
			}
			if boxesAdd {
				g.AddDeuceBoxes()
			} else {
				g.RemoveDeuceBoxes()
			}
		} else {
			tb, err := tieBreakAt(m, boxesTieBreak)
			if err != nil {
				return false, err
			}
			if boxesAdd {
				tb.AddDeuceBoxes()
			} else {
				tb.RemoveDeuceBoxes()
			}
		}
		return true, nil
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		g, err := gameAt(m, scoreGame)
		if err != nil {
			return false, err
		}
		if scoreA >= 0 {
			g.SetScore(model.TeamA, scoreA)
		}
		if scoreB >= 0 {
			g.SetScore(model.TeamB, scoreB)
		}
		return scoreA >= 0 || scoreB >= 0, nil
	})
}

func runServer(cmd *cobra.Command, args []string) error {
	team := model.ParseTeam(serverTeam)
	if team == model.TeamNone {
		return fmt.Errorf("--team must be A or B")
	}
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		g, err := gameAt(m, serverGame)
		if err != nil {
			return false, err
		}
		g.SetServer(team)
		if serverPlayer != "" {
			if m.Roster.TeamOf(serverPlayer) != team {
				return false, fmt.Errorf("%q is not on side %s", serverPlayer, team)
			}
			g.SetServerPlayer(serverPlayer)
		}
		return true, nil
	})
}

func runAddGame(cmd *cobra.Command, args []string) error {
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		m.AddGame()
		fmt.Fprintf(os.Stdout, "Added game %d\n", len(m.Games))
		return true, nil
	})
}

func runAddTieBreak(cmd *cobra.Command, args []string) error {
	return withMatch(args[0], func(m *model.Match) (bool, error) {
		m.AddTieBreak()
		fmt.Fprintf(os.Stdout, "Added tie-break %d\n", len(m.TieBreaks))
		return true, nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.ResolveID(args[0])
	if err != nil {
		return fmt.Errorf("resolve match: %w", err)
	}
	if id == "" {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", args[0])
		return nil
	}
	if err := db.DeleteMatch(id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted match %s\n", id[:8])
	return nil
}
