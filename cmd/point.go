package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/model"
	"github.com/courtside/go-court-stats/internal/notation"
)

var (
	pointGame     int
	pointTieBreak int
	pointBox      int
	pointTeam     string
	pointHand     string
	pointShot     string
	pointResult   string
	pointActor    string
	pointReturner string
	pointServer   string
)

var pointCmd = &cobra.Command{
	Use:   "point <id-prefix>",
	Short: "Record a point in a game or tie-break box",
	Long: `Record a point. The notation is composed from --hand (F/B), --shot
(S V R C P L Sr DF Sm Dr), and --result (A=ace, O=out, N=net); at least
one part must be given. Games and tie-breaks are numbered from 1, boxes
from 1 along the row.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoint,
}

func init() {
	pointCmd.Flags().IntVar(&pointGame, "game", 0, "game number (1-based)")
	pointCmd.Flags().IntVar(&pointTieBreak, "tiebreak", 0, "tie-break number (1-based)")
	pointCmd.Flags().IntVar(&pointBox, "box", 0, "box number (1-based)")
	pointCmd.Flags().StringVar(&pointTeam, "team", "", "winning side: A or B")
	pointCmd.Flags().StringVar(&pointHand, "hand", "", "hand marker: F or B")
	pointCmd.Flags().StringVar(&pointShot, "shot", "", "shot-type code")
	pointCmd.Flags().StringVar(&pointResult, "result", "", "result marker: A, O, or N")
	pointCmd.Flags().StringVar(&pointActor, "actor", "", "player who hit the last shot")
	pointCmd.Flags().StringVar(&pointReturner, "returner", "", "doubles: player who received the serve")
	pointCmd.Flags().StringVar(&pointServer, "server", "", "tie-break: player who served this point")
}

func runPoint(cmd *cobra.Command, args []string) error {
	if (pointGame == 0) == (pointTieBreak == 0) {
		return fmt.Errorf("exactly one of --game or --tiebreak is required")
	}
	team := model.ParseTeam(pointTeam)
	if team == model.TeamNone {
		return fmt.Errorf("--team must be A or B")
	}

	code := notation.Compose(pointHand, pointShot, pointResult)
	if code == "" {
		fmt.Fprintln(os.Stderr, "Nothing selected; no point recorded.")
		return nil
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadByPrefix(db, args[0])
	if err != nil || m == nil {
		return err
	}

	if pointGame > 0 {
		g, err := gameAt(m, pointGame)
		if err != nil {
			return err
		}
		idx, err := boxIndex(pointBox, g.TotalBoxes)
		if err != nil {
			return err
		}
		g.SetPoint(idx, team, code, pointActor, pointReturner)
	} else {
		tb, err := tieBreakAt(m, pointTieBreak)
		if err != nil {
			return err
		}
		idx, err := boxIndex(pointBox, tb.TotalBoxes)
		if err != nil {
			return err
		}
		tb.SetPoint(idx, team, code, pointActor, pointReturner, pointServer)
	}

	if err := db.SaveMatch(m); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Recorded %s for %s\n", code, team)
	return nil
}

// boxIndex converts a 1-based box number to a slot index, rejecting
// numbers outside the row so the command can report the miss instead
// of the model silently ignoring the write.
func boxIndex(n, total int) (int, error) {
	if n < 1 || n > total {
		return 0, fmt.Errorf("box %d out of range (row has %d)", n, total)
	}
	return n - 1, nil
}

func gameAt(m *model.Match, n int) (*model.Game, error) {
	if n < 1 || n > len(m.Games) {
		return nil, fmt.Errorf("game %d does not exist (match has %d)", n, len(m.Games))
	}
	return m.Games[n-1], nil
}

func tieBreakAt(m *model.Match, n int) (*model.TieBreak, error) {
	if n < 1 || n > len(m.TieBreaks) {
		return nil, fmt.Errorf("tie-break %d does not exist (match has %d)", n, len(m.TieBreaks))
	}
	return m.TieBreaks[n-1], nil
}
