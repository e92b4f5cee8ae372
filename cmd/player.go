package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/aggregator"
	"github.com/courtside/go-court-stats/internal/model"
)

var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Cross-match summary for one or more players",
	Long:  "Sum each player's point, serve, and return counters across every stored match they appear in, matched by roster name.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

// playerTotals accumulates one player's counters across matches.
type playerTotals struct {
	name    string
	matches int
	detail  model.PlayerDetail
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sums, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	totals := make([]*playerTotals, 0, len(args))
	byName := make(map[string]*playerTotals, len(args))
	for _, name := range args {
		t := &playerTotals{name: name}
		totals = append(totals, t)
		byName[name] = t
	}

	for _, sum := range sums {
		m, err := db.LoadMatch(sum.ID)
		if err != nil {
			return fmt.Errorf("load match %s: %w", sum.ID, err)
		}
		if m == nil {
			continue
		}
		stats := aggregator.Aggregate(m)
		for name, t := range byName {
			d := stats.Players[name]
			if d == nil {
				continue
			}
			t.matches++
			addDetail(&t.detail, d)
		}
	}

	found := false
	for _, t := range totals {
		if t.matches == 0 {
			fmt.Fprintf(os.Stderr, "No data found for player %q\n", t.name)
			continue
		}
		found = true
	}
	if !found {
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("PLAYER", "MATCHES", "PTS", "ERR",
		"1SRV_ATT", "1SRV_IN%", "1SRV_PTS",
		"2SRV_ATT", "2SRV_IN%",
		"1RET_OPP", "1RET_IN%", "1RET_WON")

	for _, t := range totals {
		if t.matches == 0 {
			continue
		}
		d := &t.detail
		table.Append(
			t.name,
			strconv.Itoa(t.matches),
			strconv.Itoa(d.PointsMade),
			strconv.Itoa(d.Errors),
			strconv.Itoa(d.FirstServeAttempts),
			ratioPct(d.FirstServeMakes, d.FirstServeAttempts),
			strconv.Itoa(d.FirstServePoints),
			strconv.Itoa(d.SecondServeAttempts),
			ratioPct(d.SecondServeMakes, d.SecondServeAttempts),
			strconv.Itoa(d.FirstReturnOpportunities),
			ratioPct(d.FirstReturnIn, d.FirstReturnOpportunities),
			strconv.Itoa(d.FirstReturnPointsWon),
		)
	}
	table.Render()
	return nil
}

func addDetail(dst, src *model.PlayerDetail) {
	dst.PointsMade += src.PointsMade
	dst.Errors += src.Errors
	dst.FirstServeAttempts += src.FirstServeAttempts
	dst.FirstServeMakes += src.FirstServeMakes
	dst.FirstServePoints += src.FirstServePoints
	dst.SecondServeAttempts += src.SecondServeAttempts
	dst.SecondServeMakes += src.SecondServeMakes
	dst.SecondServePoints += src.SecondServePoints
	dst.FirstReturnOpportunities += src.FirstReturnOpportunities
	dst.FirstReturnIn += src.FirstReturnIn
	dst.FirstReturnOut += src.FirstReturnOut
	dst.FirstReturnPointsWon += src.FirstReturnPointsWon
	dst.SecondReturnOpportunities += src.SecondReturnOpportunities
	dst.SecondReturnIn += src.SecondReturnIn
	dst.SecondReturnOut += src.SecondReturnOut
	dst.SecondReturnPointsWon += src.SecondReturnPointsWon
}

func ratioPct(num, den int) string {
	if den == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(num)/float64(den)*100)
}
