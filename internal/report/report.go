// Package report renders match statistics as text tables. It only
// consumes the statistics structure and the point log; it never
// computes anything itself.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/courtside/go-court-stats/internal/model"
	"github.com/courtside/go-court-stats/internal/notation"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// TeamLabel names a side for display: the player's name in singles,
// "Team A"/"Team B" in doubles.
func TeamLabel(r model.Roster, t model.Team) string {
	if r.Mode == model.ModeSingles {
		if n := r.SinglesPlayer(t); n != "" {
			return n
		}
	}
	return "Team " + t.String()
}

// PrintMatchHeader prints the one-line match summary.
func PrintMatchHeader(w io.Writer, m *model.Match) {
	fmt.Fprintf(w, "\n%s  |  %s  |  A: %s  |  B: %s  |  ID: %s\n\n",
		m.Title, m.Roster.Mode,
		joinNames(m.Roster.TeamA), joinNames(m.Roster.TeamB), shortID(m.ID))
}

// PrintTeamTable prints the team-level summary: points, errors, and the
// serve tiers with their percentages.
func PrintTeamTable(w io.Writer, m *model.Match, s *model.MatchStats) {
	table := newTable(w)
	table.Header("METRIC", TeamLabel(m.Roster, model.TeamA), TeamLabel(m.Roster, model.TeamB))

	rows := []struct {
		metric string
		a, b   string
	}{
		{"Points Won", strconv.Itoa(s.TotalPoints.A), strconv.Itoa(s.TotalPoints.B)},
		{"Errors (Out/Net)", strconv.Itoa(s.Errors.A), strconv.Itoa(s.Errors.B)},
		{"1st Serve Makes", strconv.Itoa(s.FirstServeMakes.A), strconv.Itoa(s.FirstServeMakes.B)},
		{"1st Serve In %", s.FirstServeInPct.A, s.FirstServeInPct.B},
		{"1st Serve Win %", s.FirstServeWinPct.A, s.FirstServeWinPct.B},
		{"2nd Serve Makes", strconv.Itoa(s.SecondServeMakes.A), strconv.Itoa(s.SecondServeMakes.B)},
		{"2nd Serve In %", s.SecondServeInPct.A, s.SecondServeInPct.B},
		{"2nd Serve Win %", s.SecondServeWinPct.A, s.SecondServeWinPct.B},
	}
	for _, r := range rows {
		table.Append(r.metric, r.a, r.b)
	}
	table.Render()
}

// PrintPlayerServeTable prints per-player point and serve detail, in
// roster order.
func PrintPlayerServeTable(w io.Writer, m *model.Match, s *model.MatchStats) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "PTS", "%TEAM", "ERR",
		"1SRV_ATT", "1SRV_IN%", "1SRV_PTS", "1SRV%",
		"2SRV_ATT", "2SRV_IN%", "2SRV_PTS", "2SRV%")

	for _, name := range m.Roster.AllNames() {
		d := s.Players[name]
		if d == nil {
			continue
		}
		table.Append(
			d.Name,
			d.Team.String(),
			strconv.Itoa(d.PointsMade),
			d.PointsShareOfTeamPct,
			strconv.Itoa(d.Errors),
			strconv.Itoa(d.FirstServeAttempts),
			d.FirstServeInPct,
			strconv.Itoa(d.FirstServePoints),
			d.FirstServeContributionPct,
			strconv.Itoa(d.SecondServeAttempts),
			d.SecondServeInPct,
			strconv.Itoa(d.SecondServePoints),
			d.SecondServeContributionPct,
		)
	}
	table.Render()
}

// PrintPlayerReturnTable prints per-player return detail, in roster
// order.
func PrintPlayerReturnTable(w io.Writer, m *model.Match, s *model.MatchStats) {
	table := newTable(w)
	table.Header("PLAYER", "1RET_OPP", "1RET_IN", "1RET_IN%", "1RET_WON", "1RET_WIN%",
		"2RET_OPP", "2RET_IN", "2RET_IN%", "2RET_WON", "2RET_WIN%")

	for _, name := range m.Roster.AllNames() {
		d := s.Players[name]
		if d == nil {
			continue
		}
		table.Append(
			d.Name,
			strconv.Itoa(d.FirstReturnOpportunities),
			strconv.Itoa(d.FirstReturnIn),
			d.FirstReturnInPct,
			strconv.Itoa(d.FirstReturnPointsWon),
			d.FirstReturnWinPct,
			strconv.Itoa(d.SecondReturnOpportunities),
			strconv.Itoa(d.SecondReturnIn),
			d.SecondReturnInPct,
			strconv.Itoa(d.SecondReturnPointsWon),
			d.SecondReturnWinPct,
		)
	}
	table.Render()
}

// PrintShotBreakdown prints the per-shot-label tallies for every player
// with at least one labelled shot.
func PrintShotBreakdown(w io.Writer, m *model.Match, s *model.MatchStats) {
	table := newTable(w)
	table.Header("PLAYER", "SHOT", "PTS", "ERR")

	for _, name := range m.Roster.AllNames() {
		d := s.Players[name]
		if d == nil || len(d.ShotBreakdown) == 0 {
			continue
		}
		labels := make([]string, 0, len(d.ShotBreakdown))
		for label := range d.ShotBreakdown {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			t := d.ShotBreakdown[label]
			table.Append(d.Name, label, strconv.Itoa(t.Points), strconv.Itoa(t.Errors))
		}
	}
	table.Render()
}

// PrintGameLog prints the recorded points of every game and tie-break
// in slot order, mirroring the scoresheet.
func PrintGameLog(w io.Writer, m *model.Match) {
	for gi, g := range m.Games {
		server := TeamLabel(m.Roster, g.Server)
		if g.ServerPlayer != "" {
			server = g.ServerPlayer
		}
		fmt.Fprintf(w, "Game %d  (server: %s)  %d-%d\n", gi+1, server, g.ScoreA, g.ScoreB)

		table := newTable(w)
		table.Header("#", "WINNER", "NOTATION", "ACTOR", "SERVICE")
		empty := true
		for i, p := range g.Points {
			if p == nil {
				continue
			}
			empty = false
			service := "1st In"
			if g.ServiceInfo[i] {
				service = "2nd In"
				if notation.Classify(p.Notation) == notation.DoubleFault {
					service = "Double Fault"
				}
			}
			table.Append(
				strconv.Itoa(i+1),
				TeamLabel(m.Roster, p.Team),
				p.Notation,
				p.Actor,
				service,
			)
		}
		if empty {
			fmt.Fprintln(w, "  (no points recorded)")
			continue
		}
		table.Render()
	}

	for ti, tb := range m.TieBreaks {
		fmt.Fprintf(w, "Tie-break %d  %d-%d\n", ti+1, tb.ScoreA, tb.ScoreB)

		table := newTable(w)
		table.Header("#", "WINNER", "NOTATION", "ACTOR", "SERVER")
		empty := true
		for i, p := range tb.Points {
			if p == nil {
				continue
			}
			empty = false
			table.Append(
				strconv.Itoa(i+1),
				TeamLabel(m.Roster, p.Team),
				p.Notation,
				p.Actor,
				p.Server,
			)
		}
		if empty {
			fmt.Fprintln(w, "  (no points recorded)")
			continue
		}
		table.Render()
	}
}

// WriteMatchReport writes the complete formatted report: header, team
// summary, game log, and both per-player tables.
func WriteMatchReport(w io.Writer, m *model.Match, s *model.MatchStats, generatedAt time.Time) {
	fmt.Fprintln(w, "MATCH REPORT")
	PrintMatchHeader(w, m)
	fmt.Fprintf(w, "Generated: %s\n\n", generatedAt.Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "Team Summary")
	PrintTeamTable(w, m, s)
	fmt.Fprintln(w)

	PrintGameLog(w, m)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Player Detail")
	PrintPlayerServeTable(w, m, s)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Return Detail")
	PrintPlayerReturnTable(w, m, s)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Shot Breakdown")
	PrintShotBreakdown(w, m, s)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " / "
		}
		out += n
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
