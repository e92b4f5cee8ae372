package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/courtside/go-court-stats/internal/aggregator"
	"github.com/courtside/go-court-stats/internal/model"
)

func reportMatch(t *testing.T) *model.Match {
	t.Helper()
	m := model.NewMatch("club final", model.Roster{
		Mode:  model.ModeDoubles,
		TeamA: []string{"Ana", "Aldo"},
		TeamB: []string{"Bea", "Bruno"},
	})
	g := m.Games[0]
	g.SetServerPlayer("Ana")
	g.ToggleServiceInfo(1)
	g.ToggleServiceInfo(2)
	g.SetPoint(0, model.TeamA, "FSA", "Ana", "Bea")
	g.SetPoint(1, model.TeamB, "BVO", "Aldo", "Bruno")
	g.SetPoint(2, model.TeamB, "DF", "", "")
	g.SetScore(model.TeamA, 15)
	g.SetScore(model.TeamB, 30)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamA, "FL", "Aldo", "Aldo", "Bea")
	return m
}

func TestTeamLabel(t *testing.T) {
	singles := model.Roster{Mode: model.ModeSingles, TeamA: []string{"Ana"}, TeamB: []string{"Bea"}}
	if got := TeamLabel(singles, model.TeamA); got != "Ana" {
		t.Errorf("singles label: want Ana, got %s", got)
	}
	doubles := model.Roster{Mode: model.ModeDoubles, TeamA: []string{"Ana", "Aldo"}, TeamB: []string{"Bea", "Bruno"}}
	if got := TeamLabel(doubles, model.TeamB); got != "Team B" {
		t.Errorf("doubles label: want Team B, got %s", got)
	}
	if got := TeamLabel(model.Roster{Mode: model.ModeSingles}, model.TeamA); got != "Team A" {
		t.Errorf("empty roster falls back to the side name, got %s", got)
	}
}

func TestWriteMatchReportContent(t *testing.T) {
	m := reportMatch(t)
	s := aggregator.Aggregate(m)

	var buf bytes.Buffer
	generated := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	WriteMatchReport(&buf, m, s, generated)
	out := buf.String()

	for _, want := range []string{
		"club final",
		"Generated: 2026-05-01 12:30",
		"Game 1", "(server: Ana)", "15-30",
		"Tie-break 1", "1-0",
		"Ana", "Aldo", "Bea", "Bruno",
		"1SRV_ATT", "1RET_OPP",
		"1st In", "2nd In", "Double Fault",
		"FSA", "BVO",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteMatchReportSectionOrder(t *testing.T) {
	m := reportMatch(t)
	s := aggregator.Aggregate(m)

	var buf bytes.Buffer
	WriteMatchReport(&buf, m, s, time.Now())

	sections := []string{
		"MATCH REPORT",
		"Team Summary",
		"Game 1",
		"Tie-break 1",
		"Player Detail",
		"Return Detail",
		"Shot Breakdown",
	}
	var got []string
	for _, line := range strings.Split(buf.String(), "\n") {
		for _, sec := range sections {
			if strings.HasPrefix(line, sec) {
				got = append(got, sec)
			}
		}
	}
	want := strings.Join(sections, "\n")
	if strings.Join(got, "\n") != want {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(want),
			B:        difflib.SplitLines(strings.Join(got, "\n")),
			FromFile: "Expected",
			ToFile:   "Actual",
			Context:  3,
		})
		t.Errorf("section order mismatch:\n%s", diff)
	}
}

func TestPrintTeamTableValues(t *testing.T) {
	m := reportMatch(t)
	s := aggregator.Aggregate(m)

	var buf bytes.Buffer
	PrintTeamTable(&buf, m, s)
	out := buf.String()

	for _, want := range []string{
		"Team A", "Team B",
		"Points Won", "Errors (Out/Net)",
		"1st Serve In %", "2nd Serve Win %",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("team table missing %q", want)
		}
	}
}

func TestPrintGameLogEmptyGame(t *testing.T) {
	m := model.NewMatch("fresh", model.Roster{
		Mode:  model.ModeSingles,
		TeamA: []string{"Ana"},
		TeamB: []string{"Bea"},
	})

	var buf bytes.Buffer
	PrintGameLog(&buf, m)
	out := buf.String()

	if !strings.Contains(out, "Game 1") {
		t.Error("game heading missing")
	}
	if !strings.Contains(out, "(no points recorded)") {
		t.Error("empty game placeholder missing")
	}
	if !strings.Contains(out, "(server: Ana)") {
		t.Errorf("singles server should be named: %s", out)
	}
}

func TestPrintShotBreakdownSortsLabels(t *testing.T) {
	m := model.NewMatch("order", model.Roster{
		Mode:  model.ModeSingles,
		TeamA: []string{"Ana"},
		TeamB: []string{"Bea"},
	})
	g := m.Games[0]
	g.SetPoint(0, model.TeamA, "FV", "Ana", "")
	g.SetPoint(1, model.TeamA, "BS", "Ana", "")

	var buf bytes.Buffer
	PrintShotBreakdown(&buf, m, aggregator.Aggregate(m))
	out := buf.String()

	bs := strings.Index(out, "BS")
	fv := strings.Index(out, "FV")
	if bs < 0 || fv < 0 {
		t.Fatalf("labels missing from breakdown:\n%s", out)
	}
	if bs > fv {
		t.Errorf("labels must be sorted: BS at %d after FV at %d", bs, fv)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("want 01234567, got %s", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short IDs pass through, got %s", got)
	}
}

func TestJoinNames(t *testing.T) {
	if got := joinNames([]string{"Ana", "Aldo"}); got != "Ana / Aldo" {
		t.Errorf("want %q, got %q", "Ana / Aldo", got)
	}
	if got := joinNames(nil); got != "" {
		t.Errorf("want empty, got %q", got)
	}
}
