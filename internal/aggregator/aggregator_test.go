package aggregator

import (
	"regexp"
	"testing"

	"github.com/courtside/go-court-stats/internal/model"
)

// singlesMatch builds a match with Ana on side A and Bea on side B and
// one empty game.
func singlesMatch(t *testing.T) *model.Match {
	t.Helper()
	return model.NewMatch("test", model.Roster{
		Mode:  model.ModeSingles,
		TeamA: []string{"Ana"},
		TeamB: []string{"Bea"},
	})
}

// doublesMatch builds a doubles match: Ana/Aldo vs Bea/Bruno.
func doublesMatch(t *testing.T) *model.Match {
	t.Helper()
	return model.NewMatch("test", model.Roster{
		Mode:  model.ModeDoubles,
		TeamA: []string{"Ana", "Aldo"},
		TeamB: []string{"Bea", "Bruno"},
	})
}

func TestFirstServeAce(t *testing.T) {
	m := singlesMatch(t)
	m.Games[0].SetPoint(0, model.TeamA, "FSA", "", "")

	s := Aggregate(m)

	if s.TotalPoints.A != 1 || s.TotalPoints.B != 0 {
		t.Errorf("total points: want 1-0, got %d-%d", s.TotalPoints.A, s.TotalPoints.B)
	}
	if s.FirstServeAttempts.A != 1 || s.FirstServeMakes.A != 1 || s.FirstServeWins.A != 1 {
		t.Errorf("serve counters: att=%d makes=%d wins=%d, all want 1",
			s.FirstServeAttempts.A, s.FirstServeMakes.A, s.FirstServeWins.A)
	}
	if s.Errors.A != 0 || s.Errors.B != 0 {
		t.Errorf("errors: want 0-0, got %d-%d", s.Errors.A, s.Errors.B)
	}

	// Singles: the lone player on the serving side gets individual credit.
	ana := s.Players["Ana"]
	if ana.FirstServeAttempts != 1 || ana.FirstServeMakes != 1 || ana.FirstServePoints != 1 {
		t.Errorf("Ana serve detail: att=%d makes=%d pts=%d, all want 1",
			ana.FirstServeAttempts, ana.FirstServeMakes, ana.FirstServePoints)
	}

	// The receiver faced an ace: opportunity counted, return out.
	bea := s.Players["Bea"]
	if bea.FirstReturnOpportunities != 1 || bea.FirstReturnOut != 1 || bea.FirstReturnIn != 0 {
		t.Errorf("Bea return detail: opp=%d out=%d in=%d, want 1 1 0",
			bea.FirstReturnOpportunities, bea.FirstReturnOut, bea.FirstReturnIn)
	}
}

func TestErrorChargedToLoserAndActor(t *testing.T) {
	m := singlesMatch(t)
	// B wins the point on an out-error, so the losing side A is charged,
	// and so is the recorded actor.
	m.Games[0].SetPoint(1, model.TeamB, "BVO", "Ana", "")

	s := Aggregate(m)

	if s.Errors.A != 1 || s.Errors.B != 0 {
		t.Errorf("team errors: want 1-0, got %d-%d", s.Errors.A, s.Errors.B)
	}
	ana := s.Players["Ana"]
	if ana.Errors != 1 {
		t.Errorf("Ana errors: want 1, got %d", ana.Errors)
	}
	if ana.PointsMade != 0 {
		t.Errorf("Ana was on the losing side: pointsMade want 0, got %d", ana.PointsMade)
	}
	if tally := ana.ShotBreakdown["BV"]; tally.Errors != 1 || tally.Points != 0 {
		t.Errorf("shot tally for BV: want 0 pts / 1 err, got %+v", tally)
	}
}

func TestActorPointAndShotLabel(t *testing.T) {
	m := singlesMatch(t)
	m.Games[0].SetPoint(0, model.TeamA, "FSA", "Ana", "")

	s := Aggregate(m)

	ana := s.Players["Ana"]
	if ana.PointsMade != 1 {
		t.Errorf("Ana pointsMade: want 1, got %d", ana.PointsMade)
	}
	if tally := ana.ShotBreakdown["FS"]; tally.Points != 1 {
		t.Errorf("shot tally for FS: want 1 point, got %+v", tally)
	}
}

func TestNoActorAwardsNoIndividualPoints(t *testing.T) {
	m := singlesMatch(t)
	m.Games[0].SetPoint(0, model.TeamA, "FS", "", "")

	s := Aggregate(m)

	for name, d := range s.Players {
		if d.PointsMade != 0 {
			t.Errorf("%s: pointsMade want 0 without an actor, got %d", name, d.PointsMade)
		}
	}
}

func TestSecondServeTier(t *testing.T) {
	m := singlesMatch(t)
	g := m.Games[0]
	g.ToggleServiceInfo(0) // first serve faulted
	g.SetPoint(0, model.TeamA, "FS", "", "")

	s := Aggregate(m)

	if s.FirstServeAttempts.A != 1 || s.FirstServeMakes.A != 0 {
		t.Errorf("first tier: att=%d makes=%d, want 1 0", s.FirstServeAttempts.A, s.FirstServeMakes.A)
	}
	if s.SecondServeAttempts.A != 1 || s.SecondServeMakes.A != 1 || s.SecondServeWins.A != 1 {
		t.Errorf("second tier: att=%d makes=%d wins=%d, all want 1",
			s.SecondServeAttempts.A, s.SecondServeMakes.A, s.SecondServeWins.A)
	}

	// The return came after the second serve.
	bea := s.Players["Bea"]
	if bea.SecondReturnOpportunities != 1 || bea.SecondReturnIn != 1 {
		t.Errorf("Bea second-tier return: opp=%d in=%d, want 1 1",
			bea.SecondReturnOpportunities, bea.SecondReturnIn)
	}
	if bea.FirstReturnOpportunities != 0 {
		t.Errorf("Bea first-tier return: want 0, got %d", bea.FirstReturnOpportunities)
	}
}

func TestDoubleFaultSuppressesMakesAndReturns(t *testing.T) {
	m := singlesMatch(t)
	g := m.Games[0]
	g.ToggleServiceInfo(0)
	g.SetPoint(0, model.TeamB, "DF", "", "")

	s := Aggregate(m)

	if s.TotalPoints.B != 1 {
		t.Errorf("the receiver still wins the point: want 1, got %d", s.TotalPoints.B)
	}
	if s.SecondServeAttempts.A != 1 {
		t.Errorf("second serve attempt: want 1, got %d", s.SecondServeAttempts.A)
	}
	if s.SecondServeMakes.A != 0 || s.SecondServeWins.A != 0 {
		t.Errorf("double fault must not count a make or win: makes=%d wins=%d",
			s.SecondServeMakes.A, s.SecondServeWins.A)
	}
	bea := s.Players["Bea"]
	if bea.FirstReturnOpportunities != 0 || bea.SecondReturnOpportunities != 0 {
		t.Errorf("no return ever happened: opp=%d/%d",
			bea.FirstReturnOpportunities, bea.SecondReturnOpportunities)
	}
	if s.Errors.A != 0 {
		t.Errorf("a double fault is not an out/net error: want 0, got %d", s.Errors.A)
	}
}

func TestReturnPointWon(t *testing.T) {
	m := singlesMatch(t)
	m.Games[0].SetPoint(0, model.TeamB, "BL", "", "")

	s := Aggregate(m)

	bea := s.Players["Bea"]
	if bea.FirstReturnIn != 1 || bea.FirstReturnPointsWon != 1 {
		t.Errorf("Bea return: in=%d won=%d, want 1 1", bea.FirstReturnIn, bea.FirstReturnPointsWon)
	}
}

func TestDoublesReturnerCredit(t *testing.T) {
	m := doublesMatch(t)
	g := m.Games[0]
	g.SetServerPlayer("Ana")
	g.SetPoint(0, model.TeamA, "FSA", "", "Bea")

	s := Aggregate(m)

	if s.Players["Bea"].FirstReturnOpportunities != 1 {
		t.Errorf("recorded returner should get the opportunity, got %d",
			s.Players["Bea"].FirstReturnOpportunities)
	}
	if s.Players["Bruno"].FirstReturnOpportunities != 0 {
		t.Errorf("partner should get nothing when a returner is recorded, got %d",
			s.Players["Bruno"].FirstReturnOpportunities)
	}
	if s.Players["Ana"].FirstServeAttempts != 1 {
		t.Errorf("chosen doubles server should get serve credit, got %d",
			s.Players["Ana"].FirstServeAttempts)
	}
}

func TestDoublesReturnerFallbackCreditsBoth(t *testing.T) {
	m := doublesMatch(t)
	g := m.Games[0]
	g.SetServerPlayer("Ana")
	g.SetPoint(0, model.TeamA, "FS", "", "")

	s := Aggregate(m)

	for _, name := range []string{"Bea", "Bruno"} {
		if s.Players[name].FirstReturnOpportunities != 1 {
			t.Errorf("%s: without a recorded returner both receivers share credit, got %d",
				name, s.Players[name].FirstReturnOpportunities)
		}
	}
}

func TestDoublesWithoutServerPlayerSkipsIndividualServe(t *testing.T) {
	m := doublesMatch(t)
	m.Games[0].SetPoint(0, model.TeamA, "FS", "", "")

	s := Aggregate(m)

	if s.FirstServeAttempts.A != 1 {
		t.Errorf("team serve credit still applies: want 1, got %d", s.FirstServeAttempts.A)
	}
	for name, d := range s.Players {
		if d.FirstServeAttempts != 0 {
			t.Errorf("%s: no individual serve credit without a chosen server, got %d",
				name, d.FirstServeAttempts)
		}
	}
}

func TestTieBreakAttribution(t *testing.T) {
	m := singlesMatch(t)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamA, "FR", "", "", "Bea")

	s := Aggregate(m)

	// Bea served and lost the point; tie-breaks only have a first tier.
	if s.FirstServeAttempts.B != 1 || s.FirstServeMakes.B != 1 || s.FirstServeWins.B != 0 {
		t.Errorf("tie-break serve: att=%d makes=%d wins=%d, want 1 1 0",
			s.FirstServeAttempts.B, s.FirstServeMakes.B, s.FirstServeWins.B)
	}
	if s.SecondServeAttempts.B != 0 {
		t.Errorf("tie-breaks have no second tier, got %d attempts", s.SecondServeAttempts.B)
	}
	ana := s.Players["Ana"]
	if ana.FirstReturnOpportunities != 1 || ana.FirstReturnIn != 1 || ana.FirstReturnPointsWon != 1 {
		t.Errorf("Ana tie-break return: opp=%d in=%d won=%d, all want 1",
			ana.FirstReturnOpportunities, ana.FirstReturnIn, ana.FirstReturnPointsWon)
	}
}

func TestTieBreakReturnerCredit(t *testing.T) {
	m := doublesMatch(t)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamA, "FR", "", "Ana", "Bea")

	s := Aggregate(m)

	ana := s.Players["Ana"]
	if ana.FirstReturnOpportunities != 1 || ana.FirstReturnIn != 1 || ana.FirstReturnPointsWon != 1 {
		t.Errorf("Ana return credit: opp=%d in=%d won=%d, all want 1",
			ana.FirstReturnOpportunities, ana.FirstReturnIn, ana.FirstReturnPointsWon)
	}
	aldo := s.Players["Aldo"]
	if aldo.FirstReturnOpportunities != 0 {
		t.Errorf("Aldo must not share Ana's return, got %d opportunities",
			aldo.FirstReturnOpportunities)
	}
}

func TestTieBreakDoubleFault(t *testing.T) {
	m := singlesMatch(t)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamB, "DF", "", "", "Ana")

	s := Aggregate(m)

	if s.TotalPoints.B != 1 {
		t.Errorf("the point still goes to the receiving team: want 1, got %d", s.TotalPoints.B)
	}
	// The attempt lands and the serve is in play before the fault is
	// charged; only the win is withheld.
	if s.FirstServeAttempts.A != 1 || s.FirstServeMakes.A != 1 || s.FirstServeWins.A != 0 {
		t.Errorf("serve counters: att=%d makes=%d wins=%d, want 1 1 0",
			s.FirstServeAttempts.A, s.FirstServeMakes.A, s.FirstServeWins.A)
	}
	if s.SecondServeAttempts.A != 0 {
		t.Errorf("no second tier in a tie-break, got %d attempts", s.SecondServeAttempts.A)
	}
	bea := s.Players["Bea"]
	if bea.FirstReturnOpportunities != 0 || bea.FirstReturnIn != 0 {
		t.Errorf("a double fault is no return chance: opp=%d in=%d",
			bea.FirstReturnOpportunities, bea.FirstReturnIn)
	}
	if s.Errors.A != 0 || s.Errors.B != 0 {
		// DF carries no Out/Net marker, so neither side is charged an error.
		t.Errorf("unexpected error credit: A=%d B=%d", s.Errors.A, s.Errors.B)
	}
}

func TestTieBreakWithoutServerKeepsTeamTotalsOnly(t *testing.T) {
	m := singlesMatch(t)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamA, "FS", "", "", "")

	s := Aggregate(m)

	if s.TotalPoints.A != 1 {
		t.Errorf("team totals still apply: want 1, got %d", s.TotalPoints.A)
	}
	if s.FirstServeAttempts.A != 0 || s.FirstServeAttempts.B != 0 {
		t.Errorf("serve counters must stay zero: got %d/%d",
			s.FirstServeAttempts.A, s.FirstServeAttempts.B)
	}
	for name, d := range s.Players {
		if d.FirstServeAttempts != 0 || d.FirstReturnOpportunities != 0 {
			t.Errorf("%s: no serve/return credit without a server", name)
		}
	}
}

func TestTieBreakUnaffiliatedServerSkipsServeStats(t *testing.T) {
	m := singlesMatch(t)
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamB, "FS", "", "", "Ghost")

	s := Aggregate(m)

	if s.TotalPoints.B != 1 {
		t.Errorf("team totals still apply: want 1, got %d", s.TotalPoints.B)
	}
	if s.FirstServeAttempts.A != 0 || s.FirstServeAttempts.B != 0 {
		t.Error("an unresolvable server name must not produce serve credit")
	}
}

func TestStaleActorWithheld(t *testing.T) {
	m := singlesMatch(t)
	m.Games[0].SetPoint(0, model.TeamA, "FSO", "Ghost", "")

	s := Aggregate(m)

	if s.TotalPoints.A != 1 || s.Errors.B != 1 {
		t.Errorf("team attribution still applies: points=%d errorsB=%d", s.TotalPoints.A, s.Errors.B)
	}
	if _, ok := s.Players["Ghost"]; ok {
		t.Error("unrostered names must not appear in the player map")
	}
}

func TestTotalPointsMatchesRecordedCount(t *testing.T) {
	m := singlesMatch(t)
	g := m.Games[0]
	g.SetPoint(0, model.TeamA, "FS", "", "")
	g.SetPoint(1, model.TeamB, "BS", "", "")
	g.SetPoint(2, model.TeamA, "FL", "", "")
	g2 := m.AddGame()
	g2.SetServer(model.TeamB)
	g2.SetPoint(0, model.TeamB, "SrA", "", "")
	tb := m.AddTieBreak()
	tb.SetPoint(0, model.TeamA, "FS", "", "", "Ana")
	tb.SetPoint(1, model.TeamB, "FS", "", "", "Bea")

	s := Aggregate(m)

	recorded := 0
	for _, g := range m.Games {
		for _, p := range g.Points {
			if p != nil {
				recorded++
			}
		}
	}
	for _, tb := range m.TieBreaks {
		for _, p := range tb.Points {
			if p != nil {
				recorded++
			}
		}
	}
	if got := s.TotalPoints.A + s.TotalPoints.B; got != recorded {
		t.Errorf("total points %d must equal recorded points %d", got, recorded)
	}

	// Every game point in this match feeds a first-serve attempt.
	gamePoints := 4
	if got := s.FirstServeAttempts.A + s.FirstServeAttempts.B; got < gamePoints {
		t.Errorf("first-serve attempts %d must cover the %d game points", got, gamePoints)
	}
}

func TestPointsShareOfTeam(t *testing.T) {
	m := doublesMatch(t)
	g := m.Games[0]
	g.SetPoint(0, model.TeamA, "FS", "Ana", "")
	g.SetPoint(1, model.TeamA, "BS", "Aldo", "")

	s := Aggregate(m)

	if got := s.Players["Ana"].PointsShareOfTeamPct; got != "50.0%" {
		t.Errorf("Ana share: want 50.0%%, got %s", got)
	}
}

var pctRe = regexp.MustCompile(`^\d+\.\d%$`)

func TestPercentageStringsAlwaysFormatted(t *testing.T) {
	m := doublesMatch(t)
	g := m.Games[0]
	g.SetServerPlayer("Ana")
	g.ToggleServiceInfo(1)
	g.SetPoint(0, model.TeamA, "FSA", "Ana", "Bea")
	g.SetPoint(1, model.TeamB, "BVO", "Aldo", "Bruno")

	s := Aggregate(m)

	teamPcts := []string{
		s.FirstServeInPct.A, s.FirstServeInPct.B,
		s.FirstServeWinPct.A, s.FirstServeWinPct.B,
		s.SecondServeInPct.A, s.SecondServeInPct.B,
		s.SecondServeWinPct.A, s.SecondServeWinPct.B,
	}
	for i, p := range teamPcts {
		if !pctRe.MatchString(p) {
			t.Errorf("team pct %d: %q not in <number>.<digit>%% form", i, p)
		}
	}
	for name, d := range s.Players {
		for _, p := range []string{
			d.PointsShareOfTeamPct,
			d.FirstServeContributionPct, d.SecondServeContributionPct,
			d.FirstServeInPct, d.SecondServeInPct,
			d.FirstReturnInPct, d.FirstReturnWinPct,
			d.SecondReturnInPct, d.SecondReturnWinPct,
		} {
			if !pctRe.MatchString(p) {
				t.Errorf("%s: %q not in <number>.<digit>%% form", name, p)
			}
		}
	}
}

func TestZeroDataStillFullyPopulated(t *testing.T) {
	m := doublesMatch(t)

	s := Aggregate(m)

	if len(s.Players) != 4 {
		t.Fatalf("every rostered player gets a row: want 4, got %d", len(s.Players))
	}
	for name, d := range s.Players {
		if d.PointsShareOfTeamPct != "0.0%" || d.FirstReturnWinPct != "0.0%" {
			t.Errorf("%s: zero denominators must render as 0.0%%, got %q / %q",
				name, d.PointsShareOfTeamPct, d.FirstReturnWinPct)
		}
	}
	if s.FirstServeInPct.A != "0.0%" {
		t.Errorf("team pct with no data: want 0.0%%, got %s", s.FirstServeInPct.A)
	}
}

func TestAggregateNilMatch(t *testing.T) {
	s := Aggregate(nil)
	if s == nil || s.Players == nil {
		t.Fatal("nil match must still produce a populated structure")
	}
	if s.FirstServeInPct.A != "0.0%" {
		t.Errorf("want 0.0%%, got %s", s.FirstServeInPct.A)
	}
}

func TestPct(t *testing.T) {
	cases := []struct {
		num, den int
		want     string
	}{
		{0, 0, "0.0%"},
		{1, 3, "33.3%"},
		{2, 2, "100.0%"},
		{1, 2, "50.0%"},
		{0, 5, "0.0%"},
	}
	for _, c := range cases {
		if got := pct(c.num, c.den); got != c.want {
			t.Errorf("pct(%d,%d): want %q, got %q", c.num, c.den, c.want, got)
		}
	}
}
