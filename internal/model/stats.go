package model

// TeamTally is a per-side integer counter pair.
type TeamTally struct {
	A int
	B int
}

// Get returns the counter for a side; TeamNone reads as 0.
func (t TeamTally) Get(team Team) int {
	switch team {
	case TeamA:
		return t.A
	case TeamB:
		return t.B
	default:
		return 0
	}
}

// Add bumps the counter for a side. TeamNone is ignored.
func (t *TeamTally) Add(team Team, n int) {
	switch team {
	case TeamA:
		t.A += n
	case TeamB:
		t.B += n
	}
}

// TeamPct is a per-side formatted percentage pair ("63.2%" style).
type TeamPct struct {
	A string
	B string
}

// ShotTally counts points and errors attributed to one shot label.
type ShotTally struct {
	Points int
	Errors int
}

// PlayerDetail is the full per-player statistic record. Raw counters
// come first; the formatted percentage strings are derived from them
// and are always populated (zero denominators render as "0.0%").
type PlayerDetail struct {
	Name string
	Team Team

	PointsMade int
	Errors     int

	FirstServeAttempts  int
	FirstServeMakes     int
	FirstServePoints    int
	SecondServeAttempts int
	SecondServeMakes    int
	SecondServePoints   int

	FirstReturnOpportunities  int
	FirstReturnIn             int
	FirstReturnOut            int
	FirstReturnPointsWon      int
	SecondReturnOpportunities int
	SecondReturnIn            int
	SecondReturnOut           int
	SecondReturnPointsWon     int

	ShotBreakdown map[string]ShotTally

	PointsShareOfTeamPct       string
	FirstServeContributionPct  string
	SecondServeContributionPct string
	FirstServeInPct            string
	SecondServeInPct           string
	FirstReturnInPct           string
	FirstReturnWinPct          string
	SecondReturnInPct          string
	SecondReturnWinPct         string
}

// MatchStats is the complete derived-statistics structure the report
// layer consumes: team totals, team percentages, and the per-player
// detail map keyed by name. Every rostered name has an entry even when
// no point references it.
type MatchStats struct {
	TotalPoints TeamTally
	Errors      TeamTally

	FirstServeAttempts  TeamTally
	FirstServeMakes     TeamTally
	FirstServeWins      TeamTally
	SecondServeAttempts TeamTally
	SecondServeMakes    TeamTally
	SecondServeWins     TeamTally

	FirstServeInPct   TeamPct
	FirstServeWinPct  TeamPct
	SecondServeInPct  TeamPct
	SecondServeWinPct TeamPct

	Players map[string]*PlayerDetail
}
