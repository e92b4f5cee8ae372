// Package aggregator derives match statistics from the recorded point
// log. It is a pure fold: games in stored order, then tie-breaks, slot
// order within each. Every increment is commutative, so ordering only
// matters for reproducibility. Nothing in here fails on data content:
// missing or stale actor/returner/server names degrade to withheld
// credit, never to an error.
package aggregator

import (
	"fmt"

	"github.com/courtside/go-court-stats/internal/model"
	"github.com/courtside/go-court-stats/internal/notation"
)

// Aggregate computes the full statistics structure for a match. The
// result is always fully populated: every rostered player has a detail
// row and every percentage string is formatted, even with no data.
func Aggregate(m *model.Match) *model.MatchStats {
	stats := &model.MatchStats{Players: map[string]*model.PlayerDetail{}}
	if m == nil {
		finalize(stats, model.Roster{})
		return stats
	}

	for _, name := range m.Roster.AllNames() {
		stats.Players[name] = &model.PlayerDetail{
			Name:          name,
			Team:          m.Roster.TeamOf(name),
			ShotBreakdown: map[string]model.ShotTally{},
		}
	}

	for _, g := range m.Games {
		for idx, p := range g.Points {
			if p == nil || idx >= g.TotalBoxes {
				continue
			}
			applyGamePoint(stats, m.Roster, g, idx, p)
		}
	}
	for _, tb := range m.TieBreaks {
		for idx, p := range tb.Points {
			if p == nil || idx >= tb.TotalBoxes {
				continue
			}
			applyTieBreakPoint(stats, m.Roster, p)
		}
	}

	finalize(stats, m.Roster)
	return stats
}

// applyGamePoint attributes one regular-game point. The serving side is
// the game's server field; the serving player is the game's chosen
// doubles server, or in singles the lone player on the serving side.
// The point's slot position selects the serve tier via the game's
// fault flags.
func applyGamePoint(s *model.MatchStats, r model.Roster, g *model.Game, idx int, p *model.Point) {
	out := notation.Classify(p.Notation)
	applyCommon(s, r, p, out)

	servingPlayer := g.ServerPlayer
	if servingPlayer == "" && r.Mode == model.ModeSingles {
		servingPlayer = r.SinglesPlayer(g.Server)
	}
	firstServeGood := !g.ServiceInfo[idx]
	applyServe(s, r, p, out, g.Server, servingPlayer, firstServeGood)
}

// applyTieBreakPoint attributes one tie-break point. The server is
// recorded on the point itself; if it is missing or no longer resolves
// to a side, all serve and return attribution is skipped while team
// totals, team errors, and actor credit still apply. Tie-break serves
// have no second tier.
func applyTieBreakPoint(s *model.MatchStats, r model.Roster, p *model.Point) {
	out := notation.Classify(p.Notation)
	applyCommon(s, r, p, out)

	if p.Server == "" {
		return
	}
	serverTeam := r.TeamOf(p.Server)
	if serverTeam == model.TeamNone {
		return
	}
	applyServe(s, r, p, out, serverTeam, p.Server, true)
}

// applyCommon handles the attribution every point gets regardless of
// serve context: team totals, the team error charged to the losing
// side, and actor credit.
func applyCommon(s *model.MatchStats, r model.Roster, p *model.Point, out notation.Outcome) {
	s.TotalPoints.Add(p.Team, 1)
	if out.IsError() {
		s.Errors.Add(p.Team.Opponent(), 1)
	}

	if p.Actor == "" {
		return
	}
	d := s.Players[p.Actor]
	if d == nil {
		// Stale actor reference: credit withheld.
		return
	}
	label := notation.ExtractShotLabel(p.Notation)
	if r.TeamOf(p.Actor) == p.Team {
		d.PointsMade++
		t := d.ShotBreakdown[label]
		t.Points++
		d.ShotBreakdown[label] = t
	}
	// The actor performed the final action, so an error notation is
	// charged to them whichever side the point went to.
	if out.IsError() {
		d.Errors++
		t := d.ShotBreakdown[label]
		t.Errors++
		d.ShotBreakdown[label] = t
	}
}

// applyServe handles serve-tier counters for both the serving team and
// the serving player (when resolved), then return attribution for the
// receiving side. A double fault ends attribution before any return
// stats: the serve was never delivered.
func applyServe(s *model.MatchStats, r model.Roster, p *model.Point, out notation.Outcome, serverTeam model.Team, servingPlayer string, firstServeGood bool) {
	receiverTeam := serverTeam.Opponent()
	var sd *model.PlayerDetail
	if servingPlayer != "" {
		sd = s.Players[servingPlayer]
	}

	s.FirstServeAttempts.Add(serverTeam, 1)
	if sd != nil {
		sd.FirstServeAttempts++
	}

	secondTier := !firstServeGood
	if firstServeGood {
		s.FirstServeMakes.Add(serverTeam, 1)
		if sd != nil {
			sd.FirstServeMakes++
		}
		if p.Team == serverTeam {
			s.FirstServeWins.Add(serverTeam, 1)
			if sd != nil {
				sd.FirstServePoints++
			}
		}
	} else {
		s.SecondServeAttempts.Add(serverTeam, 1)
		if sd != nil {
			sd.SecondServeAttempts++
		}
		if out == notation.DoubleFault {
			// Both serves missed: no make, no return ever happened.
			return
		}
		s.SecondServeMakes.Add(serverTeam, 1)
		if sd != nil {
			sd.SecondServeMakes++
		}
		if p.Team == serverTeam {
			s.SecondServeWins.Add(serverTeam, 1)
			if sd != nil {
				sd.SecondServePoints++
			}
		}
	}
	if out == notation.DoubleFault {
		return
	}

	applyReturn(s, r, p, out, receiverTeam, secondTier)
}

// applyReturn credits return opportunities on a delivered serve. In
// doubles the recorded returner gets the credit; without one, both
// receiving players share it. In singles the lone receiver is implied.
func applyReturn(s *model.MatchStats, r model.Roster, p *model.Point, out notation.Outcome, receiverTeam model.Team, secondTier bool) {
	var names []string
	switch {
	case r.Mode == model.ModeDoubles && p.Returner != "":
		names = []string{p.Returner}
	case r.Mode == model.ModeSingles:
		if n := r.SinglesPlayer(receiverTeam); n != "" {
			names = []string{n}
		}
	default:
		names = r.Players(receiverTeam)
	}

	won := p.Team == receiverTeam
	for _, name := range names {
		d := s.Players[name]
		if d == nil {
			continue
		}
		if secondTier {
			d.SecondReturnOpportunities++
			if out == notation.Ace {
				d.SecondReturnOut++
			} else {
				d.SecondReturnIn++
				if won {
					d.SecondReturnPointsWon++
				}
			}
		} else {
			d.FirstReturnOpportunities++
			if out == notation.Ace {
				d.FirstReturnOut++
			} else {
				d.FirstReturnIn++
				if won {
					d.FirstReturnPointsWon++
				}
			}
		}
	}
}

// finalize renders every derived ratio. Division by zero is never an
// error: a zero denominator yields the literal "0.0%".
func finalize(s *model.MatchStats, r model.Roster) {
	s.FirstServeInPct = teamPct(s.FirstServeMakes, s.FirstServeAttempts)
	s.FirstServeWinPct = teamPct(s.FirstServeWins, s.FirstServeMakes)
	s.SecondServeInPct = teamPct(s.SecondServeMakes, s.SecondServeAttempts)
	s.SecondServeWinPct = teamPct(s.SecondServeWins, s.SecondServeMakes)

	for name, d := range s.Players {
		team := r.TeamOf(name)
		d.PointsShareOfTeamPct = pct(d.PointsMade, s.TotalPoints.Get(team))
		d.FirstServeContributionPct = pct(d.FirstServePoints, d.FirstServeAttempts)
		d.SecondServeContributionPct = pct(d.SecondServePoints, d.SecondServeAttempts)
		d.FirstServeInPct = pct(d.FirstServeMakes, d.FirstServeAttempts)
		d.SecondServeInPct = pct(d.SecondServeMakes, d.SecondServeAttempts)
		d.FirstReturnInPct = pct(d.FirstReturnIn, d.FirstReturnOpportunities)
		d.FirstReturnWinPct = pct(d.FirstReturnPointsWon, d.FirstReturnOpportunities)
		d.SecondReturnInPct = pct(d.SecondReturnIn, d.SecondReturnOpportunities)
		d.SecondReturnWinPct = pct(d.SecondReturnPointsWon, d.SecondReturnOpportunities)
	}
}

func pct(num, den int) string {
	if den == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(num)/float64(den)*100)
}

func teamPct(num, den model.TeamTally) model.TeamPct {
	return model.TeamPct{A: pct(num.A, den.A), B: pct(num.B, den.B)}
}
