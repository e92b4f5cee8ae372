// Package model holds the scoresheet data model: teams, rosters, points,
// games, tie-breaks, and the derived statistics structures.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Team identifies a match side, not an individual player.
type Team int

const (
	TeamNone Team = 0 // unaffiliated: name not on either roster
	TeamA    Team = 1
	TeamB    Team = 2
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return "?"
	}
}

// Opponent returns the other side, or TeamNone for TeamNone.
func (t Team) Opponent() Team {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return TeamNone
	}
}

// ParseTeam maps "A"/"B" to a Team; anything else is TeamNone.
func ParseTeam(s string) Team {
	switch s {
	case "A":
		return TeamA
	case "B":
		return TeamB
	default:
		return TeamNone
	}
}

// Mode is singles (one player per side) or doubles (two per side).
type Mode int

const (
	ModeSingles Mode = 1
	ModeDoubles Mode = 2
)

func (m Mode) String() string {
	if m == ModeDoubles {
		return "doubles"
	}
	return "singles"
}

// ParseMode maps "singles"/"doubles" to a Mode; anything else defaults
// to singles.
func ParseMode(s string) Mode {
	if s == "doubles" {
		return ModeDoubles
	}
	return ModeSingles
}

// Roster is the explicit name-to-team context every attribution decision
// reads from. Names are unique within a match; TeamA/TeamB hold one name
// each in singles, two each in doubles.
type Roster struct {
	Mode  Mode
	TeamA []string
	TeamB []string
}

// TeamOf resolves a player name to its side. Returns TeamNone for the
// empty string and for names no longer on either roster (stale actor or
// returner references after a rename).
func (r Roster) TeamOf(name string) Team {
	if name == "" {
		return TeamNone
	}
	for _, n := range r.TeamA {
		if n == name {
			return TeamA
		}
	}
	for _, n := range r.TeamB {
		if n == name {
			return TeamB
		}
	}
	return TeamNone
}

// Players returns the names on the given side, in roster order.
func (r Roster) Players(t Team) []string {
	switch t {
	case TeamA:
		return r.TeamA
	case TeamB:
		return r.TeamB
	default:
		return nil
	}
}

// SinglesPlayer returns the lone name on a side, or "" when the side is
// empty. Only meaningful in singles mode.
func (r Roster) SinglesPlayer(t Team) string {
	ps := r.Players(t)
	if len(ps) == 0 {
		return ""
	}
	return ps[0]
}

// AllNames returns every rostered name, team A first.
func (r Roster) AllNames() []string {
	names := make([]string, 0, len(r.TeamA)+len(r.TeamB))
	names = append(names, r.TeamA...)
	names = append(names, r.TeamB...)
	return names
}

// Point is one recorded rally outcome. Team and Notation are always
// present; Actor is the player who hit the last shot, Returner the
// doubles player who received the serve, and Server the player who
// served. Server is recorded per point only inside tie-breaks, where
// service rotates point by point.
type Point struct {
	Team     Team
	Notation string
	Actor    string
	Returner string
	Server   string
}

// Box capacities. Games start at 8 slots, tie-breaks at 12; deuce boxes
// are added and removed two at a time and never below the base.
const (
	GameBaseBoxes     = 8
	TieBreakBaseBoxes = 12
	boxStep           = 2
)

// Game is one scoresheet row: a fixed-then-growable sequence of point
// slots, a parallel first-serve-fault flag per slot, the serving side
// for the whole game, and the user-entered game score.
type Game struct {
	Server       Team
	ServerPlayer string // doubles: the specific serving player, "" if not chosen
	Points       []*Point
	ServiceInfo  []bool // true = first serve faulted, point decided on the second
	TotalBoxes   int
	ScoreA       int
	ScoreB       int
}

// NewGame returns an empty game with the base number of boxes and team A
// serving.
func NewGame() *Game {
	return &Game{
		Server:      TeamA,
		Points:      make([]*Point, GameBaseBoxes),
		ServiceInfo: make([]bool, GameBaseBoxes),
		TotalBoxes:  GameBaseBoxes,
	}
}

// AddDeuceBoxes grows the row by two slots.
func (g *Game) AddDeuceBoxes() {
	g.TotalBoxes += boxStep
	for len(g.Points) < g.TotalBoxes {
		g.Points = append(g.Points, nil)
	}
	for len(g.ServiceInfo) < g.TotalBoxes {
		g.ServiceInfo = append(g.ServiceInfo, false)
	}
}

// RemoveDeuceBoxes shrinks the row by two slots, truncating whatever the
// trailing slots held. No-op at the floor.
func (g *Game) RemoveDeuceBoxes() {
	if g.TotalBoxes <= GameBaseBoxes {
		return
	}
	g.TotalBoxes -= boxStep
	g.Points = g.Points[:g.TotalBoxes]
	g.ServiceInfo = g.ServiceInfo[:g.TotalBoxes]
}

// SetPoint records a point at the given slot, overwriting any existing
// point there. Out-of-range indexes, empty notation, and an unset team
// are silently ignored.
func (g *Game) SetPoint(idx int, team Team, code, actor, returner string) {
	if idx < 0 || idx >= g.TotalBoxes {
		return
	}
	if code == "" || (team != TeamA && team != TeamB) {
		return
	}
	g.Points[idx] = &Point{Team: team, Notation: code, Actor: actor, Returner: returner}
}

// ClearPoint empties a slot. Out-of-range is a no-op.
func (g *Game) ClearPoint(idx int) {
	if idx < 0 || idx >= g.TotalBoxes {
		return
	}
	g.Points[idx] = nil
}

// ToggleServiceInfo flips the first-serve-fault flag for a slot.
// Out-of-range is a no-op.
func (g *Game) ToggleServiceInfo(idx int) {
	if idx < 0 || idx >= g.TotalBoxes {
		return
	}
	g.ServiceInfo[idx] = !g.ServiceInfo[idx]
}

// SetServer changes the serving side for the game. Points already
// recorded are not touched; stats computation reads the field as it
// stands, so the sheet's server must match what was true when the
// points were played. Changing sides clears any doubles server
// selection.
func (g *Game) SetServer(team Team) {
	if team != TeamA && team != TeamB {
		return
	}
	if team != g.Server {
		g.ServerPlayer = ""
	}
	g.Server = team
}

// SetServerPlayer records which doubles player serves this game.
func (g *Game) SetServerPlayer(name string) {
	g.ServerPlayer = name
}

// SetScore stores a user-entered game score, clamped to 0–99. The score
// is display-only and independent of the point log.
func (g *Game) SetScore(team Team, n int) {
	if n < 0 {
		n = 0
	}
	if n > 99 {
		n = 99
	}
	switch team {
	case TeamA:
		g.ScoreA = n
	case TeamB:
		g.ScoreB = n
	}
}

// TieBreak is the tie-break analogue of a Game: no per-slot serve-fault
// flags (every tie-break point is treated as resolved on a single
// serve), each point carries its own server, and the running score
// counters track confirmed points.
type TieBreak struct {
	Points     []*Point
	TotalBoxes int
	ScoreA     int
	ScoreB     int
}

// NewTieBreak returns an empty tie-break with the base number of boxes.
func NewTieBreak() *TieBreak {
	return &TieBreak{
		Points:     make([]*Point, TieBreakBaseBoxes),
		TotalBoxes: TieBreakBaseBoxes,
	}
}

// AddDeuceBoxes grows the tie-break by two slots.
func (tb *TieBreak) AddDeuceBoxes() {
	tb.TotalBoxes += boxStep
	for len(tb.Points) < tb.TotalBoxes {
		tb.Points = append(tb.Points, nil)
	}
}

// RemoveDeuceBoxes shrinks by two slots, truncating trailing slots and
// backing their points out of the running score. No-op at the floor.
func (tb *TieBreak) RemoveDeuceBoxes() {
	if tb.TotalBoxes <= TieBreakBaseBoxes {
		return
	}
	tb.TotalBoxes -= boxStep
	for _, p := range tb.Points[tb.TotalBoxes:] {
		tb.uncount(p)
	}
	tb.Points = tb.Points[:tb.TotalBoxes]
}

// SetPoint records a tie-break point, keeping the running score in step:
// overwriting a slot moves its previous point off the counter first.
// Out-of-range indexes, empty notation, and an unset team are silently
// ignored.
func (tb *TieBreak) SetPoint(idx int, team Team, code, actor, returner, server string) {
	if idx < 0 || idx >= tb.TotalBoxes {
		return
	}
	if code == "" || (team != TeamA && team != TeamB) {
		return
	}
	tb.uncount(tb.Points[idx])
	tb.Points[idx] = &Point{Team: team, Notation: code, Actor: actor, Returner: returner, Server: server}
	if team == TeamA {
		tb.ScoreA++
	} else {
		tb.ScoreB++
	}
}

// ClearPoint empties a slot and backs its point out of the running
// score. Out-of-range is a no-op.
func (tb *TieBreak) ClearPoint(idx int) {
	if idx < 0 || idx >= tb.TotalBoxes {
		return
	}
	tb.uncount(tb.Points[idx])
	tb.Points[idx] = nil
}

func (tb *TieBreak) uncount(p *Point) {
	if p == nil {
		return
	}
	switch p.Team {
	case TeamA:
		tb.ScoreA--
	case TeamB:
		tb.ScoreB--
	}
}

// Match is the top-level container: a roster, an ordered list of games,
// and an ordered list of tie-breaks.
type Match struct {
	ID        string
	Title     string
	Roster    Roster
	CreatedAt time.Time
	Games     []*Game
	TieBreaks []*TieBreak
}

// NewMatch creates a match with a fresh ID and one empty game.
func NewMatch(title string, roster Roster) *Match {
	return &Match{
		ID:        uuid.NewString(),
		Title:     title,
		Roster:    roster,
		CreatedAt: time.Now().UTC(),
		Games:     []*Game{NewGame()},
	}
}

// AddGame appends an empty game and returns it.
func (m *Match) AddGame() *Game {
	g := NewGame()
	m.Games = append(m.Games, g)
	return g
}

// AddTieBreak appends an empty tie-break and returns it.
func (m *Match) AddTieBreak() *TieBreak {
	tb := NewTieBreak()
	m.TieBreaks = append(m.TieBreaks, tb)
	return tb
}

// MatchSummary is a lightweight record for the list command.
type MatchSummary struct {
	ID        string
	Title     string
	Mode      Mode
	CreatedAt time.Time
	Games     int
	TieBreaks int
	Points    int
}
