package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/go-court-stats/internal/model"
)

// SaveMatch stores the complete match state in one transaction,
// replacing whatever was stored under the same ID. Each save is a
// whole-match snapshot; readers never see a partially written sheet.
func (db *DB) SaveMatch(m *model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM tiebreak_points WHERE match_id = ?",
		"DELETE FROM tiebreaks WHERE match_id = ?",
		"DELETE FROM game_points WHERE match_id = ?",
		"DELETE FROM games WHERE match_id = ?",
		"DELETE FROM players WHERE match_id = ?",
		"DELETE FROM matches WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, m.ID); err != nil {
			return fmt.Errorf("clear previous state: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO matches(id, title, mode, created_at)
		VALUES (?, ?, ?, ?)`,
		m.ID, m.Title, m.Roster.Mode.String(), m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	for team, names := range map[model.Team][]string{
		model.TeamA: m.Roster.TeamA,
		model.TeamB: m.Roster.TeamB,
	} {
		for slot, name := range names {
			_, err := tx.Exec(`
				INSERT INTO players(match_id, team, slot, name)
				VALUES (?, ?, ?, ?)`,
				m.ID, team.String(), slot, name)
			if err != nil {
				return fmt.Errorf("insert player %q: %w", name, err)
			}
		}
	}

	for seq, g := range m.Games {
		_, err := tx.Exec(`
			INSERT INTO games(match_id, seq, server, server_player, total_boxes, service_info, score_a, score_b)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, seq, g.Server.String(), g.ServerPlayer, g.TotalBoxes,
			encodeServiceInfo(g.ServiceInfo), g.ScoreA, g.ScoreB)
		if err != nil {
			return fmt.Errorf("insert game %d: %w", seq, err)
		}
		for idx, p := range g.Points {
			if p == nil {
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO game_points(match_id, game_seq, idx, team, notation, actor, returner)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				m.ID, seq, idx, p.Team.String(), p.Notation, p.Actor, p.Returner)
			if err != nil {
				return fmt.Errorf("insert game %d point %d: %w", seq, idx, err)
			}
		}
	}

	for seq, tb := range m.TieBreaks {
		_, err := tx.Exec(`
			INSERT INTO tiebreaks(match_id, seq, total_boxes, score_a, score_b)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, seq, tb.TotalBoxes, tb.ScoreA, tb.ScoreB)
		if err != nil {
			return fmt.Errorf("insert tiebreak %d: %w", seq, err)
		}
		for idx, p := range tb.Points {
			if p == nil {
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO tiebreak_points(match_id, tb_seq, idx, team, notation, actor, returner, server)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID, seq, idx, p.Team.String(), p.Notation, p.Actor, p.Returner, p.Server)
			if err != nil {
				return fmt.Errorf("insert tiebreak %d point %d: %w", seq, idx, err)
			}
		}
	}

	return tx.Commit()
}

// LoadMatch returns the full match state for an ID, or nil if no match
// is stored under it.
func (db *DB) LoadMatch(id string) (*model.Match, error) {
	m := &model.Match{ID: id}
	var modeStr, createdStr string
	err := db.conn.QueryRow(`
		SELECT title, mode, created_at FROM matches WHERE id = ?`, id).
		Scan(&m.Title, &modeStr, &createdStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Roster.Mode = model.ParseMode(modeStr)
	if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
		m.CreatedAt = t
	}

	if err := db.loadPlayers(m); err != nil {
		return nil, err
	}
	if err := db.loadGames(m); err != nil {
		return nil, err
	}
	if err := db.loadTieBreaks(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (db *DB) loadPlayers(m *model.Match) error {
	rows, err := db.conn.Query(`
		SELECT team, name FROM players WHERE match_id = ?
		ORDER BY team, slot`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var teamStr, name string
		if err := rows.Scan(&teamStr, &name); err != nil {
			return err
		}
		switch model.ParseTeam(teamStr) {
		case model.TeamA:
			m.Roster.TeamA = append(m.Roster.TeamA, name)
		case model.TeamB:
			m.Roster.TeamB = append(m.Roster.TeamB, name)
		}
	}
	return rows.Err()
}

func (db *DB) loadGames(m *model.Match) error {
	rows, err := db.conn.Query(`
		SELECT seq, server, server_player, total_boxes, service_info, score_a, score_b
		FROM games WHERE match_id = ? ORDER BY seq`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seq int
		var serverStr, serviceInfo string
		g := &model.Game{}
		if err := rows.Scan(&seq, &serverStr, &g.ServerPlayer, &g.TotalBoxes,
			&serviceInfo, &g.ScoreA, &g.ScoreB); err != nil {
			return err
		}
		g.Server = model.ParseTeam(serverStr)
		g.Points = make([]*model.Point, g.TotalBoxes)
		g.ServiceInfo = decodeServiceInfo(serviceInfo, g.TotalBoxes)
		m.Games = append(m.Games, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := db.conn.Query(`
		SELECT game_seq, idx, team, notation, actor, returner
		FROM game_points WHERE match_id = ? ORDER BY game_seq, idx`, m.ID)
	if err != nil {
		return err
	}
	defer prows.Close()

	for prows.Next() {
		var seq, idx int
		var teamStr string
		p := &model.Point{}
		if err := prows.Scan(&seq, &idx, &teamStr, &p.Notation, &p.Actor, &p.Returner); err != nil {
			return err
		}
		p.Team = model.ParseTeam(teamStr)
		if seq >= 0 && seq < len(m.Games) && idx >= 0 && idx < m.Games[seq].TotalBoxes {
			m.Games[seq].Points[idx] = p
		}
	}
	return prows.Err()
}

func (db *DB) loadTieBreaks(m *model.Match) error {
	rows, err := db.conn.Query(`
		SELECT seq, total_boxes, score_a, score_b
		FROM tiebreaks WHERE match_id = ? ORDER BY seq`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seq int
		tb := &model.TieBreak{}
		if err := rows.Scan(&seq, &tb.TotalBoxes, &tb.ScoreA, &tb.ScoreB); err != nil {
			return err
		}
		tb.Points = make([]*model.Point, tb.TotalBoxes)
		m.TieBreaks = append(m.TieBreaks, tb)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := db.conn.Query(`
		SELECT tb_seq, idx, team, notation, actor, returner, server
		FROM tiebreak_points WHERE match_id = ? ORDER BY tb_seq, idx`, m.ID)
	if err != nil {
		return err
	}
	defer prows.Close()

	for prows.Next() {
		var seq, idx int
		var teamStr string
		p := &model.Point{}
		if err := prows.Scan(&seq, &idx, &teamStr, &p.Notation, &p.Actor, &p.Returner, &p.Server); err != nil {
			return err
		}
		p.Team = model.ParseTeam(teamStr)
		if seq >= 0 && seq < len(m.TieBreaks) && idx >= 0 && idx < m.TieBreaks[seq].TotalBoxes {
			m.TieBreaks[seq].Points[idx] = p
		}
	}
	return prows.Err()
}

// ListMatches returns summaries of all stored matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT m.id, m.title, m.mode, m.created_at,
		       (SELECT COUNT(1) FROM games g WHERE g.match_id = m.id),
		       (SELECT COUNT(1) FROM tiebreaks t WHERE t.match_id = m.id),
		       (SELECT COUNT(1) FROM game_points gp WHERE gp.match_id = m.id) +
		       (SELECT COUNT(1) FROM tiebreak_points tp WHERE tp.match_id = m.id)
		FROM matches m ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		var modeStr, createdStr string
		if err := rows.Scan(&s.ID, &s.Title, &modeStr, &createdStr,
			&s.Games, &s.TieBreaks, &s.Points); err != nil {
			return nil, err
		}
		s.Mode = model.ParseMode(modeStr)
		if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			s.CreatedAt = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ResolveID finds the full ID of the first match whose ID starts with
// the given prefix. Returns "" when nothing matches.
func (db *DB) ResolveID(prefix string) (string, error) {
	var id string
	err := db.conn.QueryRow(`
		SELECT id FROM matches WHERE id LIKE ? ORDER BY id LIMIT 1`, prefix+"%").
		Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteMatch removes a match and all of its rows.
func (db *DB) DeleteMatch(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM tiebreak_points WHERE match_id = ?",
		"DELETE FROM tiebreaks WHERE match_id = ?",
		"DELETE FROM game_points WHERE match_id = ?",
		"DELETE FROM games WHERE match_id = ?",
		"DELETE FROM players WHERE match_id = ?",
		"DELETE FROM matches WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names plus all
// rows rendered as strings. NULLs come back as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		for i := range vals {
			vals[i] = new(sql.NullString)
		}
		if err := rows.Scan(vals...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			ns := v.(*sql.NullString)
			if ns.Valid {
				row[i] = ns.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// encodeServiceInfo packs the fault flags as a '0'/'1' string, one
// character per slot.
func encodeServiceInfo(flags []bool) string {
	var b strings.Builder
	for _, f := range flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// decodeServiceInfo unpacks the flag string, sized to the box count
// whatever the stored length.
func decodeServiceInfo(s string, n int) []bool {
	flags := make([]bool, n)
	for i := 0; i < n && i < len(s); i++ {
		flags[i] = s[i] == '1'
	}
	return flags
}
