package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mvidela/rallymetrics/internal/achievements"
	"github.com/mvidela/rallymetrics/internal/leveling"
	"github.com/mvidela/rallymetrics/internal/model"
	"github.com/mvidela/rallymetrics/internal/progress"
)

// MatchExists returns true if a match with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores a match and its point events in one transaction. Uses
// INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(m *model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, sport, game_type, match_date, player_score, opponent_score, duration_seconds, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Hash, m.Sport.String(), m.GameType.String(), m.MatchDate,
		m.PlayerScore, m.OpponentScore, int(m.Duration/time.Second), m.Outcome.String(),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO point_events(
			match_hash, seq, serving_side, server_role, scoring_side,
			player_score, opponent_score, shot, is_serve_point
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range m.Events {
		_, err = stmt.Exec(
			m.Hash, i, e.ServingSide.String(), e.ServerRole.String(), e.ScoringSide.String(),
			e.PlayerScore, e.OpponentScore, e.Shot.String(), boolInt(e.IsServePoint),
		)
		if err != nil {
			return fmt.Errorf("insert point_events seq %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// MatchRecorded reports whether a stored match has been folded into the
// progression state. False for unknown hashes.
func (db *DB) MatchRecorded(hash string) (bool, error) {
	var recorded int
	err := db.conn.QueryRow("SELECT recorded FROM matches WHERE hash = ?", hash).Scan(&recorded)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return recorded != 0, nil
}

// MarkRecorded flags a stored match as folded into the progression state.
// Matches insert unflagged, so an ingest interrupted between the insert and
// the progression commit can be completed on the next run.
func (db *DB) MarkRecorded(hash string) error {
	_, err := db.conn.Exec("UPDATE matches SET recorded = 1 WHERE hash = ?", hash)
	return err
}

// ListMatches returns all stored match summaries ordered by match_date desc.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT m.hash, m.sport, m.game_type, m.match_date, m.player_score, m.opponent_score,
		       m.duration_seconds, m.outcome,
		       (SELECT COUNT(1) FROM point_events e WHERE e.match_hash = m.hash)
		FROM matches m ORDER BY m.match_date DESC, m.hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		var sport, gameType, outcome string
		if err := rows.Scan(&s.Hash, &sport, &gameType, &s.MatchDate,
			&s.PlayerScore, &s.OpponentScore, &s.DurationSeconds, &outcome, &s.EventCount); err != nil {
			return nil, err
		}
		s.Sport = parseSport(sport)
		s.GameType = parseGameType(gameType)
		s.Outcome = parseOutcome(outcome)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix returns the first stored match whose hash starts with the
// given prefix, including its point events, or nil when none matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.Match, error) {
	var m model.Match
	var sport, gameType, outcome string
	var durationSeconds int
	err := db.conn.QueryRow(`
		SELECT hash, sport, game_type, match_date, player_score, opponent_score, duration_seconds, outcome
		FROM matches WHERE hash LIKE ? LIMIT 1`, prefix+"%").
		Scan(&m.Hash, &sport, &gameType, &m.MatchDate, &m.PlayerScore, &m.OpponentScore, &durationSeconds, &outcome)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Sport = parseSport(sport)
	m.GameType = parseGameType(gameType)
	m.Outcome = parseOutcome(outcome)
	m.Duration = time.Duration(durationSeconds) * time.Second

	rows, err := db.conn.Query(`
		SELECT serving_side, server_role, scoring_side, player_score, opponent_score, shot, is_serve_point
		FROM point_events WHERE match_hash = ? ORDER BY seq`, m.Hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.PointEvent
		var servingSide, serverRole, scoringSide, shot string
		var isServe int
		if err := rows.Scan(&servingSide, &serverRole, &scoringSide,
			&e.PlayerScore, &e.OpponentScore, &shot, &isServe); err != nil {
			return nil, err
		}
		e.ServingSide = parseSide(servingSide)
		e.ServerRole = parseServerRole(serverRole)
		e.ScoringSide = parseSide(scoringSide)
		e.Shot = parseShot(shot)
		e.IsServePoint = isServe != 0
		m.Events = append(m.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadProgress reads the full achievement progress map.
func (db *DB) LoadProgress() (achievements.ProgressMap, error) {
	rows, err := db.conn.Query(`
		SELECT achievement_id, current_value, highest_tier, last_updated
		FROM achievement_progress`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(achievements.ProgressMap)
	for rows.Next() {
		var id string
		var rec achievements.Progress
		var tier int
		var updated string
		if err := rows.Scan(&id, &rec.CurrentValue, &tier, &updated); err != nil {
			return nil, err
		}
		rec.HighestTier = achievements.Tier(tier)
		if t, err := time.Parse(time.RFC3339, updated); err == nil {
			rec.LastUpdated = t
		}
		m[achievements.ID(id)] = &rec
	}
	return m, rows.Err()
}

// SaveProgress replaces the stored progress map with the given one in a
// single transaction.
func (db *DB) SaveProgress(m achievements.ProgressMap) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM achievement_progress"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO achievement_progress(achievement_id, current_value, highest_tier, last_updated)
		VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, rec := range m {
		if rec == nil {
			continue
		}
		_, err = stmt.Exec(string(id), rec.CurrentValue, int(rec.HighestTier),
			rec.LastUpdated.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert achievement_progress for %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// LoadExperience reads the experience state, normalized so derived fields
// are fresh. A missing row yields the level-1 zero state.
func (db *DB) LoadExperience() (leveling.State, error) {
	var s leveling.State
	err := db.conn.QueryRow("SELECT total_xp, level FROM experience WHERE id = 1").
		Scan(&s.TotalXP, &s.Level)
	if err != nil && err != sql.ErrNoRows {
		return s, err
	}
	s.Normalize()
	return s, nil
}

// SaveExperience writes the experience state. Only total XP and level are
// persisted; the rest is re-derived on load.
func (db *DB) SaveExperience(s leveling.State) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO experience(id, total_xp, level) VALUES (1, ?, ?)`,
		s.TotalXP, s.Level)
	return err
}

// LoadStats reads the lifetime counters. A missing row yields zeros.
func (db *DB) LoadStats() (progress.LifetimeStats, error) {
	var s progress.LifetimeStats
	err := db.conn.QueryRow(`
		SELECT matches_played, matches_won, points_scored, comeback_wins, clutch_points,
		       serve_winners, longest_run, marathon_matches,
		       win_streak, best_win_streak, day_streak, best_day_streak, last_played_day
		FROM lifetime_stats WHERE id = 1`).
		Scan(&s.MatchesPlayed, &s.MatchesWon, &s.PointsScored, &s.ComebackWins, &s.ClutchPointsWon,
			&s.ServeWinners, &s.LongestRun, &s.MarathonMatches,
			&s.WinStreak, &s.BestWinStreak, &s.DayStreak, &s.BestDayStreak, &s.LastPlayedDay)
	if err == sql.ErrNoRows {
		return progress.LifetimeStats{}, nil
	}
	return s, err
}

// SaveStats writes the lifetime counters.
func (db *DB) SaveStats(s progress.LifetimeStats) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO lifetime_stats(
			id, matches_played, matches_won, points_scored, comeback_wins, clutch_points,
			serve_winners, longest_run, marathon_matches,
			win_streak, best_win_streak, day_streak, best_day_streak, last_played_day
		) VALUES (1,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.MatchesPlayed, s.MatchesWon, s.PointsScored, s.ComebackWins, s.ClutchPointsWon,
		s.ServeWinners, s.LongestRun, s.MarathonMatches,
		s.WinStreak, s.BestWinStreak, s.DayStreak, s.BestDayStreak, s.LastPlayedDay)
	return err
}

// ResetProfile wipes progress, experience, and lifetime stats in one
// transaction. Stored matches survive unless wipeMatches is set.
func (db *DB) ResetProfile(wipeMatches bool) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{"achievement_progress", "experience", "lifetime_stats"}
	if wipeMatches {
		tables = append(tables, "point_events", "matches")
	}
	for _, t := range tables {
		if _, err := tx.Exec("DELETE FROM " + t); err != nil {
			return fmt.Errorf("wipe %s: %w", t, err)
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseSport(s string) model.Sport {
	switch s {
	case "pickleball":
		return model.SportPickleball
	case "padel":
		return model.SportPadel
	default:
		return model.SportUnknown
	}
}

func parseGameType(s string) model.GameType {
	if s == "doubles" {
		return model.GameTypeDoubles
	}
	return model.GameTypeSingles
}

func parseOutcome(s string) model.Outcome {
	if s == "win" {
		return model.OutcomeWin
	}
	return model.OutcomeLoss
}

func parseSide(s string) model.Side {
	switch s {
	case "player":
		return model.SidePlayer
	case "opponent":
		return model.SideOpponent
	default:
		return model.SideNone
	}
}

func parseServerRole(s string) model.ServerRole {
	switch s {
	case "self":
		return model.RoleSelf
	case "partner":
		return model.RolePartner
	default:
		return model.RoleNone
	}
}

func parseShot(s string) model.ShotType {
	switch s {
	case "serve":
		return model.ShotServe
	case "forehand":
		return model.ShotForehand
	case "backhand":
		return model.ShotBackhand
	case "volley":
		return model.ShotVolley
	case "smash":
		return model.ShotSmash
	case "lob":
		return model.ShotLob
	case "drop":
		return model.ShotDrop
	case "dink":
		return model.ShotDink
	default:
		return model.ShotUnknown
	}
}
