// Package storage provides SQLite-based persistence for level session results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/match3/internal/game"
)

// Outcome values stored for a session.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeAbandoned = "abandoned"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionResult is the record of one finished level attempt.
type SessionResult struct {
	ID        int64
	SessionID string // UUID; assigned by SaveResult when empty
	LevelID   string
	Player    string
	Outcome   string
	Score     int
	MovesUsed int
	BestCombo int
	Elapsed   time.Duration
	Seed      int64
	CreatedAt time.Time
}

// Won reports whether the session completed its goals.
func (r SessionResult) Won() bool {
	return r.Outcome == OutcomeCompleted
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Plays      int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// WinRate returns the fraction of plays that were won.
func (s LevelStats) WinRate() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Plays)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			moves_used INTEGER NOT NULL DEFAULT 0,
			best_combo INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level_id ON sessions(level_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(level_id, outcome, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished session and returns its session ID.
func (s *Store) SaveResult(r SessionResult) (string, error) {
	if r.LevelID == "" {
		return "", fmt.Errorf("storage: cannot save result without level id")
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	} else if _, err := uuid.Parse(r.SessionID); err != nil {
		return "", fmt.Errorf("storage: invalid session id %q: %w", r.SessionID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, level_id, player, outcome, score, moves_used, best_combo, elapsed_ms, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.LevelID,
		r.Player,
		r.Outcome,
		r.Score,
		r.MovesUsed,
		r.BestCombo,
		r.Elapsed.Milliseconds(),
		r.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.SessionID, nil
}

const sessionColumns = `id, session_id, level_id, player, outcome, score, moves_used,
	best_combo, elapsed_ms, seed, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (SessionResult, error) {
	var r SessionResult
	var elapsedMS int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.LevelID,
		&r.Player,
		&r.Outcome,
		&r.Score,
		&r.MovesUsed,
		&r.BestCombo,
		&elapsedMS,
		&r.Seed,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryResults(query string, args ...any) ([]SessionResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// ResultByID retrieves a session by its session ID.
// Returns nil if no such session exists.
func (s *Store) ResultByID(sessionID string) (*SessionResult, error) {
	r, err := scanResult(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &r, nil
}

// TopScores retrieves the best N completed sessions for the given level.
// Results are ordered by score descending.
func (s *Store) TopScores(levelID string, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY score DESC, moves_used ASC, id ASC
		 LIMIT ?`,
		levelID, OutcomeCompleted, limit,
	)
}

// RecentSessions retrieves the most recent sessions across all levels.
func (s *Store) RecentSessions(limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// HighScore returns the highest completed score for the given level.
// Returns 0 if no level has been completed.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE level_id = ? AND outcome = ?",
		levelID, OutcomeCompleted,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearLevel deletes all sessions for the given level.
func (s *Store) ClearLevel(levelID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear level: %w", err)
	}
	return nil
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN score END), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM sessions WHERE level_id = ?`,
		OutcomeCompleted, OutcomeCompleted, levelID,
	).Scan(&stats.Plays, &stats.Wins, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN score END), 0),
		        AVG(score), MAX(created_at)
		 FROM sessions
		 GROUP BY level_id`,
		OutcomeCompleted, OutcomeCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Plays, &ls.Wins, &ls.HighScore, &ls.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveGameResult implements game.ResultSaver.
func (s *Store) SaveGameResult(r game.Result) error {
	_, err := s.SaveResult(SessionResult{
		SessionID: r.SessionID,
		LevelID:   r.LevelID,
		Player:    r.Player,
		Outcome:   r.Outcome,
		Score:     r.Score,
		MovesUsed: r.MovesUsed,
		BestCombo: r.BestCombo,
		Elapsed:   r.Elapsed,
		Seed:      r.Seed,
	})
	return err
}

// Ensure Store implements game.ResultSaver
var _ game.ResultSaver = (*Store)(nil)
