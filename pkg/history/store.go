// Package history persists attempt records across sessions in a
// local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Attempt is one recorded test run against a challenge.
// HintsUsed and Revealed describe the session state at the time
// of the run, so later attempts carry higher counts.
type Attempt struct {
	ID          int64     `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	Command     string    `json:"command"`
	ExitCode    int       `json:"exit_code"`
	Passed      bool      `json:"passed"`
	DurationMs  int64     `json:"duration_ms"`
	HintsUsed   int       `json:"hints_used"`
	Revealed    bool      `json:"revealed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChallengeStats aggregates the attempts recorded for one
// challenge.
type ChallengeStats struct {
	ChallengeID string `json:"challenge_id"`
	Attempts    int    `json:"attempts"`
	Passes      int    `json:"passes"`
}

// Store wraps the attempts table. Safe for concurrent use; the
// underlying *sql.DB serializes access.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}

	createTableSQL := `CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		challenge_id TEXT NOT NULL,
		command TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		hints_used INTEGER NOT NULL DEFAULT 0,
		revealed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create attempts table: %w", err)
	}

	_, _ = db.Exec("PRAGMA journal_mode=WAL;")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000;")

	return &Store{db: db}, nil
}

// Record inserts an attempt and returns it with the assigned id
// and timestamp filled in.
func (s *Store) Record(attempt Attempt) (Attempt, error) {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO attempts
		(challenge_id, command, exit_code, passed, duration_ms,
		hints_used, revealed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query,
		attempt.ChallengeID, attempt.Command,
		attempt.ExitCode, attempt.Passed,
		attempt.DurationMs, attempt.HintsUsed,
		attempt.Revealed, attempt.CreatedAt,
	)
	if err != nil {
		return Attempt{}, fmt.Errorf("record attempt: %w", err)
	}

	attempt.ID, err = result.LastInsertId()
	if err != nil {
		return Attempt{}, fmt.Errorf("read attempt id: %w", err)
	}
	return attempt, nil
}

// Recent returns up to limit attempts for a challenge, newest
// first. An empty challengeID returns attempts across all
// challenges.
func (s *Store) Recent(
	challengeID string, limit int,
) ([]Attempt, error) {
	query := `SELECT id, challenge_id, command, exit_code,
		passed, duration_ms, hints_used, revealed, created_at
		FROM attempts`
	args := []any{}
	if challengeID != "" {
		query += ` WHERE challenge_id = ?`
		args = append(args, challengeID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		err := rows.Scan(
			&a.ID, &a.ChallengeID, &a.Command,
			&a.ExitCode, &a.Passed, &a.DurationMs,
			&a.HintsUsed, &a.Revealed, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Stats aggregates per-challenge attempt and pass counts,
// ordered by challenge id.
func (s *Store) Stats() ([]ChallengeStats, error) {
	query := `SELECT challenge_id, COUNT(*),
		SUM(CASE WHEN passed THEN 1 ELSE 0 END)
		FROM attempts
		GROUP BY challenge_id
		ORDER BY challenge_id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []ChallengeStats
	for rows.Next() {
		var cs ChallengeStats
		err := rows.Scan(
			&cs.ChallengeID, &cs.Attempts, &cs.Passes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

// Solved reports whether the challenge has at least one passing
// attempt on record.
func (s *Store) Solved(challengeID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM attempts
		WHERE challenge_id = ? AND passed
	)`

	var solved bool
	err := s.db.QueryRow(query, challengeID).Scan(&solved)
	if err != nil {
		return false, fmt.Errorf("query solved: %w", err)
	}
	return solved, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
