package session

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStarts persists first-open times in the quiz_sessions table.
type SQLStarts struct {
	db *sql.DB
}

func NewSQLStarts(dbh *sql.DB) *SQLStarts {
	return &SQLStarts{db: dbh}
}

// Begin records the session start if none exists and returns the recorded
// start time. ON CONFLICT DO NOTHING keeps the earliest start under
// concurrent opens.
func (s *SQLStarts) Begin(ctx context.Context, userID, quizID string, now int64) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_sessions (user_id,quiz_id,started_at) VALUES ($1,$2,$3)
		 ON CONFLICT (user_id,quiz_id) DO NOTHING`,
		userID, quizID, now)
	if err != nil {
		return 0, err
	}
	started, found, err := s.StartedAt(ctx, userID, quizID)
	if err != nil {
		return 0, err
	}
	if !found {
		return now, nil
	}
	return started, nil
}

func (s *SQLStarts) StartedAt(ctx context.Context, userID, quizID string) (int64, bool, error) {
	var started int64
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at FROM quiz_sessions WHERE user_id=$1 AND quiz_id=$2`,
		userID, quizID).Scan(&started)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return started, true, nil
}
