package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/domain"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore {
	return &SQLStore{db: dbh}
}

func (s *SQLStore) Create(ctx context.Context, sc Score) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id,user_id,quiz_id,score,taken_at) VALUES ($1,$2,$3,$4,$5)`,
		sc.ID, sc.UserID, sc.QuizID, sc.Score, sc.TakenAt)
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		// The (user_id, quiz_id) constraint is the single-attempt guard:
		// concurrent duplicate inserts lose here atomically.
		return domain.ErrAlreadySubmitted
	case db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	default:
		return err
	}
}

func (s *SQLStore) Get(ctx context.Context, id string) (Score, error) {
	var sc Score
	err := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,quiz_id,score,taken_at FROM scores WHERE id=$1`, id).
		Scan(&sc.ID, &sc.UserID, &sc.QuizID, &sc.Score, &sc.TakenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Score{}, domain.ErrNotFound
	}
	return sc, err
}

func (s *SQLStore) ByUser(ctx context.Context, userID string) ([]Score, error) {
	return s.list(ctx, `SELECT id,user_id,quiz_id,score,taken_at FROM scores WHERE user_id=$1 ORDER BY taken_at`, userID)
}

func (s *SQLStore) ByQuiz(ctx context.Context, quizID string) ([]Score, error) {
	return s.list(ctx, `SELECT id,user_id,quiz_id,score,taken_at FROM scores WHERE quiz_id=$1 ORDER BY taken_at`, quizID)
}

func (s *SQLStore) All(ctx context.Context) ([]Score, error) {
	return s.list(ctx, `SELECT id,user_id,quiz_id,score,taken_at FROM scores ORDER BY taken_at`)
}

func (s *SQLStore) Update(ctx context.Context, id string, value int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE scores SET score=$1 WHERE id=$2`, value, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scores WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Score{}
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.QuizID, &sc.Score, &sc.TakenAt); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
