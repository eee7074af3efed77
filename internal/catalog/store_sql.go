package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/domain"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore {
	return &SQLStore{db: dbh}
}

// ---- subjects ----

func (s *SQLStore) CreateSubject(ctx context.Context, sub Subject) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (id,name,description) VALUES ($1,$2,$3)`,
		sub.ID, sub.Name, sub.Description)
	return classify(err)
}

func (s *SQLStore) UpdateSubject(ctx context.Context, sub Subject) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET name=$1, description=$2 WHERE id=$3`,
		sub.Name, sub.Description, sub.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (s *SQLStore) DeleteSubject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLStore) GetSubject(ctx context.Context, id string) (Subject, error) {
	var sub Subject
	err := s.db.QueryRowContext(ctx,
		`SELECT id,name,description FROM subjects WHERE id=$1`, id).
		Scan(&sub.ID, &sub.Name, &sub.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Subject{}, domain.ErrNotFound
	}
	return sub, err
}

func (s *SQLStore) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,description FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Subject{}
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Description); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ---- chapters ----

func (s *SQLStore) CreateChapter(ctx context.Context, c Chapter) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chapters (id,subject_id,name,description) VALUES ($1,$2,$3,$4)`,
		c.ID, c.SubjectID, c.Name, c.Description)
	return classify(err)
}

func (s *SQLStore) UpdateChapter(ctx context.Context, c Chapter) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chapters SET subject_id=$1, name=$2, description=$3 WHERE id=$4`,
		c.SubjectID, c.Name, c.Description, c.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (s *SQLStore) DeleteChapter(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chapters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLStore) GetChapter(ctx context.Context, id string) (Chapter, error) {
	var c Chapter
	err := s.db.QueryRowContext(ctx,
		`SELECT id,subject_id,name,description FROM chapters WHERE id=$1`, id).
		Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Chapter{}, domain.ErrNotFound
	}
	return c, err
}

func (s *SQLStore) ListChapters(ctx context.Context, subjectID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,subject_id,name,description FROM chapters WHERE subject_id=$1 ORDER BY name`,
		subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Chapter{}
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---- quizzes ----

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) error {
	if _, err := DurationSeconds(q.Duration); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,chapter_id,title,quiz_date,duration,remarks,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		q.ID, q.ChapterID, q.Title, q.QuizDate, q.Duration, q.Remarks, time.Now().Unix())
	return classify(err)
}

func (s *SQLStore) UpdateQuiz(ctx context.Context, q Quiz) error {
	if _, err := DurationSeconds(q.Duration); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET chapter_id=$1, title=$2, quiz_date=$3, duration=$4, remarks=$5 WHERE id=$6`,
		q.ChapterID, q.Title, q.QuizDate, q.Duration, q.Remarks, q.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

// DeleteQuiz removes a quiz's questions before the quiz row itself, in one
// transaction, so a failed delete never leaves orphaned questions behind.
func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx,
		`SELECT id,chapter_id,title,quiz_date,duration,remarks,created_at FROM quizzes WHERE id=$1`, id).
		Scan(&q.ID, &q.ChapterID, &q.Title, &q.QuizDate, &q.Duration, &q.Remarks, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, domain.ErrNotFound
	}
	return q, err
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,chapter_id,title,quiz_date,duration,remarks,created_at FROM quizzes ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.Title, &q.QuizDate, &q.Duration, &q.Remarks, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ---- questions ----

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) error {
	if q.CorrectSlot < 1 || q.CorrectSlot > 4 {
		return fmt.Errorf("correct_slot %d out of range: %w", q.CorrectSlot, domain.ErrConflict)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id,quiz_id,text,option_1,option_2,option_3,option_4,correct_slot,position)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		q.ID, q.QuizID, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectSlot, q.Position)
	return classify(err)
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	if q.CorrectSlot < 1 || q.CorrectSlot > 4 {
		return fmt.Errorf("correct_slot %d out of range: %w", q.CorrectSlot, domain.ErrConflict)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET text=$1, option_1=$2, option_2=$3, option_3=$4, option_4=$5, correct_slot=$6, position=$7
		 WHERE id=$8`,
		q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectSlot, q.Position, q.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	var q Question
	err := s.db.QueryRowContext(ctx,
		`SELECT id,quiz_id,text,option_1,option_2,option_3,option_4,correct_slot,position
		 FROM questions WHERE id=$1`, id).
		Scan(&q.ID, &q.QuizID, &q.Text, &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &q.CorrectSlot, &q.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, domain.ErrNotFound
	}
	return q, err
}

func (s *SQLStore) QuestionsByQuiz(ctx context.Context, quizID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,quiz_id,text,option_1,option_2,option_3,option_4,correct_slot,position
		 FROM questions WHERE quiz_id=$1 ORDER BY position, id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &q.CorrectSlot, &q.Position); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	default:
		return err
	}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
