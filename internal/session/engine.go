// Package session implements the quiz-taking core: assembling a question set
// with its time budget, evaluating a single answer submission, and recording
// the resulting score exactly once per (user, quiz) pair.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/domain"
	"github.com/quizmaster-app/quizmaster/internal/score"
)

// QuestionView is a question as served to the taker: the correct-answer slot
// is never part of this shape.
type QuestionView struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Options [4]string `json:"options"`
}

// Session is the immutable descriptor handed to the delivery surface.
type Session struct {
	Quiz         catalog.Quiz   `json:"quiz"`
	Questions    []QuestionView `json:"questions"`
	TotalSeconds int            `json:"total_seconds"`
	StartedAt    int64          `json:"started_at"`
}

// Result is the outcome of a graded submission.
type Result struct {
	Score         int `json:"score"`
	QuestionCount int `json:"question_count"`
}

// UserResolver reports whether a principal id resolves to a known user.
type UserResolver interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// Starts records when a user first opened a quiz; re-opening keeps the
// original start time.
type Starts interface {
	Begin(ctx context.Context, userID, quizID string, now int64) (startedAt int64, err error)
	StartedAt(ctx context.Context, userID, quizID string) (int64, bool, error)
}

type Engine struct {
	catalog catalog.Store
	scores  score.Store
	starts  Starts
	users   UserResolver

	enforceDeadline bool
	grace           time.Duration
	now             func() time.Time
}

type Option func(*Engine)

// WithDeadline turns on rejection of submissions arriving later than
// session start + time budget + grace.
func WithDeadline(grace time.Duration) Option {
	return func(e *Engine) {
		e.enforceDeadline = true
		e.grace = grace
	}
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(cat catalog.Store, scores score.Store, starts Starts, users UserResolver, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		scores:  scores,
		starts:  starts,
		users:   users,
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start assembles the quiz session: quiz metadata, the ordered question set
// with answer keys withheld, and the time budget in seconds.
func (e *Engine) Start(ctx context.Context, quizID, userID string) (Session, error) {
	quiz, err := e.catalog.GetQuiz(ctx, quizID)
	if err != nil {
		return Session{}, err
	}
	total, err := catalog.DurationSeconds(quiz.Duration)
	if err != nil {
		return Session{}, err
	}
	questions, err := e.catalog.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return Session{}, err
	}

	startedAt, err := e.starts.Begin(ctx, userID, quizID, e.now().Unix())
	if err != nil {
		return Session{}, fmt.Errorf("record session start: %w", err)
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{ID: q.ID, Text: q.Text, Options: q.Options})
	}
	return Session{
		Quiz:         quiz,
		Questions:    views,
		TotalSeconds: total,
		StartedAt:    startedAt,
	}, nil
}

// Submit grades a single submission and records the score. Evaluation is by
// slot designator: an answer counts only when the selected slot equals the
// question's correct slot. Answers for questions outside the quiz are
// ignored; missing or out-of-range slots contribute zero.
//
// The score insert is guarded by the storage-level (user, quiz) uniqueness
// constraint, so a duplicate submission fails with domain.ErrAlreadySubmitted
// without racing a concurrent one.
func (e *Engine) Submit(ctx context.Context, quizID, userID string, answers map[string]int) (Result, error) {
	ok, err := e.users.UserExists(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, domain.ErrNotFound
	}
	quiz, err := e.catalog.GetQuiz(ctx, quizID)
	if err != nil {
		return Result{}, err
	}

	now := e.now()
	if e.enforceDeadline {
		if err := e.checkDeadline(ctx, quiz, userID, now); err != nil {
			return Result{}, err
		}
	}

	questions, err := e.catalog.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return Result{}, err
	}

	total := 0
	for _, q := range questions {
		if slot, answered := answers[q.ID]; answered && slot == q.CorrectSlot {
			total++
		}
	}

	rec := score.Score{
		ID:      uuid.NewString(),
		UserID:  userID,
		QuizID:  quizID,
		Score:   total,
		TakenAt: now.Unix(),
	}
	if err := e.scores.Create(ctx, rec); err != nil {
		return Result{}, err
	}
	return Result{Score: total, QuestionCount: len(questions)}, nil
}

func (e *Engine) checkDeadline(ctx context.Context, quiz catalog.Quiz, userID string, now time.Time) error {
	startedAt, found, err := e.starts.StartedAt(ctx, userID, quiz.ID)
	if err != nil {
		return err
	}
	if !found {
		// No recorded session start: the budget stays advisory.
		return nil
	}
	total, err := catalog.DurationSeconds(quiz.Duration)
	if err != nil {
		return err
	}
	deadline := time.Unix(startedAt, 0).Add(time.Duration(total)*time.Second + e.grace)
	if now.After(deadline) {
		return domain.ErrSubmissionExpired
	}
	return nil
}
