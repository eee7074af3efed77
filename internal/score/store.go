package score

import "context"

// Score is one user's recorded result for one quiz. The submission path
// creates at most one per (user, quiz); administrative correction may update
// or delete it afterwards.
type Score struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	QuizID  string `json:"quiz_id"`
	Score   int    `json:"score"`
	TakenAt int64  `json:"taken_at"`
}

// QuizStats is the per-quiz aggregate consumed by the admin dashboard.
// An empty score set reports zero for all three statistics.
type QuizStats struct {
	QuizID   string  `json:"quiz_id"`
	Attempts int     `json:"attempts"`
	Lowest   int     `json:"lowest"`
	Highest  int     `json:"highest"`
	Average  float64 `json:"average"`
}

type Store interface {
	// Create inserts a new score. A second score for the same (user, quiz)
	// pair fails with domain.ErrAlreadySubmitted; the uniqueness check is
	// atomic with the insert.
	Create(ctx context.Context, s Score) error
	Get(ctx context.Context, id string) (Score, error)
	ByUser(ctx context.Context, userID string) ([]Score, error)
	ByQuiz(ctx context.Context, quizID string) ([]Score, error)
	All(ctx context.Context) ([]Score, error)
	// Update rewrites the score value of an existing record (admin correction).
	Update(ctx context.Context, id string, value int) error
	Delete(ctx context.Context, id string) error
}
