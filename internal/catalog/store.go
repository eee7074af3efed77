package catalog

import "context"

// Store is the durable catalog of subjects, chapters, quizzes and questions.
// Implementations must preserve referential integrity: a quiz's questions are
// removed with the quiz, chapters with their subject, and so on down the tree.
type Store interface {
	CreateSubject(ctx context.Context, s Subject) error
	UpdateSubject(ctx context.Context, s Subject) error
	DeleteSubject(ctx context.Context, id string) error
	GetSubject(ctx context.Context, id string) (Subject, error)
	ListSubjects(ctx context.Context) ([]Subject, error)

	CreateChapter(ctx context.Context, c Chapter) error
	UpdateChapter(ctx context.Context, c Chapter) error
	DeleteChapter(ctx context.Context, id string) error
	GetChapter(ctx context.Context, id string) (Chapter, error)
	ListChapters(ctx context.Context, subjectID string) ([]Chapter, error)

	CreateQuiz(ctx context.Context, q Quiz) error
	UpdateQuiz(ctx context.Context, q Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)

	CreateQuestion(ctx context.Context, q Question) error
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error
	GetQuestion(ctx context.Context, id string) (Question, error)
	QuestionsByQuiz(ctx context.Context, quizID string) ([]Question, error)
}
