package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh
}

func seedTree(t *testing.T, store *catalog.SQLStore) (catalog.Subject, catalog.Chapter, catalog.Quiz) {
	t.Helper()
	ctx := context.Background()
	sub := catalog.Subject{ID: uuid.NewString(), Name: "Math", Description: "numbers"}
	if err := store.CreateSubject(ctx, sub); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	ch := catalog.Chapter{ID: uuid.NewString(), SubjectID: sub.ID, Name: "Algebra"}
	if err := store.CreateChapter(ctx, ch); err != nil {
		t.Fatalf("create chapter: %v", err)
	}
	qz := catalog.Quiz{ID: uuid.NewString(), ChapterID: ch.ID, Title: "Algebra Basics", Duration: "00:30"}
	if err := store.CreateQuiz(ctx, qz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return sub, ch, qz
}

func TestSubjectCRUD(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLStore(openTestDB(t))

	sub := catalog.Subject{ID: uuid.NewString(), Name: "Physics", Description: "matter"}
	if err := store.CreateSubject(ctx, sub); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetSubject(ctx, sub.ID)
	if err != nil || got.Name != "Physics" {
		t.Fatalf("get = (%+v, %v)", got, err)
	}

	sub.Description = "matter and motion"
	if err := store.UpdateSubject(ctx, sub); err != nil {
		t.Fatalf("update: %v", err)
	}

	dup := catalog.Subject{ID: uuid.NewString(), Name: "Physics"}
	if err := store.CreateSubject(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate name err = %v, want ErrConflict", err)
	}

	if err := store.DeleteSubject(ctx, sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSubject(ctx, sub.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSubject(ctx, sub.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCreateQuizValidatesDuration(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLStore(openTestDB(t))
	_, ch, _ := seedTree(t, store)

	bad := catalog.Quiz{ID: uuid.NewString(), ChapterID: ch.ID, Title: "Broken", Duration: "ninety minutes"}
	if err := store.CreateQuiz(ctx, bad); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("create err = %v, want ErrInvalidDuration", err)
	}
}

func TestCreateQuizUnknownChapter(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLStore(openTestDB(t))

	q := catalog.Quiz{ID: uuid.NewString(), ChapterID: "nope", Title: "Orphan", Duration: "00:10"}
	if err := store.CreateQuiz(ctx, q); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("create err = %v, want ErrNotFound", err)
	}
}

func TestDeleteQuizRemovesQuestions(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLStore(openTestDB(t))
	_, _, qz := seedTree(t, store)

	for i := 1; i <= 3; i++ {
		q := catalog.Question{
			ID:          uuid.NewString(),
			QuizID:      qz.ID,
			Text:        "q",
			Options:     [4]string{"a", "b", "c", "d"},
			CorrectSlot: 2,
			Position:    i,
		}
		if err := store.CreateQuestion(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	if err := store.DeleteQuiz(ctx, qz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	qs, err := store.QuestionsByQuiz(ctx, qz.ID)
	if err != nil {
		t.Fatalf("questions after delete: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("expected no orphaned questions, got %d", len(qs))
	}
	if _, err := store.GetQuiz(ctx, qz.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get quiz after delete err = %v, want ErrNotFound", err)
	}
}

func TestQuestionOrderAndSlotValidation(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLStore(openTestDB(t))
	_, _, qz := seedTree(t, store)

	bad := catalog.Question{ID: uuid.NewString(), QuizID: qz.ID, Text: "q", Options: [4]string{"a", "b", "c", "d"}, CorrectSlot: 5}
	if err := store.CreateQuestion(ctx, bad); err == nil {
		t.Fatalf("expected error for correct_slot=5")
	}

	// inserted out of order; read back ordered by position
	for _, pos := range []int{2, 1, 3} {
		q := catalog.Question{
			ID:          uuid.NewString(),
			QuizID:      qz.ID,
			Text:        "q",
			Options:     [4]string{"a", "b", "c", "d"},
			CorrectSlot: 1,
			Position:    pos,
		}
		if err := store.CreateQuestion(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}
	qs, err := store.QuestionsByQuiz(ctx, qz.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 3 || qs[0].Position != 1 || qs[1].Position != 2 || qs[2].Position != 3 {
		t.Fatalf("unexpected order: %+v", qs)
	}
}
