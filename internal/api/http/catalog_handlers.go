package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizmaster-app/quizmaster/internal/catalog"
)

// Catalog CRUD. Reads are open to any authenticated principal; writes sit
// behind the catalog:write permission (see router).

func CreateSubjectHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s catalog.Subject
		if err := decode(r, &s); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if s.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		s.ID = uuid.NewString()
		if err := store.CreateSubject(r.Context(), s); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func UpdateSubjectHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s catalog.Subject
		if err := decode(r, &s); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		s.ID = chi.URLParam(r, "subjectID")
		if err := store.UpdateSubject(r.Context(), s); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func DeleteSubjectHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteSubject(r.Context(), chi.URLParam(r, "subjectID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListSubjectsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := store.ListSubjects(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, subjects)
	}
}

func ListChaptersHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapters, err := store.ListChapters(r.Context(), chi.URLParam(r, "subjectID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, chapters)
	}
}

func CreateChapterHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c catalog.Chapter
		if err := decode(r, &c); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if c.Name == "" || c.SubjectID == "" {
			http.Error(w, "name and subject_id required", http.StatusBadRequest)
			return
		}
		c.ID = uuid.NewString()
		if err := store.CreateChapter(r.Context(), c); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func UpdateChapterHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c catalog.Chapter
		if err := decode(r, &c); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		c.ID = chi.URLParam(r, "chapterID")
		if err := store.UpdateChapter(r.Context(), c); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func DeleteChapterHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteChapter(r.Context(), chi.URLParam(r, "chapterID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateQuizHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q catalog.Quiz
		if err := decode(r, &q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if q.Title == "" || q.ChapterID == "" {
			http.Error(w, "title and chapter_id required", http.StatusBadRequest)
			return
		}
		q.ID = uuid.NewString()
		if err := store.CreateQuiz(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

func UpdateQuizHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q catalog.Quiz
		if err := decode(r, &q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q.ID = chi.URLParam(r, "quizID")
		if err := store.UpdateQuiz(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func DeleteQuizHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListQuizzesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quizzes)
	}
}

func CreateQuestionHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q catalog.Question
		if err := decode(r, &q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q.QuizID = chi.URLParam(r, "quizID")
		if q.Text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		q.ID = uuid.NewString()
		if err := store.CreateQuestion(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

func UpdateQuestionHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q catalog.Question
		if err := decode(r, &q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q.ID = chi.URLParam(r, "questionID")
		existing, err := store.GetQuestion(r.Context(), q.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		q.QuizID = existing.QuizID // a question never moves between quizzes
		if err := store.UpdateQuestion(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func DeleteQuestionHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListQuestionsHandler serves the full question records, answer keys
// included; the router keeps it admin-only. Takers get the sanitized set
// through the session endpoint instead.
func ListQuestionsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := store.QuestionsByQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, questions)
	}
}
