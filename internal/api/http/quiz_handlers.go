package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/quizmaster/internal/rbac"
	"github.com/quizmaster-app/quizmaster/internal/session"
)

// GET /quizzes/{quizID}/session
// Serves the question set (answer keys withheld) and the time budget.
func StartSessionHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		s, err := engine.Start(r.Context(), chi.URLParam(r, "quizID"), userID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// POST /quizzes/{quizID}/submit  { "answers": { questionID: slot } }
func SubmitHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers map[string]int `json:"answers"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		userID := rbac.SubjectFromContext(r.Context())
		res, err := engine.Submit(r.Context(), chi.URLParam(r, "quizID"), userID, req.Answers)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
