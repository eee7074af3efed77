package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/rbac"
	"github.com/quizmaster-app/quizmaster/internal/score"
)

// GET /scores/me
func MyScoresHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		out, err := scores.ByUser(r.Context(), userID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /scores  (?quiz_id= optional)
func ListScoresHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			out []score.Score
			err error
		)
		if quizID := r.URL.Query().Get("quiz_id"); quizID != "" {
			out, err = scores.ByQuiz(r.Context(), quizID)
		} else {
			out, err = scores.All(r.Context())
		}
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// PUT /scores/{scoreID}  { "score": n }  — administrative correction.
func UpdateScoreHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Score int `json:"score"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Score < 0 {
			http.Error(w, "score must be non-negative", http.StatusBadRequest)
			return
		}
		id := chi.URLParam(r, "scoreID")
		if err := scores.Update(r.Context(), id, req.Score); err != nil {
			writeErr(w, err)
			return
		}
		sc, err := scores.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	}
}

// DELETE /scores/{scoreID}
func DeleteScoreHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := scores.Delete(r.Context(), chi.URLParam(r, "scoreID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /stats/quizzes — per-quiz min/max/mean for the admin dashboard.
func QuizStatsHandler(cat catalog.Store, scores score.Store) http.HandlerFunc {
	type entry struct {
		score.QuizStats
		Title string `json:"title"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := cat.ListQuizzes(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		out := make([]entry, 0, len(quizzes))
		for _, q := range quizzes {
			scs, err := scores.ByQuiz(r.Context(), q.ID)
			if err != nil {
				writeErr(w, err)
				return
			}
			out = append(out, entry{QuizStats: score.Stats(q.ID, scs), Title: q.Title})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
