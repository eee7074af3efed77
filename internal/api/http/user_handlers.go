package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/quizmaster/internal/auth"
)

// Admin user management. Self-service signup lives in auth_handlers.go.

func ListUsersHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := users.List(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// PUT /users/{userID} — profile and role edits.
func UpdateUserHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u auth.User
		if err := decode(r, &u); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u.ID = chi.URLParam(r, "userID")
		if err := users.Update(r.Context(), u); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func DeleteUserHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
