package http

import (
	"net/http"

	"github.com/quizmaster-app/quizmaster/internal/auth"
)

// POST /auth/signup  { "email": ..., "password": ..., "full_name": ..., ... }
func SignupHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email         string `json:"email"`
			Password      string `json:"password"`
			FullName      string `json:"full_name"`
			Qualification string `json:"qualification"`
			DOB           string `json:"dob"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" || req.FullName == "" {
			http.Error(w, "email, password and full_name required", http.StatusBadRequest)
			return
		}
		// Self-service signup always yields a regular user; admins are
		// seeded or promoted by an existing admin.
		u, err := users.Create(r.Context(), auth.NewUser{
			Email:         req.Email,
			Password:      req.Password,
			FullName:      req.FullName,
			Qualification: req.Qualification,
			DOB:           req.DOB,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// POST /auth/login  { "email": ..., "password": ... }
func LoginHandler(a *auth.AuthService, users *auth.UserStore) http.HandlerFunc {
	type out struct {
		AccessToken string    `json:"access_token"`
		User        auth.User `json:"user"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, out{AccessToken: tok, User: u})
	}
}
