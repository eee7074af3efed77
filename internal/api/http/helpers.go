package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmaster-app/quizmaster/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error string `json:"error"`
}

// writeErr translates domain error kinds into HTTP statuses. Anything not
// typed is a storage or internal failure.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidDuration):
		writeJSON(w, http.StatusUnprocessableEntity, errBody{Error: domain.ErrInvalidDuration.Error()})
	case errors.Is(err, domain.ErrAlreadySubmitted):
		writeJSON(w, http.StatusConflict, errBody{Error: domain.ErrAlreadySubmitted.Error()})
	case errors.Is(err, domain.ErrSubmissionExpired):
		writeJSON(w, http.StatusGone, errBody{Error: domain.ErrSubmissionExpired.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errBody{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errBody{Error: "forbidden"})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errBody{Error: "invalid credentials"})
	default:
		writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
