package domain

import "errors"

var (
	// ErrNotFound is returned when a quiz, question, user, or score id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDuration is returned when a quiz's stored time budget is absent or malformed.
	ErrInvalidDuration = errors.New("invalid quiz duration")
	// ErrAlreadySubmitted is returned when a score already exists for a (user, quiz) pair.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrSubmissionExpired is returned when deadline enforcement is on and a submission
	// arrives after the session's time budget plus grace.
	ErrSubmissionExpired = errors.New("submission window expired")
	// ErrUnauthenticated is returned for missing or invalid credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the principal's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a uniqueness constraint other than the
	// single-attempt guard is violated (e.g. duplicate subject name or email).
	ErrConflict = errors.New("conflict")
)
