package db

import "strings"

// IsUniqueViolation reports whether err is a uniqueness-constraint failure
// from either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}

// IsForeignKeyViolation reports whether err is a referential-integrity failure.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint failed") || // sqlite
		strings.Contains(msg, "violates foreign key constraint") // postgres
}
