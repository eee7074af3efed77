package rbac

import (
	"fmt"

	"github.com/quizmaster-app/quizmaster/internal/domain"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q: %w", s, domain.ErrForbidden)
	}
}

// Simple default policy. Expand as needed.
var RolePermissions = map[Role][]string{
	RoleUser: {
		"catalog:view",
		"quiz:take",
		"score:view-own",
	},
	RoleAdmin: {
		"*", // everything
	},
}
