package rbac

import "testing"

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("user"); err != nil || r != RoleUser {
		t.Fatalf("ParseRole(user) = (%q, %v)", r, err)
	}
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole(admin) = (%q, %v)", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestCheckerPermissions(t *testing.T) {
	c := NewChecker(nil)

	if !c.Has(RoleUser, "quiz:take") {
		t.Fatalf("user should be allowed quiz:take")
	}
	if c.Has(RoleUser, "catalog:write") {
		t.Fatalf("user must not be allowed catalog:write")
	}
	if !c.Has(RoleAdmin, "catalog:write") || !c.Has(RoleAdmin, "users:manage") {
		t.Fatalf("admin wildcard should cover everything")
	}
	if c.Has("ghost", "quiz:take") {
		t.Fatalf("unknown role must have no permissions")
	}
	if !c.Any(RoleUser, "catalog:write", "score:view-own") {
		t.Fatalf("Any should match score:view-own")
	}
}
