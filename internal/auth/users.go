package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/domain"
	"github.com/quizmaster-app/quizmaster/internal/rbac"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Qualification string    `json:"qualification,omitempty"`
	DOB           string    `json:"dob,omitempty"` // YYYY-MM-DD
	Role          rbac.Role `json:"role"`
	CreatedAt     int64     `json:"created_at,omitempty"`
}

// UserStore persists users and verifies credentials.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(dbh *sql.DB) *UserStore {
	return &UserStore{db: dbh}
}

type NewUser struct {
	Email         string
	Password      string
	FullName      string
	Qualification string
	DOB           string
	Role          rbac.Role
}

func (s *UserStore) Create(ctx context.Context, nu NewUser) (User, error) {
	if nu.Email == "" || nu.Password == "" {
		return User{}, fmt.Errorf("%w: email and password required", domain.ErrConflict)
	}
	if nu.Role == "" {
		nu.Role = rbac.RoleUser
	}
	if _, err := rbac.ParseRole(string(nu.Role)); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:            uuid.NewString(),
		Email:         nu.Email,
		FullName:      nu.FullName,
		Qualification: nu.Qualification,
		DOB:           nu.DOB,
		Role:          nu.Role,
		CreatedAt:     time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id,email,password_hash,full_name,qualification,dob,role,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Email, string(hash), u.FullName, u.Qualification, u.DOB, string(u.Role), u.CreatedAt)
	if db.IsUniqueViolation(err) {
		return User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate verifies email+password and returns the stored user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (User, error) {
	var (
		u    User
		hash string
		role string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id,email,password_hash,full_name,qualification,dob,role,created_at FROM users WHERE email=$1`,
		email).Scan(&u.ID, &u.Email, &hash, &u.FullName, &u.Qualification, &u.DOB, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, domain.ErrUnauthenticated
	}
	u.Role, err = rbac.ParseRole(role)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (User, error) {
	var (
		u    User
		role string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id,email,full_name,qualification,dob,role,created_at FROM users WHERE id=$1`,
		id).Scan(&u.ID, &u.Email, &u.FullName, &u.Qualification, &u.DOB, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, domain.ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Role, err = rbac.ParseRole(role)
	return u, err
}

func (s *UserStore) UserExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,email,full_name,qualification,dob,role,created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []User{}
	for rows.Next() {
		var (
			u    User
			role string
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Qualification, &u.DOB, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		if u.Role, err = rbac.ParseRole(role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update rewrites profile fields and role (admin screen).
func (s *UserStore) Update(ctx context.Context, u User) error {
	if _, err := rbac.ParseRole(string(u.Role)); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET email=$1, full_name=$2, qualification=$3, dob=$4, role=$5 WHERE id=$6`,
		u.Email, u.FullName, u.Qualification, u.DOB, string(u.Role), u.ID)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when no user with the given
// email exists. A blank password skips bootstrapping.
func (s *UserStore) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email=$1`, email).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = s.Create(ctx, NewUser{
		Email:    email,
		Password: password,
		FullName: "Administrator",
		Role:     rbac.RoleAdmin,
	})
	return err
}
