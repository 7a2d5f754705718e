package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user. A unique violation on email maps to
// ErrDuplicateEmail.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, role, has_completed_onboarding, workspace_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Name),
		strings.ToLower(user.Email),
		nullableString(user.PasswordHash),
		user.Role,
		user.HasCompletedOnboarding,
		nullableString(user.WorkspaceName),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Upsert inserts or refreshes a user keyed by email. Used by OAuth logins
// where no password is involved.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, role, has_completed_onboarding, workspace_name, created_at, updated_at)
VALUES ($1, $2, $3, NULL, $4, FALSE, NULL, $5, $6)
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  role = EXCLUDED.role,
  updated_at = EXCLUDED.updated_at`

	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Name),
		strings.ToLower(user.Email),
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByID fetches a user by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, role, has_completed_onboarding, workspace_name, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByEmail fetches a user by email, case-insensitive.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, role, has_completed_onboarding, workspace_name, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.ToLower(email)))
}

// Update rewrites a user's mutable columns.
func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users
SET name = $2, email = $3, password_hash = $4, role = $5,
    has_completed_onboarding = $6, workspace_name = $7, updated_at = $8
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Name),
		strings.ToLower(user.Email),
		nullableString(user.PasswordHash),
		user.Role,
		user.HasCompletedOnboarding,
		nullableString(user.WorkspaceName),
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var name sql.NullString
	var passwordHash sql.NullString
	var workspaceName sql.NullString
	err := row.Scan(
		&user.ID,
		&name,
		&user.Email,
		&passwordHash,
		&user.Role,
		&user.HasCompletedOnboarding,
		&workspaceName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Name = name.String
	user.PasswordHash = passwordHash.String
	user.WorkspaceName = workspaceName.String
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
