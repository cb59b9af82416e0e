package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `email, name, photo_url, role, created_at, updated_at`

// UserRepository handles persistence for identities.
type UserRepository struct {
	db DBTX
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*model.Identity, error) {
	var u model.Identity
	var role string
	if err := row.Scan(&u.Email, &u.Name, &u.PhotoURL, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

// Upsert creates the identity as a student or updates its profile fields.
// The role of an existing identity is never touched.
func (r *UserRepository) Upsert(ctx context.Context, email string, req model.UpsertUserRequest) (*model.Identity, error) {
	now := time.Now().UTC()
	u, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, photo_url, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name, photo_url = EXCLUDED.photo_url, updated_at = EXCLUDED.updated_at
		 RETURNING `+userColumns,
		email, req.Name, req.PhotoURL, string(model.RoleStudent), now,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

// GetByEmail returns a single identity or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List returns all identities, oldest first.
func (r *UserRepository) List(ctx context.Context) ([]model.Identity, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
}

// ListByRole returns identities holding role.
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Identity, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at ASC`,
		string(role),
	)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]model.Identity, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.Identity
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SetRole changes the role of an existing identity.
func (r *UserRepository) SetRole(ctx context.Context, email string, role model.Role) (*model.Identity, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE email = $1 RETURNING `+userColumns,
		email, string(role), time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set user role: %w", err)
	}
	return u, nil
}
