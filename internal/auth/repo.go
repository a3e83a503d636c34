package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the admin username does not exist.
var ErrNotFound = errors.New("admin not found")

// Repository defines persistence operations for admin accounts.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	UpdatePassword(ctx context.Context, username, password string) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches an admin account by username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `SELECT id, username, password, created_at FROM admin_users WHERE username = $1`
	var admin Admin
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.Password, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("auth: find admin: %w", err)
	}
	return &admin, nil
}

// UpdatePassword overwrites the stored password for username. Returns
// whether a row was actually updated.
func (r *PGRepository) UpdatePassword(ctx context.Context, username, password string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET password = $2 WHERE username = $1`, username, password)
	if err != nil {
		return false, fmt.Errorf("auth: update password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ Repository = (*PGRepository)(nil)
