// Package repository provides postgres persistence for the auth context.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/auth/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads and updates accounts for login.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates an auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail looks an account up case-insensitively. Returns (nil, nil)
// when no account matches.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, status, team_id, last_login
		FROM users WHERE lower(email) = lower($1)`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.TeamID, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to look up account", err)
	}
	return &user, nil
}

// UpdateLastLogin advances the account's last_login marker.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update last login", err)
	}
	return nil
}
