// Package repository provides postgres persistence for users.
package repository

import (
	"context"
	"errors"

	"github.com/Iamalive23802/Dream-Trade/internal/users/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = `id, full_name, email, password_hash, role, status, team_id, last_login, created_at, updated_at`

// Repository persists users in postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a user repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an account.
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, role, status, team_id, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role,
		user.Status, user.TeamID, user.LastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("an account with this email already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}
	return nil
}

// GetByID fetches one account.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	return user, nil
}

// List returns every account, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}
	return users, nil
}

// ListActiveFrontline returns active relationship and financial managers,
// the roster a bulk import may assign rows to.
func (r *Repository) ListActiveFrontline(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE lower(status) = 'active' AND role IN ('relationship_mgr', 'financial_manager')`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list frontline users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list frontline users", err)
	}
	return users, nil
}

// Update writes the account's editable fields. The password hash is only
// replaced when non-empty.
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			full_name = $2, email = $3, role = $4, status = $5, team_id = $6,
			password_hash = CASE WHEN $7 = '' THEN password_hash ELSE $7 END,
			updated_at = $8
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.Role, user.Status,
		user.TeamID, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("an account with this email already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role,
		&user.Status, &user.TeamID, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
