// Package repository provides postgres persistence for teams.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Team is a named group of users leads can belong to.
type Team struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Repository persists teams in postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a team repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a team.
func (r *Repository) Create(ctx context.Context, team *Team) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3)`,
		team.ID, team.Name, team.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("a team with this name already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create team", err)
	}
	return nil
}

// GetByID fetches one team.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	var team Team
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM teams WHERE id = $1`, id,
	).Scan(&team.ID, &team.Name, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch team", err)
	}
	return &team, nil
}

// List returns every team, ordered by name.
func (r *Repository) List(ctx context.Context) ([]*Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list teams", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan team", err)
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list teams", err)
	}
	return teams, nil
}

// Rename updates a team's name.
func (r *Repository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE teams SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("a team with this name already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to rename team", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("team not found")
	}
	return nil
}

// Delete removes a team. Members and leads keep a dangling team_id cleared
// by the foreign key's ON DELETE SET NULL.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete team", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("team not found")
	}
	return nil
}
