// Package repository provides postgres persistence for leads.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/visibility"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// leadColumns is the select list shared by every lead query; scanLead must
// stay in sync with it.
const leadColumns = `id, date, full_name, phone, alt_number, email, profession, state_name,
	investment_capital, segment, gender, dob, age, language, deemat_account_name,
	pan_card_number, aadhar_card_number, status, tags, notes, payment_history,
	team_id, assigned_to, assigned_at, created_at, updated_at`

// Repository persists leads in postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a lead repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a lead. A phone uniqueness violation maps to a conflict
// error so bulk imports can skip the row instead of aborting the batch.
func (r *Repository) Create(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (
			id, date, full_name, phone, alt_number, email, profession, state_name,
			investment_capital, segment, gender, dob, age, language, deemat_account_name,
			pan_card_number, aadhar_card_number, status, tags, notes, payment_history,
			team_id, assigned_to, assigned_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.Date, lead.FullName, lead.Phone, lead.AltNumber, lead.Email,
		lead.Profession, lead.StateName, lead.InvestmentCapital, lead.Segment,
		lead.Gender, lead.DOB, lead.Age, lead.Language, lead.DeematAccountName,
		lead.PanCardNumber, lead.AadharCardNumber, lead.Status, lead.Tags,
		lead.Notes, lead.PaymentHistory, lead.TeamID, lead.AssignedTo,
		lead.AssignedAt, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("a lead with this phone number already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}
	return nil
}

// GetByID fetches a single lead.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("lead not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch lead", err)
	}
	return lead, nil
}

// Update replaces every mutable field of the lead. The history strings are
// written whole; they are never patched in place.
func (r *Repository) Update(ctx context.Context, lead *domain.Lead) error {
	query := `
		UPDATE leads SET
			full_name = $2, phone = $3, alt_number = $4, email = $5, profession = $6,
			state_name = $7, investment_capital = $8, segment = $9, gender = $10,
			dob = $11, age = $12, language = $13, deemat_account_name = $14,
			pan_card_number = $15, aadhar_card_number = $16, status = $17, tags = $18,
			notes = $19, payment_history = $20, team_id = $21, assigned_to = $22,
			assigned_at = $23, updated_at = $24
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		lead.ID, lead.FullName, lead.Phone, lead.AltNumber, lead.Email,
		lead.Profession, lead.StateName, lead.InvestmentCapital, lead.Segment,
		lead.Gender, lead.DOB, lead.Age, lead.Language, lead.DeematAccountName,
		lead.PanCardNumber, lead.AadharCardNumber, lead.Status, lead.Tags,
		lead.Notes, lead.PaymentHistory, lead.TeamID, lead.AssignedTo,
		lead.AssignedAt, lead.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Conflict("a lead with this phone number already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lead not found")
	}
	return nil
}

// UpdateAssignment writes only the assignment tuple, for the dedicated
// assign operation.
func (r *Repository) UpdateAssignment(ctx context.Context, id uuid.UUID, assignedTo *uuid.UUID, teamID *uuid.UUID, assignedAt *time.Time) error {
	query := `
		UPDATE leads SET assigned_to = $2, team_id = $3, assigned_at = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, assignedTo, teamID, assignedAt)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to assign lead", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lead not found")
	}
	return nil
}

// Delete removes a lead.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete lead", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lead not found")
	}
	return nil
}

// ListVisible returns every lead inside the scope that matches the filters,
// newest creation date first with dateless leads at the end.
func (r *Repository) ListVisible(ctx context.Context, scope visibility.Scope, filters domain.ListFilters) ([]*domain.Lead, error) {
	if scope.None {
		return nil, nil
	}

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	switch {
	case scope.AssignedTo != nil:
		addCondition("assigned_to = $%d", *scope.AssignedTo)
	case scope.TeamID != nil:
		addCondition("team_id = $%d", *scope.TeamID)
	}

	if filters.Status != "" {
		addCondition("status = $%d", filters.Status)
	}
	if filters.Unassigned {
		conditions = append(conditions, "assigned_to IS NULL")
	} else if filters.AssignedTo != nil {
		addCondition("assigned_to = $%d", *filters.AssignedTo)
	}
	if filters.Tag != "" {
		addCondition("tags ILIKE $%d", "%"+filters.Tag+"%")
	}
	if filters.Name != "" {
		addCondition("full_name ILIKE $%d", "%"+filters.Name+"%")
	}
	if filters.DateFrom != nil {
		addCondition("date >= $%d", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCondition("date <= $%d", *filters.DateTo)
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC NULLS LAST"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan lead", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	return leads, nil
}

// PhoneExists reports whether any lead already holds the normalized phone.
func (r *Repository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leads WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to check phone", err)
	}
	return exists, nil
}

// ExistingPhones loads the full set of stored phone numbers. Bulk imports
// use it as a pre-check; the unique index remains the real guarantee.
func (r *Repository) ExistingPhones(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT phone FROM leads`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load phones", err)
	}
	defer rows.Close()

	phones := make(map[string]struct{})
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan phone", err)
		}
		phones[phone] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load phones", err)
	}
	return phones, nil
}

// NewAssignedCount counts leads handed to the user after the reference time.
// A user who has never logged in sees everything ever assigned to them.
func (r *Repository) NewAssignedCount(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM leads
		WHERE assigned_to = $1
		  AND assigned_at IS NOT NULL
		  AND assigned_at > COALESCE($2::timestamptz, 'epoch'::timestamptz)`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count new assignments", err)
	}
	return count, nil
}

// CountByStatus aggregates visible leads per pipeline status for dashboards.
func (r *Repository) CountByStatus(ctx context.Context, scope visibility.Scope) (map[string]int, error) {
	if scope.None {
		return map[string]int{}, nil
	}

	query := `SELECT status, COUNT(*) FROM leads`
	var args []interface{}
	switch {
	case scope.AssignedTo != nil:
		args = append(args, *scope.AssignedTo)
		query += ` WHERE assigned_to = $` + strconv.Itoa(len(args))
	case scope.TeamID != nil:
		args = append(args, *scope.TeamID)
		query += ` WHERE team_id = $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to scan status count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count by status", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Date, &lead.FullName, &lead.Phone, &lead.AltNumber,
		&lead.Email, &lead.Profession, &lead.StateName, &lead.InvestmentCapital,
		&lead.Segment, &lead.Gender, &lead.DOB, &lead.Age, &lead.Language,
		&lead.DeematAccountName, &lead.PanCardNumber, &lead.AadharCardNumber,
		&lead.Status, &lead.Tags, &lead.Notes, &lead.PaymentHistory,
		&lead.TeamID, &lead.AssignedTo, &lead.AssignedAt,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
