package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

const pqUniqueViolation = "23505"

// RegistrationRepository provides persistence for event registrations.
// The table's primary key (event_id, role, student_id) is the uniqueness
// constraint that makes the public submission idempotent.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Insert adds a single registration row. A duplicate composite key surfaces
// as an error satisfying IsUniqueViolation; the caller decides how to treat
// it.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	const query = `INSERT INTO registrations (event_id, role, student_id, name, phone, attended, payload, created_at, updated_at)
VALUES (:event_id, :role, :student_id, :name, :phone, :attended, :payload, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// BulkUpsert writes a batch keyed on (event_id, role, student_id): existing
// rows are overwritten including the attended flag, new rows are created.
func (r *RegistrationRepository) BulkUpsert(ctx context.Context, regs []models.Registration) error {
	if len(regs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO registrations (event_id, role, student_id, name, phone, attended, payload, created_at, updated_at)
VALUES (:event_id, :role, :student_id, :name, :phone, :attended, :payload, :created_at, :updated_at)
ON CONFLICT (event_id, role, student_id)
DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone, attended = EXCLUDED.attended, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for i := range regs {
		if regs[i].CreatedAt.IsZero() {
			regs[i].CreatedAt = now
		}
		regs[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, &regs[i]); err != nil {
			return fmt.Errorf("upsert registration %s: %w", regs[i].StudentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk upsert: %w", err)
	}
	return nil
}

// ListByEvent returns every registration for an event in submission order.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	const query = `SELECT event_id, role, student_id, name, phone, attended, payload, created_at, updated_at
FROM registrations WHERE event_id = $1 ORDER BY created_at, student_id`
	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query, eventID); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// CountByRole returns the live registration count for one role.
func (r *RegistrationRepository) CountByRole(ctx context.Context, eventID int64, role models.RegistrationRole) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND role = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, eventID, role); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// IsUniqueViolation reports whether err is the store rejecting a duplicate
// composite key.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
