package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

// DonationRepository provides persistence for the append-only donation
// ledger. Rows are inserted once and never updated except for attaching
// slip evidence.
type DonationRepository struct {
	db *sqlx.DB
}

// NewDonationRepository creates the repository.
func NewDonationRepository(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Insert appends a donation row and assigns its identifier and the
// server-side submission timestamp.
func (r *DonationRepository) Insert(ctx context.Context, donation *models.Donation) error {
	donation.SubmittedAt = time.Now().UTC()
	const query = `INSERT INTO donations (fundraising_id, amount, donor_name, anonymous, slip_url, submitted_at)
VALUES (:fundraising_id, :amount, :donor_name, :anonymous, :slip_url, :submitted_at)
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, donation)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	if rows.Next() {
		if err := rows.Scan(&donation.ID); err != nil {
			return fmt.Errorf("scan donation id: %w", err)
		}
	}
	return nil
}

// GetByID returns a donation by identifier.
func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	const query = `SELECT id, fundraising_id, amount, donor_name, anonymous, slip_url, submitted_at
FROM donations WHERE id = $1`
	var donation models.Donation
	if err := r.db.GetContext(ctx, &donation, query, id); err != nil {
		return nil, err
	}
	return &donation, nil
}

// ListByFundraising returns the campaign's ledger newest-first.
func (r *DonationRepository) ListByFundraising(ctx context.Context, fundraisingID int64) ([]models.Donation, error) {
	const query = `SELECT id, fundraising_id, amount, donor_name, anonymous, slip_url, submitted_at
FROM donations WHERE fundraising_id = $1 ORDER BY submitted_at DESC, id DESC`
	var donations []models.Donation
	if err := r.db.SelectContext(ctx, &donations, query, fundraisingID); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}

// SetSlipURL attaches slip evidence to an existing donation.
func (r *DonationRepository) SetSlipURL(ctx context.Context, id int64, url string) error {
	const query = `UPDATE donations SET slip_url = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return fmt.Errorf("set donation slip: %w", err)
	}
	return requireRowAffected(result)
}
