package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

// FundraisingRepository provides persistence for fundraising campaigns.
type FundraisingRepository struct {
	db *sqlx.DB
}

// NewFundraisingRepository creates the repository.
func NewFundraisingRepository(db *sqlx.DB) *FundraisingRepository {
	return &FundraisingRepository{db: db}
}

// Create inserts a new campaign and assigns its identifier.
func (r *FundraisingRepository) Create(ctx context.Context, campaign *models.Fundraising) error {
	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	const query = `INSERT INTO fundraising (title, description, goal, poster_url, status, created_at, updated_at)
VALUES (:title, :description, :goal, :poster_url, :status, :created_at, :updated_at)
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, campaign)
	if err != nil {
		return fmt.Errorf("create fundraising: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	if rows.Next() {
		if err := rows.Scan(&campaign.ID); err != nil {
			return fmt.Errorf("scan fundraising id: %w", err)
		}
	}
	return nil
}

// GetByID returns a campaign by identifier.
func (r *FundraisingRepository) GetByID(ctx context.Context, id int64) (*models.Fundraising, error) {
	const query = `SELECT id, title, description, goal, poster_url, status, created_at, updated_at
FROM fundraising WHERE id = $1`
	var campaign models.Fundraising
	if err := r.db.GetContext(ctx, &campaign, query, id); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List returns all campaigns newest-first.
func (r *FundraisingRepository) List(ctx context.Context) ([]models.Fundraising, error) {
	const query = `SELECT id, title, description, goal, poster_url, status, created_at, updated_at
FROM fundraising ORDER BY created_at DESC, id DESC`
	var campaigns []models.Fundraising
	if err := r.db.SelectContext(ctx, &campaigns, query); err != nil {
		return nil, fmt.Errorf("list fundraising: %w", err)
	}
	return campaigns, nil
}

// UpdateStatus writes only the status column.
func (r *FundraisingRepository) UpdateStatus(ctx context.Context, id int64, status models.FundraisingStatus) error {
	const query = `UPDATE fundraising SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update fundraising status: %w", err)
	}
	return requireRowAffected(result)
}

// SetPosterURL persists the campaign poster media reference.
func (r *FundraisingRepository) SetPosterURL(ctx context.Context, id int64, url string) error {
	const query = `UPDATE fundraising SET poster_url = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set fundraising poster: %w", err)
	}
	return requireRowAffected(result)
}
