package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

// ColorRepository provides persistence for merchandise color swatches.
type ColorRepository struct {
	db *sqlx.DB
}

// NewColorRepository creates the repository.
func NewColorRepository(db *sqlx.DB) *ColorRepository {
	return &ColorRepository{db: db}
}

// List returns every swatch in catalogue order.
func (r *ColorRepository) List(ctx context.Context) ([]models.Color, error) {
	const query = `SELECT id, name, hex, photo_url, created_at, updated_at FROM colors ORDER BY name`
	var colors []models.Color
	if err := r.db.SelectContext(ctx, &colors, query); err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	return colors, nil
}

// GetByID returns a swatch by identifier.
func (r *ColorRepository) GetByID(ctx context.Context, id int64) (*models.Color, error) {
	const query = `SELECT id, name, hex, photo_url, created_at, updated_at FROM colors WHERE id = $1`
	var color models.Color
	if err := r.db.GetContext(ctx, &color, query, id); err != nil {
		return nil, err
	}
	return &color, nil
}

// SetPhotoURL persists the swatch photo media reference.
func (r *ColorRepository) SetPhotoURL(ctx context.Context, id int64, url string) error {
	const query = `UPDATE colors SET photo_url = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set color photo: %w", err)
	}
	return requireRowAffected(result)
}
