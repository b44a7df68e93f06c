package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

type colorRepository interface {
	List(ctx context.Context) ([]models.Color, error)
	GetByID(ctx context.Context, id int64) (*models.Color, error)
}

// ColorService exposes the merchandise swatch catalogue.
type ColorService struct {
	repo colorRepository
}

// NewColorService constructs a ColorService.
func NewColorService(repo colorRepository) *ColorService {
	return &ColorService{repo: repo}
}

// List returns the full swatch catalogue.
func (s *ColorService) List(ctx context.Context) ([]models.Color, error) {
	return s.repo.List(ctx)
}

// Get returns a single swatch.
func (s *ColorService) Get(ctx context.Context, id int64) (*models.Color, error) {
	color, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "color not found")
		}
		return nil, err
	}
	return color, nil
}
