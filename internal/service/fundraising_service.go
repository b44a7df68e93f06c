package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/notify"
)

type fundraisingRepository interface {
	Create(ctx context.Context, campaign *models.Fundraising) error
	GetByID(ctx context.Context, id int64) (*models.Fundraising, error)
	List(ctx context.Context) ([]models.Fundraising, error)
	UpdateStatus(ctx context.Context, id int64, status models.FundraisingStatus) error
}

// FundraisingService manages campaign records: the parents of the donation
// ledger and the fundraising-poster media target.
type FundraisingService struct {
	repo      fundraisingRepository
	validator *validator.Validate
	logger    *zap.Logger
	changes   notify.Publisher
}

// NewFundraisingService constructs a FundraisingService.
func NewFundraisingService(repo fundraisingRepository, validate *validator.Validate, logger *zap.Logger, changes notify.Publisher) *FundraisingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FundraisingService{repo: repo, validator: validate, logger: logger, changes: changes}
}

// Create stores an organizer campaign draft awaiting approval.
func (s *FundraisingService) Create(ctx context.Context, req dto.CreateFundraisingRequest) (*models.Fundraising, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Title is required")
	}
	campaign := &models.Fundraising{
		Title:       strings.TrimSpace(req.Title),
		Description: optionalString(req.Description),
		Goal:        req.Goal,
		Status:      models.FundraisingStatusPending,
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.publish()
	return campaign, nil
}

// Get returns a campaign by identifier.
func (s *FundraisingService) Get(ctx context.Context, id int64) (*models.Fundraising, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fundraising campaign not found")
		}
		return nil, err
	}
	return campaign, nil
}

// List returns all campaigns newest-first.
func (s *FundraisingService) List(ctx context.Context) ([]models.Fundraising, error) {
	return s.repo.List(ctx)
}

// SetStatus performs the central-office transition.
func (s *FundraisingService) SetStatus(ctx context.Context, id int64, token string) error {
	status, err := parseFundraisingStatus(token)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "fundraising campaign not found")
		}
		return err
	}
	s.publish()
	return nil
}

func (s *FundraisingService) publish() {
	if s.changes != nil {
		s.changes.Publish(notify.TableFundraising)
	}
}

func parseFundraisingStatus(token string) (models.FundraisingStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "PENDING":
		return models.FundraisingStatusPending, nil
	case "LIVE", "APPROVED":
		return models.FundraisingStatusLive, nil
	case "REJECTED":
		return models.FundraisingStatusRejected, nil
	case "CLOSED":
		return models.FundraisingStatusClosed, nil
	default:
		return "", fmt.Errorf("unknown fundraising status %q", token)
	}
}
