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

type announcementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context, status *models.AnnouncementStatus) ([]models.Announcement, error)
	UpdateStatus(ctx context.Context, id int64, status models.AnnouncementStatus) error
}

// AnnouncementService is the portal's third approval lane; announcements
// feed the same pending-count badge as events and fundraising.
type AnnouncementService struct {
	repo      announcementRepository
	validator *validator.Validate
	logger    *zap.Logger
	changes   notify.Publisher
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(repo announcementRepository, validate *validator.Validate, logger *zap.Logger, changes notify.Publisher) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, validator: validate, logger: logger, changes: changes}
}

// Create stores an organizer draft awaiting approval.
func (s *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and body are required")
	}
	announcement := &models.Announcement{
		Title:  strings.TrimSpace(req.Title),
		Body:   strings.TrimSpace(req.Body),
		Status: models.AnnouncementStatusPending,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	s.publish()
	return announcement, nil
}

// List returns announcements, optionally filtered by a status token.
func (s *AnnouncementService) List(ctx context.Context, statusToken string) ([]models.Announcement, error) {
	var status *models.AnnouncementStatus
	if token := strings.TrimSpace(statusToken); token != "" {
		parsed, err := parseAnnouncementStatus(token)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status")
		}
		status = &parsed
	}
	return s.repo.List(ctx, status)
}

// SetStatus performs the central-office transition.
func (s *AnnouncementService) SetStatus(ctx context.Context, id int64, token string) error {
	status, err := parseAnnouncementStatus(token)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		return err
	}
	s.publish()
	return nil
}

func (s *AnnouncementService) publish() {
	if s.changes != nil {
		s.changes.Publish(notify.TableAnnouncements)
	}
}

func parseAnnouncementStatus(token string) (models.AnnouncementStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "PENDING":
		return models.AnnouncementStatusPending, nil
	case "LIVE", "APPROVED":
		return models.AnnouncementStatusLive, nil
	case "REJECTED":
		return models.AnnouncementStatusRejected, nil
	default:
		return "", fmt.Errorf("unknown announcement status %q", token)
	}
}
