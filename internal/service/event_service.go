package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/notify"
)

type eventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, id int64, status models.EventStatus) (*models.EventStatusProjection, error)
	ListPhotos(ctx context.Context, eventID int64) ([]string, error)
}

// EventService owns the event lifecycle: creation, partial updates with
// date-consistency validation, status transitions and effective-status
// derivation.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
	changes   notify.Publisher
	now       func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger, changes notify.Publisher) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		changes:   changes,
		now:       time.Now,
	}
}

// Create validates and stores an organizer draft. New events default to
// PENDING so they enter the central-office approval queue immediately.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Title is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Title is required")
	}
	if err := validateEventDates(req.StartAt, req.EndAt, req.StaffDeadline, req.ParticipantDeadline); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:               title,
		Description:         optionalString(req.Description),
		Venue:               optionalString(req.Venue),
		StartAt:             req.StartAt,
		EndAt:               req.EndAt,
		Fee:                 req.Fee,
		BankName:            optionalString(req.BankName),
		BankAccountNo:       optionalString(req.BankAccountNo),
		BankAccountName:     optionalString(req.BankAccountName),
		OrganizerName:       optionalString(req.OrganizerName),
		OrganizerContact:    optionalString(req.OrganizerContact),
		ScholarshipHours:    req.ScholarshipHours,
		MaxStaff:            req.MaxStaff,
		MaxParticipant:      req.MaxParticipant,
		StaffDeadline:       req.StaffDeadline,
		ParticipantDeadline: req.ParticipantDeadline,
		Status:              models.EventStatusPending,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.publish()
	s.logger.Info("event created", zap.Int64("event_id", event.ID))
	return event, nil
}

// Get returns the full record plus the gallery and derived display status.
func (s *EventService) Get(ctx context.Context, id int64) (*dto.EventDetail, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	photos, err := s.repo.ListPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EventDetail{
		Event:           *event,
		EffectiveStatus: event.EffectiveStatus(s.now()),
		Photos:          photos,
	}, nil
}

// List returns events with effective statuses applied.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]dto.EventListItem, *models.Pagination, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	items := make([]dto.EventListItem, 0, len(events))
	for _, event := range events {
		items = append(items, dto.EventListItem{
			Event:           event,
			EffectiveStatus: event.EffectiveStatus(now),
		})
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Update applies a partial patch. Date invariants are re-validated against
// the effective values (patch where present, stored otherwise), so a patch
// that only introduces a deadline still fails against an existing start
// date. Nothing is written when validation fails.
func (s *EventService) Update(ctx context.Context, id int64, req dto.UpdateEventRequest) (*models.Event, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}

	updated := *current

	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if !req.Title.Valid || title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Title cannot be empty")
		}
		updated.Title = title
	}

	updated.Description = applyString(req.Description, updated.Description)
	updated.Venue = applyString(req.Venue, updated.Venue)
	updated.BankName = applyString(req.BankName, updated.BankName)
	updated.BankAccountNo = applyString(req.BankAccountNo, updated.BankAccountNo)
	updated.BankAccountName = applyString(req.BankAccountName, updated.BankAccountName)
	updated.OrganizerName = applyString(req.OrganizerName, updated.OrganizerName)
	updated.OrganizerContact = applyString(req.OrganizerContact, updated.OrganizerContact)

	if req.Fee.Set {
		if req.Fee.Valid && req.Fee.Value < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Fee must be non-negative")
		}
		updated.Fee = req.Fee.Ptr()
	}
	if req.ScholarshipHours.Set {
		if req.ScholarshipHours.Valid && req.ScholarshipHours.Value < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "ScholarshipHours must be non-negative")
		}
		updated.ScholarshipHours = req.ScholarshipHours.Ptr()
	}
	if req.MaxStaff.Set {
		if req.MaxStaff.Valid && req.MaxStaff.Value < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "MaxStaff must be non-negative")
		}
		updated.MaxStaff = req.MaxStaff.Ptr()
	}
	if req.MaxParticipant.Set {
		if req.MaxParticipant.Valid && req.MaxParticipant.Value < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "MaxParticipant must be non-negative")
		}
		updated.MaxParticipant = req.MaxParticipant.Ptr()
	}

	updated.StartAt = applyTime(req.StartAt, updated.StartAt)
	updated.EndAt = applyTime(req.EndAt, updated.EndAt)
	updated.StaffDeadline = applyTime(req.StaffDeadline, updated.StaffDeadline)
	updated.ParticipantDeadline = applyTime(req.ParticipantDeadline, updated.ParticipantDeadline)

	if err := validateEventDates(updated.StartAt, updated.EndAt, updated.StaffDeadline, updated.ParticipantDeadline); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	s.publish()
	return &updated, nil
}

// SetStatus performs a status-only transition. Any valid status may move to
// any other; only token validity is enforced.
func (s *EventService) SetStatus(ctx context.Context, id int64, token string) (*models.EventStatusProjection, error) {
	status, err := models.ParseEventStatus(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status")
	}
	projection, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	s.publish()
	s.logger.Info("event status changed", zap.Int64("event_id", id), zap.String("status", string(status)))
	return projection, nil
}

func (s *EventService) publish() {
	if s.changes != nil {
		s.changes.Publish(notify.TableEvents)
	}
}

func validateEventDates(start, end, staffDeadline, participantDeadline *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return appErrors.Clone(appErrors.ErrValidation, "EndDate must be after StartDate")
	}
	if start != nil && staffDeadline != nil && staffDeadline.After(*start) {
		return appErrors.Clone(appErrors.ErrValidation, "StaffDeadline must be on or before StartDate")
	}
	if start != nil && participantDeadline != nil && participantDeadline.After(*start) {
		return appErrors.Clone(appErrors.ErrValidation, "ParticipantDeadline must be on or before StartDate")
	}
	return nil
}

// optionalString normalises an empty or blank submission to a stored null.
func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// applyString folds a tri-state patch field onto the current value: absent
// keeps it, null or empty clears it, anything else replaces it.
func applyString(opt dto.Optional[string], current *string) *string {
	if !opt.Set {
		return current
	}
	if !opt.Valid {
		return nil
	}
	return optionalString(opt.Value)
}

func applyTime(opt dto.Optional[time.Time], current *time.Time) *time.Time {
	if !opt.Set {
		return current
	}
	return opt.Ptr()
}
