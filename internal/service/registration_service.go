package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

type registrationRepository interface {
	Insert(ctx context.Context, reg *models.Registration) error
	BulkUpsert(ctx context.Context, regs []models.Registration) error
	ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error)
	CountByRole(ctx context.Context, eventID int64, role models.RegistrationRole) (int, error)
}

type registrationEventReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

type uniqueViolationChecker func(error) bool

// RegistrationService owns the dual-mode registration pipeline: the
// idempotent public self-registration and the privileged bulk attendance
// save, plus the advisory capacity view.
type RegistrationService struct {
	repo   registrationRepository
	events registrationEventReader
	isDup  uniqueViolationChecker
	logger *zap.Logger
}

// NewRegistrationService constructs a RegistrationService. isDup recognises
// the store's duplicate-key rejection; it backs the idempotency of the
// public protocol.
func NewRegistrationService(repo registrationRepository, events registrationEventReader, isDup uniqueViolationChecker, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if isDup == nil {
		isDup = func(error) bool { return false }
	}
	return &RegistrationService{repo: repo, events: events, isDup: isDup, logger: logger}
}

// SelfRegister is the public insert-only protocol. A duplicate submission
// for the same (event, role, student) succeeds with the duplicate flag set:
// repeated submits from a flaky client must not surface as errors. The raw
// submission is preserved verbatim for audit.
func (s *RegistrationService) SelfRegister(ctx context.Context, eventID int64, sub dto.RegistrationSubmission) (*dto.RegisterResult, error) {
	role, err := models.ParseRegistrationRole(sub.Role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role")
	}

	name := strings.TrimSpace(sub.FullName)
	phone := strings.TrimSpace(sub.Phone)
	studentID := strings.TrimSpace(sub.StudentID)
	if name == "" || phone == "" || studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "full name, phone and student id are required")
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	reg := &models.Registration{
		EventID:   eventID,
		Role:      role,
		StudentID: studentID,
		Name:      name,
		Phone:     phone,
		Attended:  false,
		Payload:   payload,
	}
	if err := s.repo.Insert(ctx, reg); err != nil {
		if s.isDup(err) {
			return &dto.RegisterResult{OK: true, Duplicate: true}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.logger.Info("registration accepted",
		zap.Int64("event_id", eventID),
		zap.String("role", string(role)),
		zap.String("student_id", studentID))
	return &dto.RegisterResult{OK: true}, nil
}

// BulkSave is the privileged upsert protocol. Entries without a student id
// are silently dropped; surviving entries from both lists are merged into
// one batch keyed on (event, role, student). An empty batch is a no-op
// success.
func (s *RegistrationService) BulkSave(ctx context.Context, eventID int64, sub dto.RegistrationSubmission) (*dto.BulkSaveResult, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}

	batch := make([]models.Registration, 0)
	dropped := 0
	appendEntries := func(entries *[]dto.BulkRegistrationEntry, role models.RegistrationRole) {
		if entries == nil {
			return
		}
		for _, entry := range *entries {
			studentID := strings.TrimSpace(entry.StudentID)
			if studentID == "" {
				dropped++
				continue
			}
			batch = append(batch, models.Registration{
				EventID:   eventID,
				Role:      role,
				StudentID: studentID,
				Name:      strings.TrimSpace(entry.Name),
				Phone:     strings.TrimSpace(entry.Phone),
				Attended:  entry.Attended,
				Payload:   []byte("{}"),
			})
		}
	}
	appendEntries(sub.Staff, models.RoleStaff)
	appendEntries(sub.Participants, models.RoleParticipant)

	if len(batch) == 0 {
		return &dto.BulkSaveResult{OK: true, Saved: 0, Dropped: dropped}, nil
	}

	if err := s.repo.BulkUpsert(ctx, batch); err != nil {
		return nil, err
	}
	s.logger.Info("bulk attendance saved",
		zap.Int64("event_id", eventID),
		zap.Int("saved", len(batch)),
		zap.Int("dropped", dropped))
	return &dto.BulkSaveResult{OK: true, Saved: len(batch), Dropped: dropped}, nil
}

// List returns the event's registrations partitioned by role.
func (s *RegistrationService) List(ctx context.Context, eventID int64) (*dto.RegistrationList, error) {
	regs, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	list := &dto.RegistrationList{
		Staff:        []dto.RegistrationEntry{},
		Participants: []dto.RegistrationEntry{},
	}
	for _, reg := range regs {
		entry := dto.RegistrationEntry{
			StudentID: reg.StudentID,
			Name:      reg.Name,
			Phone:     reg.Phone,
			Attended:  reg.Attended,
		}
		switch reg.Role {
		case models.RoleStaff:
			list.Staff = append(list.Staff, entry)
		case models.RoleParticipant:
			list.Participants = append(list.Participants, entry)
		}
	}
	return list, nil
}

// Slots computes the advisory capacity view. Recomputed on every read and
// never cached: registrations arrive concurrently from many submitters.
// The figure is display-only and never gates a registration.
func (s *RegistrationService) Slots(ctx context.Context, eventID int64) (*dto.EventSlots, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	staffCount, err := s.repo.CountByRole(ctx, eventID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	participantCount, err := s.repo.CountByRole(ctx, eventID, models.RoleParticipant)
	if err != nil {
		return nil, err
	}
	return &dto.EventSlots{
		MaxStaff:            event.MaxStaff,
		MaxParticipant:      event.MaxParticipant,
		StaffCount:          staffCount,
		ParticipantCount:    participantCount,
		OpenStaffSlots:      models.OpenSlots(event.MaxStaff, staffCount),
		OpenParticipantSlot: models.OpenSlots(event.MaxParticipant, participantCount),
	}, nil
}
