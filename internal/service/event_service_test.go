package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

type mockEventRepo struct {
	events      map[int64]*models.Event
	nextID      int64
	createCalls int
	updateCalls int
	photos      map[int64][]string
	statusCalls int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[int64]*models.Event), photos: make(map[int64][]string), nextID: 1}
}

func (m *mockEventRepo) Create(_ context.Context, event *models.Event) error {
	m.createCalls++
	event.ID = m.nextID
	m.nextID++
	copied := *event
	m.events[event.ID] = &copied
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (m *mockEventRepo) List(_ context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	var out []models.Event
	for _, event := range m.events {
		if filter.Status != nil && event.Status != *filter.Status {
			continue
		}
		out = append(out, *event)
	}
	return out, len(out), nil
}

func (m *mockEventRepo) Update(_ context.Context, event *models.Event) error {
	m.updateCalls++
	if _, ok := m.events[event.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *event
	m.events[event.ID] = &copied
	return nil
}

func (m *mockEventRepo) UpdateStatus(_ context.Context, id int64, status models.EventStatus) (*models.EventStatusProjection, error) {
	m.statusCalls++
	event, ok := m.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	event.Status = status
	return &models.EventStatusProjection{ID: id, Title: event.Title, Status: status}, nil
}

func (m *mockEventRepo) ListPhotos(_ context.Context, eventID int64) ([]string, error) {
	return m.photos[eventID], nil
}

type stubPublisher struct {
	mu     sync.Mutex
	tables []string
}

func (s *stubPublisher) Publish(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, table)
}

func (s *stubPublisher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables)
}

func TestEventServiceCreateDefaultsToPending(t *testing.T) {
	repo := newMockEventRepo()
	changes := &stubPublisher{}
	svc := NewEventService(repo, nil, zap.NewNop(), changes)

	event, err := svc.Create(context.Background(), dto.CreateEventRequest{Title: "  Open House  "})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPending, event.Status)
	assert.Equal(t, "Open House", event.Title)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, changes.count())
}

func TestEventServiceCreateRequiresTitle(t *testing.T) {
	svc := NewEventService(newMockEventRepo(), nil, zap.NewNop(), nil)

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEventServiceCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewEventService(newMockEventRepo(), nil, zap.NewNop(), nil)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := svc.Create(context.Background(), dto.CreateEventRequest{Title: "Sports Day", StartAt: &start, EndAt: &end})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EndDate must be after StartDate")
}

func TestEventServiceCreateRejectsDeadlineAfterStart(t *testing.T) {
	svc := NewEventService(newMockEventRepo(), nil, zap.NewNop(), nil)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	late := start.Add(24 * time.Hour)
	_, err := svc.Create(context.Background(), dto.CreateEventRequest{Title: "Sports Day", StartAt: &start, StaffDeadline: &late})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StaffDeadline must be on or before StartDate")
}

func TestEventServiceUpdateTriState(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil, zap.NewNop(), &stubPublisher{})

	desc := "original description"
	venue := "main hall"
	repo.events[1] = &models.Event{ID: 1, Title: "Club Fair", Description: &desc, Venue: &venue, Status: models.EventStatusPending}
	repo.nextID = 2

	// Absent field keeps the stored value; explicit null clears it.
	req := dto.UpdateEventRequest{
		Description: dto.Optional[string]{Set: true, Valid: false},
	}
	updated, err := svc.Update(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.Venue)
	assert.Equal(t, "main hall", *updated.Venue)
}

func TestEventServiceUpdateValidatesAgainstStoredDates(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil, zap.NewNop(), nil)

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.events[1] = &models.Event{ID: 1, Title: "Camp", StartAt: &start, Status: models.EventStatusLive}
	repo.nextID = 2

	late := start.Add(time.Hour)
	req := dto.UpdateEventRequest{
		ParticipantDeadline: dto.Optional[time.Time]{Set: true, Valid: true, Value: late},
	}
	_, err := svc.Update(context.Background(), 1, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ParticipantDeadline must be on or before StartDate")
	assert.Equal(t, 0, repo.updateCalls)
}

func TestEventServiceUpdateRejectsEmptyTitle(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil, zap.NewNop(), nil)
	repo.events[1] = &models.Event{ID: 1, Title: "Club Fair", Status: models.EventStatusPending}

	req := dto.UpdateEventRequest{Title: dto.Optional[string]{Set: true, Valid: true, Value: "   "}}
	_, err := svc.Update(context.Background(), 1, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title cannot be empty")
}

func TestEventServiceSetStatusApprovedAlias(t *testing.T) {
	repo := newMockEventRepo()
	changes := &stubPublisher{}
	svc := NewEventService(repo, nil, zap.NewNop(), changes)
	repo.events[7] = &models.Event{ID: 7, Title: "Charity Run", Status: models.EventStatusPending}

	projection, err := svc.SetStatus(context.Background(), 7, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusLive, projection.Status)
	assert.Equal(t, models.EventStatusLive, repo.events[7].Status)
	assert.Equal(t, 1, changes.count())
}

func TestEventServiceSetStatusUnknownToken(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil, zap.NewNop(), nil)
	repo.events[7] = &models.Event{ID: 7, Title: "Charity Run", Status: models.EventStatusPending}

	_, err := svc.SetStatus(context.Background(), 7, "ARCHIVED")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 0, repo.statusCalls)
}

func TestEventServiceGetDerivesComplete(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil, zap.NewNop(), nil)

	past := time.Now().Add(-48 * time.Hour)
	repo.events[3] = &models.Event{ID: 3, Title: "Orientation", EndAt: &past, Status: models.EventStatusLive}
	repo.photos[3] = []string{"https://cdn.example.edu/media/photos/a.jpg"}

	detail, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusLive, detail.Event.Status)
	assert.Equal(t, models.EventStatusComplete, detail.EffectiveStatus)
	assert.Len(t, detail.Photos, 1)
}

func TestEventServiceGetNotFound(t *testing.T) {
	svc := NewEventService(newMockEventRepo(), nil, zap.NewNop(), nil)

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
