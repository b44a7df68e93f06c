package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/models"
	"github.com/studentaffairs/org-portal-api/internal/service"
)

type fakeEventRepo struct {
	events     map[int64]*models.Event
	lastStatus models.EventStatus
}

func (f *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = int64(len(f.events) + 1)
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) List(context.Context, models.EventFilter) ([]models.Event, int, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, event := range f.events {
		out = append(out, *event)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id int64, status models.EventStatus) (*models.EventStatusProjection, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	f.lastStatus = status
	event.Status = status
	return &models.EventStatusProjection{ID: id, Title: event.Title, Status: status}, nil
}

func (f *fakeEventRepo) ListPhotos(context.Context, int64) ([]string, error) {
	return nil, nil
}

func newEventHandlerFixture() (*EventHandler, *fakeEventRepo) {
	return newEventHandlerFixtureWithRegs(&fakeRegistrationRepo{})
}

func newEventHandlerFixtureWithRegs(regs *fakeRegistrationRepo) (*EventHandler, *fakeEventRepo) {
	repo := &fakeEventRepo{events: map[int64]*models.Event{
		7: {ID: 7, Title: "Sports Day", Status: models.EventStatusPending},
	}}
	svc := service.NewEventService(repo, nil, zap.NewNop(), nil)
	registrations := service.NewRegistrationService(regs, repo, nil, zap.NewNop())
	return NewEventHandler(svc, registrations), repo
}

func TestEventHandlerListRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newEventHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events?status=SHIPPED", nil)
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newEventHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventHandlerGetIncludesSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	regs := &fakeRegistrationRepo{rows: []models.Registration{
		{EventID: 7, Role: models.RoleStaff, StudentID: "6401111"},
		{EventID: 7, Role: models.RoleParticipant, StudentID: "6402222"},
		{EventID: 7, Role: models.RoleParticipant, StudentID: "6403333"},
	}}
	handler, repo := newEventHandlerFixtureWithRegs(regs)
	maxParticipant := 5
	repo.events[7].MaxParticipant = &maxParticipant

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	slots, ok := envelope.Data["slots"].(map[string]interface{})
	if !ok {
		t.Fatalf("detail carries no slots block: %s", rec.Body.String())
	}
	assert.Equal(t, float64(2), slots["participant_count"])
	assert.Equal(t, float64(3), slots["open_participant_slots"])
	assert.Nil(t, slots["open_staff_slots"])
}

func TestEventHandlerSetStatusApprovedAlias(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEventHandlerFixture()

	body := []byte(`{"status":"approved"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/events/7/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.SetStatus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.EventStatusLive, repo.lastStatus)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "LIVE", envelope.Data["status"])
}

func TestEventHandlerSetStatusUnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEventHandlerFixture()

	body := []byte(`{"status":"ARCHIVED"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/events/7/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.SetStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.lastStatus)
}
