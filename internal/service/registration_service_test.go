package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

var errDuplicateKey = errors.New("duplicate key value violates unique constraint")

type mockRegistrationRepo struct {
	inserted    []models.Registration
	upserted    []models.Registration
	listing     []models.Registration
	insertErr   error
	upsertErr   error
	insertCalls int
	upsertCalls int
}

func (m *mockRegistrationRepo) Insert(_ context.Context, reg *models.Registration) error {
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, *reg)
	return nil
}

func (m *mockRegistrationRepo) BulkUpsert(_ context.Context, regs []models.Registration) error {
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, regs...)
	return nil
}

func (m *mockRegistrationRepo) ListByEvent(_ context.Context, _ int64) ([]models.Registration, error) {
	return m.listing, nil
}

func (m *mockRegistrationRepo) CountByRole(_ context.Context, _ int64, role models.RegistrationRole) (int, error) {
	count := 0
	for _, reg := range m.listing {
		if reg.Role == role {
			count++
		}
	}
	return count, nil
}

type stubEventReader struct {
	event *models.Event
}

func (s *stubEventReader) GetByID(_ context.Context, id int64) (*models.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *s.event
	return &copied, nil
}

func newRegistrationFixture(repo *mockRegistrationRepo, event *models.Event) *RegistrationService {
	isDup := func(err error) bool { return errors.Is(err, errDuplicateKey) }
	return NewRegistrationService(repo, &stubEventReader{event: event}, isDup, zap.NewNop())
}

func TestSelfRegisterAccepts(t *testing.T) {
	repo := &mockRegistrationRepo{}
	svc := newRegistrationFixture(repo, &models.Event{ID: 1, Title: "Open House"})

	result, err := svc.SelfRegister(context.Background(), 1, dto.RegistrationSubmission{
		Role:      "participant",
		FullName:  " Somchai P. ",
		Phone:     "0812345678",
		StudentID: " 6401234 ",
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.False(t, result.Duplicate)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, models.RoleParticipant, repo.inserted[0].Role)
	assert.Equal(t, "6401234", repo.inserted[0].StudentID)
	assert.Equal(t, "Somchai P.", repo.inserted[0].Name)
	assert.False(t, repo.inserted[0].Attended)
	assert.NotEmpty(t, repo.inserted[0].Payload)
}

func TestSelfRegisterDuplicateIsSuccess(t *testing.T) {
	repo := &mockRegistrationRepo{insertErr: errDuplicateKey}
	svc := newRegistrationFixture(repo, &models.Event{ID: 1})

	result, err := svc.SelfRegister(context.Background(), 1, dto.RegistrationSubmission{
		Role:      "STAFF",
		FullName:  "Malee K.",
		Phone:     "0899999999",
		StudentID: "6405678",
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.True(t, result.Duplicate)
}

func TestSelfRegisterOtherInsertErrors(t *testing.T) {
	repo := &mockRegistrationRepo{insertErr: errors.New("connection reset")}
	svc := newRegistrationFixture(repo, &models.Event{ID: 1})

	_, err := svc.SelfRegister(context.Background(), 1, dto.RegistrationSubmission{
		Role:      "STAFF",
		FullName:  "Malee K.",
		Phone:     "0899999999",
		StudentID: "6405678",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSelfRegisterRequiresIdentity(t *testing.T) {
	svc := newRegistrationFixture(&mockRegistrationRepo{}, &models.Event{ID: 1})

	_, err := svc.SelfRegister(context.Background(), 1, dto.RegistrationSubmission{
		Role:     "PARTICIPANT",
		FullName: "Somchai P.",
		Phone:    "0812345678",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student id")
}

func TestSelfRegisterUnknownRole(t *testing.T) {
	svc := newRegistrationFixture(&mockRegistrationRepo{}, &models.Event{ID: 1})

	_, err := svc.SelfRegister(context.Background(), 1, dto.RegistrationSubmission{
		Role:      "VOLUNTEER",
		FullName:  "Somchai P.",
		Phone:     "0812345678",
		StudentID: "6401234",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSelfRegisterEventNotFound(t *testing.T) {
	svc := newRegistrationFixture(&mockRegistrationRepo{}, nil)

	_, err := svc.SelfRegister(context.Background(), 42, dto.RegistrationSubmission{
		Role:      "PARTICIPANT",
		FullName:  "Somchai P.",
		Phone:     "0812345678",
		StudentID: "6401234",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestBulkSaveDropsEntriesWithoutStudentID(t *testing.T) {
	repo := &mockRegistrationRepo{}
	svc := newRegistrationFixture(repo, &models.Event{ID: 5})

	staff := []dto.BulkRegistrationEntry{
		{StudentID: "6401111", Name: "A", Attended: true},
		{StudentID: "   ", Name: "no id"},
	}
	participants := []dto.BulkRegistrationEntry{
		{StudentID: "6402222", Name: "B"},
		{Name: "also no id"},
	}
	result, err := svc.BulkSave(context.Background(), 5, dto.RegistrationSubmission{
		Staff:        &staff,
		Participants: &participants,
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 2, result.Dropped)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, models.RoleStaff, repo.upserted[0].Role)
	assert.True(t, repo.upserted[0].Attended)
	assert.Equal(t, models.RoleParticipant, repo.upserted[1].Role)
}

func TestBulkSaveEmptyBatchIsNoOp(t *testing.T) {
	repo := &mockRegistrationRepo{}
	svc := newRegistrationFixture(repo, &models.Event{ID: 5})

	staff := []dto.BulkRegistrationEntry{}
	result, err := svc.BulkSave(context.Background(), 5, dto.RegistrationSubmission{Staff: &staff})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 0, result.Saved)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestBulkSaveAllDroppedIsNoOp(t *testing.T) {
	repo := &mockRegistrationRepo{}
	svc := newRegistrationFixture(repo, &models.Event{ID: 5})

	participants := []dto.BulkRegistrationEntry{{Name: "no id"}, {StudentID: "  "}}
	result, err := svc.BulkSave(context.Background(), 5, dto.RegistrationSubmission{Participants: &participants})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 0, result.Saved)
	assert.Equal(t, 2, result.Dropped)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestListPartitionsByRole(t *testing.T) {
	repo := &mockRegistrationRepo{listing: []models.Registration{
		{EventID: 5, Role: models.RoleStaff, StudentID: "6401111", Name: "A"},
		{EventID: 5, Role: models.RoleParticipant, StudentID: "6402222", Name: "B"},
		{EventID: 5, Role: models.RoleParticipant, StudentID: "6403333", Name: "C"},
	}}
	svc := newRegistrationFixture(repo, &models.Event{ID: 5})

	list, err := svc.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, list.Staff, 1)
	assert.Len(t, list.Participants, 2)
}

func TestSlotsAdvisoryComputation(t *testing.T) {
	maxStaff := 2
	repo := &mockRegistrationRepo{listing: []models.Registration{
		{Role: models.RoleStaff, StudentID: "1"},
		{Role: models.RoleStaff, StudentID: "2"},
		{Role: models.RoleStaff, StudentID: "3"},
		{Role: models.RoleParticipant, StudentID: "4"},
	}}
	svc := newRegistrationFixture(repo, &models.Event{ID: 5, MaxStaff: &maxStaff})

	slots, err := svc.Slots(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, slots.StaffCount)
	require.NotNil(t, slots.OpenStaffSlots)
	// Oversubscription clamps at zero rather than going negative.
	assert.Equal(t, 0, *slots.OpenStaffSlots)
	// No participant cap configured, so the open figure stays null.
	assert.Nil(t, slots.OpenParticipantSlot)
	assert.Equal(t, 1, slots.ParticipantCount)
}
