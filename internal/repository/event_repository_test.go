package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

func newEventRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func eventRows(events ...models.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "venue", "start_at", "end_at", "fee",
		"bank_name", "bank_account_no", "bank_account_name", "promptpay_qr",
		"organizer_name", "organizer_contact", "scholarship_hours", "poster_url",
		"max_staff", "max_participant", "staff_deadline", "participant_deadline",
		"status", "created_at", "updated_at",
	})
	for _, e := range events {
		rows.AddRow(e.ID, e.Title, e.Description, e.Venue, e.StartAt, e.EndAt, e.Fee,
			e.BankName, e.BankAccountNo, e.BankAccountName, e.PromptPayQR,
			e.OrganizerName, e.OrganizerContact, e.ScholarshipHours, e.PosterURL,
			e.MaxStaff, e.MaxParticipant, e.StaffDeadline, e.ParticipantDeadline,
			e.Status, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestEventRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	event := &models.Event{Title: "Open House", Status: models.EventStatusPending}
	require.NoError(t, repo.Create(context.Background(), event))
	require.Equal(t, int64(42), event.ID)
	require.False(t, event.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title")).
		WithArgs(int64(7)).
		WillReturnRows(eventRows(models.Event{ID: 7, Title: "Sports Day", Status: models.EventStatusLive, CreatedAt: now, UpdatedAt: now}))

	event, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Sports Day", event.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryGetByIDMissing(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title")).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryListWithStatusFilter(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	now := time.Now().UTC()
	status := models.EventStatusPending
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE 1=1 AND status = $1")).
		WithArgs(status).
		WillReturnRows(eventRows(models.Event{ID: 1, Title: "A", Status: status, CreatedAt: now, UpdatedAt: now}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events")).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	events, total, err := repo.List(context.Background(), models.EventFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, 1, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryUpdateStatusProjection(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE events SET status")).
		WithArgs(models.EventStatusLive, sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow(int64(7), "Sports Day", "LIVE"))

	projection, err := repo.UpdateStatus(context.Background(), 7, models.EventStatusLive)
	require.NoError(t, err)
	require.Equal(t, models.EventStatusLive, projection.Status)
	require.Equal(t, "Sports Day", projection.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositorySetPosterURLMissingRow(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET poster_url")).
		WithArgs("https://cdn.example.edu/media/poster/a.png", sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPosterURL(context.Background(), 9, "https://cdn.example.edu/media/poster/a.png")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryPhotos(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewEventRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_photos")).
		WithArgs(int64(7), "https://cdn.example.edu/media/photos/a.jpg", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.InsertPhoto(context.Background(), 7, "https://cdn.example.edu/media/photos/a.jpg"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT url FROM event_photos")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("https://cdn.example.edu/media/photos/a.jpg"))
	urls, err := repo.ListPhotos(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
