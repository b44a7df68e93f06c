package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

const eventColumns = `id, title, description, venue, start_at, end_at, fee,
bank_name, bank_account_no, bank_account_name, promptpay_qr,
organizer_name, organizer_contact, scholarship_hours, poster_url,
max_staff, max_participant, staff_deadline, participant_deadline,
status, created_at, updated_at`

// EventRepository provides persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and assigns its identifier.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	const query = `INSERT INTO events (title, description, venue, start_at, end_at, fee,
bank_name, bank_account_no, bank_account_name, promptpay_qr,
organizer_name, organizer_contact, scholarship_hours, poster_url,
max_staff, max_participant, staff_deadline, participant_deadline,
status, created_at, updated_at)
VALUES (:title, :description, :venue, :start_at, :end_at, :fee,
:bank_name, :bank_account_no, :bank_account_name, :promptpay_qr,
:organizer_name, :organizer_contact, :scholarship_hours, :poster_url,
:max_staff, :max_participant, :staff_deadline, :participant_deadline,
:status, :created_at, :updated_at)
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	if rows.Next() {
		if err := rows.Scan(&event.ID); err != nil {
			return fmt.Errorf("scan event id: %w", err)
		}
	}
	return nil
}

// GetByID returns an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events matching the filter, newest first.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s
ORDER BY start_at DESC NULLS LAST, id DESC
LIMIT %d OFFSET %d`, eventColumns, whereClause, size, offset)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// Update rewrites every mutable column of an existing event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, description = :description, venue = :venue,
start_at = :start_at, end_at = :end_at, fee = :fee,
bank_name = :bank_name, bank_account_no = :bank_account_no, bank_account_name = :bank_account_name,
organizer_name = :organizer_name, organizer_contact = :organizer_contact,
scholarship_hours = :scholarship_hours,
max_staff = :max_staff, max_participant = :max_participant,
staff_deadline = :staff_deadline, participant_deadline = :participant_deadline,
updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireRowAffected(result)
}

// UpdateStatus writes only the status column and returns the minimal
// projection of the transition.
func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status models.EventStatus) (*models.EventStatusProjection, error) {
	const query = `UPDATE events SET status = $1, updated_at = $2 WHERE id = $3
RETURNING id, title, status`
	var projection models.EventStatusProjection
	if err := r.db.GetContext(ctx, &projection, query, status, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return &projection, nil
}

// SetPosterURL persists the poster media reference.
func (r *EventRepository) SetPosterURL(ctx context.Context, id int64, url string) error {
	return r.setMediaColumn(ctx, "poster_url", id, url)
}

// SetPromptPayQR persists the payment-QR media reference.
func (r *EventRepository) SetPromptPayQR(ctx context.Context, id int64, url string) error {
	return r.setMediaColumn(ctx, "promptpay_qr", id, url)
}

func (r *EventRepository) setMediaColumn(ctx context.Context, column string, id int64, url string) error {
	query := fmt.Sprintf("UPDATE events SET %s = $1, updated_at = $2 WHERE id = $3", column)
	result, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set event %s: %w", column, err)
	}
	return requireRowAffected(result)
}

// InsertPhoto attaches one gallery photo to an event.
func (r *EventRepository) InsertPhoto(ctx context.Context, eventID int64, url string) error {
	const query = `INSERT INTO event_photos (event_id, url, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, eventID, url, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert event photo: %w", err)
	}
	return nil
}

// ListPhotos returns the gallery URLs for an event in upload order.
func (r *EventRepository) ListPhotos(ctx context.Context, eventID int64) ([]string, error) {
	const query = `SELECT url FROM event_photos WHERE event_id = $1 ORDER BY id`
	urls := []string{}
	if err := r.db.SelectContext(ctx, &urls, query, eventID); err != nil {
		return nil, fmt.Errorf("list event photos: %w", err)
	}
	return urls, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
