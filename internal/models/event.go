package models

import (
	"fmt"
	"strings"
	"time"
)

// EventStatus is the stored approval state of an event.
type EventStatus string

const (
	EventStatusDraft    EventStatus = "DRAFT"
	EventStatusPending  EventStatus = "PENDING"
	EventStatusLive     EventStatus = "LIVE"
	EventStatusRejected EventStatus = "REJECTED"
	EventStatusComplete EventStatus = "COMPLETE"
)

// ParseEventStatus normalises a status token. Matching is case-insensitive
// and the write-time alias APPROVED maps to LIVE.
func ParseEventStatus(token string) (EventStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DRAFT":
		return EventStatusDraft, nil
	case "PENDING":
		return EventStatusPending, nil
	case "LIVE", "APPROVED":
		return EventStatusLive, nil
	case "REJECTED":
		return EventStatusRejected, nil
	case "COMPLETE":
		return EventStatusComplete, nil
	default:
		return "", fmt.Errorf("unknown event status %q", token)
	}
}

// Event represents a persisted event row. Nullable columns use pointers so
// responses carry explicit nulls rather than omitting the field.
type Event struct {
	ID                  int64       `db:"id" json:"id"`
	Title               string      `db:"title" json:"title"`
	Description         *string     `db:"description" json:"description"`
	Venue               *string     `db:"venue" json:"venue"`
	StartAt             *time.Time  `db:"start_at" json:"start_at"`
	EndAt               *time.Time  `db:"end_at" json:"end_at"`
	Fee                 *float64    `db:"fee" json:"fee"`
	BankName            *string     `db:"bank_name" json:"bank_name"`
	BankAccountNo       *string     `db:"bank_account_no" json:"bank_account_no"`
	BankAccountName     *string     `db:"bank_account_name" json:"bank_account_name"`
	PromptPayQR         *string     `db:"promptpay_qr" json:"promptpay_qr"`
	OrganizerName       *string     `db:"organizer_name" json:"organizer_name"`
	OrganizerContact    *string     `db:"organizer_contact" json:"organizer_contact"`
	ScholarshipHours    *int        `db:"scholarship_hours" json:"scholarship_hours"`
	PosterURL           *string     `db:"poster_url" json:"poster_url"`
	MaxStaff            *int        `db:"max_staff" json:"max_staff"`
	MaxParticipant      *int        `db:"max_participant" json:"max_participant"`
	StaffDeadline       *time.Time  `db:"staff_deadline" json:"staff_deadline"`
	ParticipantDeadline *time.Time  `db:"participant_deadline" json:"participant_deadline"`
	Status              EventStatus `db:"status" json:"status"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
}

// EffectiveStatus derives the display status: a LIVE event whose end time has
// passed reads as COMPLETE without mutating the stored row.
func (e *Event) EffectiveStatus(now time.Time) EventStatus {
	if e.Status == EventStatusLive && e.EndAt != nil && e.EndAt.Before(now) {
		return EventStatusComplete
	}
	return e.Status
}

// EventFilter captures listing criteria.
type EventFilter struct {
	Status   *EventStatus
	Page     int
	PageSize int
}

// EventStatusProjection is the minimal shape returned by status transitions.
type EventStatusProjection struct {
	ID     int64       `db:"id" json:"id"`
	Title  string      `db:"title" json:"title"`
	Status EventStatus `db:"status" json:"status"`
}

// EventPhoto is a gallery image attached to an event by the media pipeline.
type EventPhoto struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
