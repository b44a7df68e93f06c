package dto

import (
	"time"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

// CreateEventRequest carries the organizer's initial event draft. Optional
// string fields arriving as empty strings are normalised to null on write.
type CreateEventRequest struct {
	Title               string     `json:"title" validate:"required"`
	Description         string     `json:"description"`
	Venue               string     `json:"venue"`
	StartAt             *time.Time `json:"start_at"`
	EndAt               *time.Time `json:"end_at"`
	Fee                 *float64   `json:"fee" validate:"omitempty,gte=0"`
	BankName            string     `json:"bank_name"`
	BankAccountNo       string     `json:"bank_account_no"`
	BankAccountName     string     `json:"bank_account_name"`
	OrganizerName       string     `json:"organizer_name"`
	OrganizerContact    string     `json:"organizer_contact"`
	ScholarshipHours    *int       `json:"scholarship_hours" validate:"omitempty,gte=0"`
	MaxStaff            *int       `json:"max_staff" validate:"omitempty,gte=0"`
	MaxParticipant      *int       `json:"max_participant" validate:"omitempty,gte=0"`
	StaffDeadline       *time.Time `json:"staff_deadline"`
	ParticipantDeadline *time.Time `json:"participant_deadline"`
}

// UpdateEventRequest is a partial update: absent keys leave columns
// untouched, explicit nulls (or empty strings) clear them.
type UpdateEventRequest struct {
	Title               Optional[string]    `json:"title"`
	Description         Optional[string]    `json:"description"`
	Venue               Optional[string]    `json:"venue"`
	StartAt             Optional[time.Time] `json:"start_at"`
	EndAt               Optional[time.Time] `json:"end_at"`
	Fee                 Optional[float64]   `json:"fee"`
	BankName            Optional[string]    `json:"bank_name"`
	BankAccountNo       Optional[string]    `json:"bank_account_no"`
	BankAccountName     Optional[string]    `json:"bank_account_name"`
	OrganizerName       Optional[string]    `json:"organizer_name"`
	OrganizerContact    Optional[string]    `json:"organizer_contact"`
	ScholarshipHours    Optional[int]       `json:"scholarship_hours"`
	MaxStaff            Optional[int]       `json:"max_staff"`
	MaxParticipant      Optional[int]       `json:"max_participant"`
	StaffDeadline       Optional[time.Time] `json:"staff_deadline"`
	ParticipantDeadline Optional[time.Time] `json:"participant_deadline"`
}

// UpdateEventStatusRequest carries the central-office transition token.
type UpdateEventStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// EventDetail bundles the stored record with its derived display state and
// attachments.
type EventDetail struct {
	models.Event
	EffectiveStatus models.EventStatus `json:"effective_status"`
	Photos          []string           `json:"photos"`
	Slots           *EventSlots        `json:"slots,omitempty"`
}

// EventSlots is the advisory capacity view for one event.
type EventSlots struct {
	MaxStaff            *int `json:"max_staff"`
	MaxParticipant      *int `json:"max_participant"`
	StaffCount          int  `json:"staff_count"`
	ParticipantCount    int  `json:"participant_count"`
	OpenStaffSlots      *int `json:"open_staff_slots"`
	OpenParticipantSlot *int `json:"open_participant_slots"`
}

// EventListItem is the listing projection with effective status applied.
type EventListItem struct {
	models.Event
	EffectiveStatus models.EventStatus `json:"effective_status"`
}
