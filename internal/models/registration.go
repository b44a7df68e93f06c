package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// RegistrationRole partitions registrations into staff and participants.
type RegistrationRole string

const (
	RoleStaff       RegistrationRole = "STAFF"
	RoleParticipant RegistrationRole = "PARTICIPANT"
)

// ParseRegistrationRole normalises a role token.
func ParseRegistrationRole(token string) (RegistrationRole, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "STAFF":
		return RoleStaff, nil
	case "PARTICIPANT":
		return RoleParticipant, nil
	default:
		return "", fmt.Errorf("unknown registration role %q", token)
	}
}

// Registration is one student signed up for an event in one role.
// The table's primary key is (event_id, role, student_id); the store enforces
// the uniqueness that backs the idempotent public submission.
type Registration struct {
	EventID   int64            `db:"event_id" json:"event_id"`
	Role      RegistrationRole `db:"role" json:"role"`
	StudentID string           `db:"student_id" json:"student_id"`
	Name      string           `db:"name" json:"name"`
	Phone     string           `db:"phone" json:"phone"`
	Attended  bool             `db:"attended" json:"attended"`
	Payload   types.JSONText   `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// OpenSlots computes the advisory open-slot figure for one role. A nil
// capacity means unlimited and yields nil; counts past capacity clamp to 0.
// Display-only: registration is never rejected because this reached zero.
func OpenSlots(capacity *int, count int) *int {
	if capacity == nil {
		return nil
	}
	open := *capacity - count
	if open < 0 {
		open = 0
	}
	return &open
}
