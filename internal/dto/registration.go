package dto

import "encoding/json"

// RegistrationSubmission is the shared POST body for both write protocols.
// Presence of the staff/participants lists selects the privileged bulk save;
// the flat fields select the public self-registration.
type RegistrationSubmission struct {
	// Protocol B (privileged bulk attendance save).
	Staff        *[]BulkRegistrationEntry `json:"staff"`
	Participants *[]BulkRegistrationEntry `json:"participants"`

	// Protocol A (public self-registration).
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	StudentID string `json:"student_id"`
	// Extra keeps the raw free-form fields submitted alongside the
	// registration; stored verbatim for audit.
	Extra map[string]json.RawMessage `json:"extra"`
}

// IsBulk reports whether the submission uses the privileged list shape.
func (s *RegistrationSubmission) IsBulk() bool {
	return s.Staff != nil || s.Participants != nil
}

// BulkRegistrationEntry is one row of the privileged bulk save.
type BulkRegistrationEntry struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Attended  bool   `json:"attended"`
}

// RegistrationEntry is the read projection of one registration row.
type RegistrationEntry struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Attended  bool   `json:"attended"`
}

// RegistrationList partitions an event's registrations by role.
type RegistrationList struct {
	Staff        []RegistrationEntry `json:"staff"`
	Participants []RegistrationEntry `json:"participants"`
}

// RegisterResult reports a Protocol A outcome. Duplicate submissions succeed.
type RegisterResult struct {
	OK        bool `json:"ok"`
	Duplicate bool `json:"duplicate,omitempty"`
}

// BulkSaveResult reports a Protocol B outcome.
type BulkSaveResult struct {
	OK      bool `json:"ok"`
	Saved   int  `json:"saved"`
	Dropped int  `json:"dropped"`
}
