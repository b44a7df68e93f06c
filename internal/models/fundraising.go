package models

import "time"

// FundraisingStatus is the stored approval state of a campaign.
// Campaigns share the event status vocabulary minus the time-derived states.
type FundraisingStatus string

const (
	FundraisingStatusPending  FundraisingStatus = "PENDING"
	FundraisingStatusLive     FundraisingStatus = "LIVE"
	FundraisingStatusRejected FundraisingStatus = "REJECTED"
	FundraisingStatusClosed   FundraisingStatus = "CLOSED"
)

// Fundraising represents a persisted fundraising campaign row.
type Fundraising struct {
	ID          int64             `db:"id" json:"id"`
	Title       string            `db:"title" json:"title"`
	Description *string           `db:"description" json:"description"`
	Goal        *float64          `db:"goal" json:"goal"`
	PosterURL   *string           `db:"poster_url" json:"poster_url"`
	Status      FundraisingStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}
