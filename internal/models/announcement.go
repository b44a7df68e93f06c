package models

import "time"

// AnnouncementStatus is the stored approval state of an announcement.
type AnnouncementStatus string

const (
	AnnouncementStatusPending  AnnouncementStatus = "PENDING"
	AnnouncementStatusLive     AnnouncementStatus = "LIVE"
	AnnouncementStatusRejected AnnouncementStatus = "REJECTED"
)

// Announcement represents a persisted announcement row.
type Announcement struct {
	ID        int64              `db:"id" json:"id"`
	Title     string             `db:"title" json:"title"`
	Body      string             `db:"body" json:"body"`
	Status    AnnouncementStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}
