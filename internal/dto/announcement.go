package dto

// CreateAnnouncementRequest is the organizer's announcement draft.
type CreateAnnouncementRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdateAnnouncementStatusRequest carries the central-office transition token.
type UpdateAnnouncementStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
