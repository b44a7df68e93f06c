package dto

import "time"

// CreateDonationRequest is a public donor submission.
type CreateDonationRequest struct {
	Amount    float64 `json:"amount"`
	Nickname  string  `json:"nickname"`
	Anonymous bool    `json:"anonymous"`
	SlipURL   *string `json:"slip_url"`
}

// DonationItem is the read projection of one ledger row, with the
// anonymize rule applied.
type DonationItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	SubmittedAt time.Time `json:"submitted_at"`
	Slip        *string   `json:"slip"`
}

// DonationList carries the ledger plus aggregates summed over the
// returned set.
type DonationList struct {
	Items       []DonationItem `json:"items"`
	Count       int            `json:"total"`
	TotalAmount float64        `json:"total_amount"`
}

// CreateFundraisingRequest is the organizer's campaign draft.
type CreateFundraisingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Goal        *float64 `json:"goal" validate:"omitempty,gt=0"`
}

// UpdateFundraisingStatusRequest carries the central-office transition token.
type UpdateFundraisingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
