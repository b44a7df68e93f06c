package models

import (
	"strings"
	"time"
)

// AnonymousDonorName is the display name resolved for anonymous donors.
const AnonymousDonorName = "Anonymous"

// Donation is one append-only ledger row scoped to a fundraising campaign.
// Rows are never mutated or deleted; campaign totals are summed per read.
type Donation struct {
	ID            int64     `db:"id" json:"id"`
	FundraisingID int64     `db:"fundraising_id" json:"fundraising_id"`
	Amount        float64   `db:"amount" json:"amount"`
	DonorName     string    `db:"donor_name" json:"donor_name"`
	Anonymous     bool      `db:"anonymous" json:"anonymous"`
	SlipURL       *string   `db:"slip_url" json:"slip_url"`
	SubmittedAt   time.Time `db:"submitted_at" json:"submitted_at"`
}

// DisplayName resolves the donor name shown to readers. Anonymity is applied
// at read time regardless of what was stored.
func (d *Donation) DisplayName() string {
	if d.Anonymous || strings.TrimSpace(d.DonorName) == "" {
		return AnonymousDonorName
	}
	return strings.TrimSpace(d.DonorName)
}
