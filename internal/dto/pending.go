package dto

// PendingCounts is the per-table count of rows awaiting central-office
// approval, plus their sum.
type PendingCounts struct {
	Announcements int `json:"announcements"`
	Events        int `json:"events"`
	Fundraising   int `json:"fundraising"`
	Total         int `json:"total"`
}
