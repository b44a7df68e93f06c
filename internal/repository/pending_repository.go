package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PendingCountRow is the raw per-table pending tally.
type PendingCountRow struct {
	Announcements int `db:"announcements"`
	Events        int `db:"events"`
	Fundraising   int `db:"fundraising"`
}

// PendingRepository counts rows awaiting central-office approval. It always
// recounts from the tables rather than maintaining incremental counters.
type PendingRepository struct {
	db *sqlx.DB
}

// NewPendingRepository creates the repository.
func NewPendingRepository(db *sqlx.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// Counts tallies PENDING rows across the three approval lanes.
func (r *PendingRepository) Counts(ctx context.Context) (*PendingCountRow, error) {
	const query = `SELECT
(SELECT COUNT(*) FROM announcements WHERE status = 'PENDING') AS announcements,
(SELECT COUNT(*) FROM events WHERE status = 'PENDING') AS events,
(SELECT COUNT(*) FROM fundraising WHERE status = 'PENDING') AS fundraising`
	var row PendingCountRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("count pending rows: %w", err)
	}
	return &row, nil
}
