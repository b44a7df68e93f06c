package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

// AnnouncementRepository provides persistence for announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts a new announcement and assigns its identifier.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	now := time.Now().UTC()
	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	const query = `INSERT INTO announcements (title, body, status, created_at, updated_at)
VALUES (:title, :body, :status, :created_at, :updated_at)
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, announcement)
	if err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	if rows.Next() {
		if err := rows.Scan(&announcement.ID); err != nil {
			return fmt.Errorf("scan announcement id: %w", err)
		}
	}
	return nil
}

// List returns announcements newest-first, optionally filtered by status.
func (r *AnnouncementRepository) List(ctx context.Context, status *models.AnnouncementStatus) ([]models.Announcement, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *status)
	}
	query := fmt.Sprintf(`SELECT id, title, body, status, created_at, updated_at
FROM announcements WHERE %s ORDER BY created_at DESC, id DESC`, strings.Join(where, " AND "))
	var announcements []models.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, args...); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

// UpdateStatus writes only the status column.
func (r *AnnouncementRepository) UpdateStatus(ctx context.Context, id int64, status models.AnnouncementStatus) error {
	const query = `UPDATE announcements SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update announcement status: %w", err)
	}
	return requireRowAffected(result)
}
