package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/studentaffairs/org-portal-api/internal/models"
)

func TestDonationRepositoryInsertAssignsIDAndTimestamp(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewDonationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO donations")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	donation := &models.Donation{FundraisingID: 3, Amount: 250, DonorName: "Somsri"}
	require.NoError(t, repo.Insert(context.Background(), donation))
	require.Equal(t, int64(12), donation.ID)
	require.False(t, donation.SubmittedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepositoryListNewestFirst(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewDonationRepository(db)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "fundraising_id", "amount", "donor_name", "anonymous", "slip_url", "submitted_at"}).
		AddRow(int64(2), int64(3), 50.0, "", true, nil, now).
		AddRow(int64(1), int64(3), 100.0, "Somsri", false, nil, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY submitted_at DESC, id DESC")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	donations, err := repo.ListByFundraising(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	require.Equal(t, int64(2), donations[0].ID)
	require.True(t, donations[0].Anonymous)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepositorySetSlipURL(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewDonationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE donations SET slip_url")).
		WithArgs("https://cdn.example.edu/slips/slip/a.png", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetSlipURL(context.Background(), 12, "https://cdn.example.edu/slips/slip/a.png"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepositorySetSlipURLMissingDonation(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewDonationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE donations SET slip_url")).
		WithArgs("https://cdn.example.edu/slips/slip/a.png", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetSlipURL(context.Background(), 99, "https://cdn.example.edu/slips/slip/a.png")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()

	repo := NewPendingRepository(db)
	rows := sqlmock.NewRows([]string{"announcements", "events", "fundraising"}).AddRow(2, 5, 1)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'PENDING'")).
		WillReturnRows(rows)

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, counts.Announcements)
	require.Equal(t, 5, counts.Events)
	require.Equal(t, 1, counts.Fundraising)
	require.NoError(t, mock.ExpectationsWereMet())
}
