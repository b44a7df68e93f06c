package service

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/storage"
)

type stubSlipDonations struct {
	donation *models.Donation
}

func (s *stubSlipDonations) GetByID(_ context.Context, id int64) (*models.Donation, error) {
	if s.donation == nil || s.donation.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *s.donation
	return &copied, nil
}

func newSlipFixture(t *testing.T, donation *models.Donation) (*SlipService, *storage.LocalBucketStore) {
	t.Helper()
	blobs, err := storage.NewLocalBucketStore(t.TempDir(), "https://cdn.example.edu")
	require.NoError(t, err)
	require.NoError(t, blobs.EnsureBucket("slips", false))
	signer := storage.NewSlipTokenSigner("test-secret", time.Minute)
	return NewSlipService(&stubSlipDonations{donation: donation}, blobs, signer, "slips"), blobs
}

func TestSlipSignedLinkRoundTrip(t *testing.T) {
	slipURL := "https://cdn.example.edu/slips/slip/20260301T100000-abc123-transfer.png"
	svc, blobs := newSlipFixture(t, &models.Donation{ID: 9, SlipURL: &slipURL})

	_, err := blobs.Put("slips", "slip/20260301T100000-abc123-transfer.png", []byte("slip-bytes"), "image/png")
	require.NoError(t, err)

	link, expiresAt, err := svc.SignedLink(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "/files/slips?token="))
	assert.True(t, expiresAt.After(time.Now()))

	token := strings.TrimPrefix(link, "/files/slips?token=")
	file, err := svc.OpenByToken(token)
	require.NoError(t, err)
	defer file.Close()
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "slip-bytes", string(data))
}

func TestSlipSignedLinkWithoutSlip(t *testing.T) {
	svc, _ := newSlipFixture(t, &models.Donation{ID: 9})

	_, _, err := svc.SignedLink(context.Background(), 9)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSlipOpenByTokenRejectsGarbage(t *testing.T) {
	svc, _ := newSlipFixture(t, nil)

	_, err := svc.OpenByToken("not-a-token")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
