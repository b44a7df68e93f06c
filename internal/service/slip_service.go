package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/storage"
)

type slipDonationReader interface {
	GetByID(ctx context.Context, id int64) (*models.Donation, error)
}

type slipBlobOpener interface {
	Open(bucket, path string) (*os.File, error)
}

// SlipService brokers access to donation slips. Slips live in a non-public
// bucket; reviewers get short-lived signed links instead of direct URLs.
type SlipService struct {
	donations slipDonationReader
	blobs     slipBlobOpener
	signer    *storage.SlipTokenSigner
	bucket    string
}

// NewSlipService constructs a SlipService.
func NewSlipService(donations slipDonationReader, blobs slipBlobOpener, signer *storage.SlipTokenSigner, bucket string) *SlipService {
	if bucket == "" {
		bucket = "slips"
	}
	return &SlipService{donations: donations, blobs: blobs, signer: signer, bucket: bucket}
}

// SignedLink returns a tokenized download path for a donation's slip.
func (s *SlipService) SignedLink(ctx context.Context, donationID int64) (string, time.Time, error) {
	donation, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "donation not found")
		}
		return "", time.Time{}, err
	}
	if donation.SlipURL == nil || *donation.SlipURL == "" {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "donation has no slip")
	}

	relPath, ok := s.relPath(*donation.SlipURL)
	if !ok {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrInternal, "slip reference is not resolvable")
	}

	token, expiresAt, err := s.signer.Generate(donationID, relPath)
	if err != nil {
		return "", time.Time{}, err
	}
	return "/files/slips?token=" + token, expiresAt, nil
}

// OpenByToken validates a download token and opens the slip blob.
func (s *SlipService) OpenByToken(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid slip token")
	}
	file, err := s.blobs.Open(s.bucket, relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "slip not found")
	}
	return file, nil
}

// relPath recovers the in-bucket path from a stored slip URL.
func (s *SlipService) relPath(url string) (string, bool) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	rel := url[idx+len(marker):]
	if rel == "" {
		return "", false
	}
	return rel, true
}
