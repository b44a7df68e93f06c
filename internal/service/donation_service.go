package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

type donationRepository interface {
	Insert(ctx context.Context, donation *models.Donation) error
	ListByFundraising(ctx context.Context, fundraisingID int64) ([]models.Donation, error)
}

type donationCampaignReader interface {
	GetByID(ctx context.Context, id int64) (*models.Fundraising, error)
}

// DonationService owns the append-only donation ledger. Campaign totals are
// summed over the rows on every read rather than kept as a running counter.
type DonationService struct {
	repo      donationRepository
	campaigns donationCampaignReader
	logger    *zap.Logger
}

// NewDonationService constructs a DonationService.
func NewDonationService(repo donationRepository, campaigns donationCampaignReader, logger *zap.Logger) *DonationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DonationService{repo: repo, campaigns: campaigns, logger: logger}
}

// Record appends one donation. The stored donor name is empty for anonymous
// donations; anonymity is additionally applied at read time.
func (s *DonationService) Record(ctx context.Context, fundraisingID int64, req dto.CreateDonationRequest) (*models.Donation, error) {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Amount must be a positive number")
	}

	if _, err := s.campaigns.GetByID(ctx, fundraisingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fundraising campaign not found")
		}
		return nil, err
	}

	name := strings.TrimSpace(req.Nickname)
	if req.Anonymous {
		name = ""
	}

	donation := &models.Donation{
		FundraisingID: fundraisingID,
		Amount:        req.Amount,
		DonorName:     name,
		Anonymous:     req.Anonymous,
		SlipURL:       req.SlipURL,
	}
	if err := s.repo.Insert(ctx, donation); err != nil {
		return nil, err
	}
	s.logger.Info("donation recorded",
		zap.Int64("fundraising_id", fundraisingID),
		zap.Int64("donation_id", donation.ID),
		zap.Float64("amount", donation.Amount))
	return donation, nil
}

// List returns the campaign ledger newest-first with the anonymize rule
// applied, plus aggregates computed by summing the returned set.
func (s *DonationService) List(ctx context.Context, fundraisingID int64) (*dto.DonationList, error) {
	if _, err := s.campaigns.GetByID(ctx, fundraisingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fundraising campaign not found")
		}
		return nil, err
	}

	donations, err := s.repo.ListByFundraising(ctx, fundraisingID)
	if err != nil {
		return nil, err
	}

	list := &dto.DonationList{Items: make([]dto.DonationItem, 0, len(donations))}
	for i := range donations {
		donation := donations[i]
		list.Items = append(list.Items, dto.DonationItem{
			ID:          donation.ID,
			Name:        donation.DisplayName(),
			Amount:      donation.Amount,
			SubmittedAt: donation.SubmittedAt,
			Slip:        donation.SlipURL,
		})
		list.TotalAmount += donation.Amount
	}
	list.Count = len(list.Items)
	return list, nil
}
