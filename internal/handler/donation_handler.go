package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/service"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// DonationHandler exposes the donation ledger endpoints.
type DonationHandler struct {
	donations *service.DonationService
	slips     *service.SlipService
}

// NewDonationHandler constructs a donation handler.
func NewDonationHandler(donations *service.DonationService, slips *service.SlipService) *DonationHandler {
	return &DonationHandler{donations: donations, slips: slips}
}

// Record godoc
// @Summary Record a donation
// @Description Appends to the campaign ledger; anonymous donors are hidden at read time
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param payload body dto.CreateDonationRequest true "Donation payload"
// @Success 201 {object} response.Envelope
// @Router /fundraising/{id}/donations [post]
func (h *DonationHandler) Record(c *gin.Context) {
	campaignID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	donation, err := h.donations.Record(c.Request.Context(), campaignID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, donation)
}

// List godoc
// @Summary List campaign donations
// @Tags Donations
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} response.Envelope
// @Router /fundraising/{id}/donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	campaignID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.donations.List(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// SlipLink godoc
// @Summary Get a signed slip download link
// @Tags Donations
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Envelope
// @Router /donations/{id}/slip [get]
func (h *DonationHandler) SlipLink(c *gin.Context) {
	donationID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	url, expiresAt, err := h.slips.SignedLink(c.Request.Context(), donationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":        url,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}, nil)
}

// DownloadSlip godoc
// @Summary Download a slip by token
// @Tags Donations
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /files/slips [get]
func (h *DonationHandler) DownloadSlip(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, err := h.slips.OpenByToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Status(http.StatusOK)
	c.Header("Content-Type", "application/octet-stream")
	_, _ = io.Copy(c.Writer, file)
}
