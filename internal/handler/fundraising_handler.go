package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/service"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// FundraisingHandler exposes campaign endpoints.
type FundraisingHandler struct {
	service *service.FundraisingService
}

// NewFundraisingHandler constructs a fundraising handler.
func NewFundraisingHandler(svc *service.FundraisingService) *FundraisingHandler {
	return &FundraisingHandler{service: svc}
}

// List godoc
// @Summary List fundraising campaigns
// @Tags Fundraising
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fundraising [get]
func (h *FundraisingHandler) List(c *gin.Context) {
	campaigns, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaigns, nil)
}

// Get godoc
// @Summary Get fundraising campaign
// @Tags Fundraising
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} response.Envelope
// @Router /fundraising/{id} [get]
func (h *FundraisingHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	campaign, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}

// Create godoc
// @Summary Create fundraising campaign
// @Tags Fundraising
// @Accept json
// @Produce json
// @Param payload body dto.CreateFundraisingRequest true "Campaign payload"
// @Success 201 {object} response.Envelope
// @Router /fundraising [post]
func (h *FundraisingHandler) Create(c *gin.Context) {
	var req dto.CreateFundraisingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	campaign, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, campaign)
}

// SetStatus godoc
// @Summary Transition campaign status
// @Tags Fundraising
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param payload body dto.UpdateFundraisingStatusRequest true "Status payload"
// @Success 204
// @Router /fundraising/{id}/status [put]
func (h *FundraisingHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateFundraisingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
