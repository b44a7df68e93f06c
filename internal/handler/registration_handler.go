package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/models"
	"github.com/studentaffairs/org-portal-api/internal/service"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// RegistrationHandler exposes the dual-protocol registration endpoints.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	exports       *service.ExportService
}

// NewRegistrationHandler constructs a registration handler.
func NewRegistrationHandler(registrations *service.RegistrationService, exports *service.ExportService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, exports: exports}
}

// Submit godoc
// @Summary Submit registrations
// @Description Self-registration for the public; bulk attendance save for organizers. The body shape selects the protocol.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param payload body dto.RegistrationSubmission true "Submission payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/registrations [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var sub dto.RegistrationSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if sub.IsBulk() {
		claims := claimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if claims.Role != models.RoleOrganizer && claims.Role != models.RoleOffice {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		result, err := h.registrations.BulkSave(c.Request.Context(), eventID, sub)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result, nil)
		return
	}

	result, err := h.registrations.SelfRegister(c.Request.Context(), eventID, sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List event registrations
// @Tags Registrations
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.registrations.List(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Slots godoc
// @Summary Get remaining slots
// @Description Advisory remaining capacity per role; never enforced
// @Tags Registrations
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/slots [get]
func (h *RegistrationHandler) Slots(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.registrations.Slots(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Export godoc
// @Summary Export attendance roster
// @Tags Registrations
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Event ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /events/{id}/registrations/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export format"))
		return
	}
	result, err := h.exports.Attendance(c.Request.Context(), eventID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
