package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/service"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// DashboardHandler exposes the central-office approval dashboard reads.
type DashboardHandler struct {
	pending *service.PendingService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(pending *service.PendingService) *DashboardHandler {
	return &DashboardHandler{pending: pending}
}

// PendingCounts godoc
// @Summary Get pending approval counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/pending-counts [get]
func (h *DashboardHandler) PendingCounts(c *gin.Context) {
	counts, err := h.pending.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, nil)
}
