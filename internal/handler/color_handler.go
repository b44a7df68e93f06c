package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/service"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// ColorHandler exposes the merchandise swatch catalogue.
type ColorHandler struct {
	service *service.ColorService
}

// NewColorHandler constructs a color handler.
func NewColorHandler(svc *service.ColorService) *ColorHandler {
	return &ColorHandler{service: svc}
}

// List godoc
// @Summary List merchandise colors
// @Tags Colors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /colors [get]
func (h *ColorHandler) List(c *gin.Context) {
	colors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colors, nil)
}

// Get godoc
// @Summary Get merchandise color
// @Tags Colors
// @Produce json
// @Param id path int true "Color ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colors/{id} [get]
func (h *ColorHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	color, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, color, nil)
}
