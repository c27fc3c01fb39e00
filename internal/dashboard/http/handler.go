package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/dashboard"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
