package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/alert"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
)

type AlertHandler struct {
	service alert.Service
}

func NewHandler(service alert.Service) *AlertHandler {
	return &AlertHandler{service: service}
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, alert.ErrNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "alert not found"})
		return
	}
	response.Error(c, err)
}

func (h *AlertHandler) List(c *gin.Context) {
	var req ListAlertsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	alerts, total, err := h.service.List(c.Request.Context(), alert.Filter{
		Type:       req.Type,
		BeachID:    req.BeachID,
		UnreadOnly: req.UnreadOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		items[i] = NewAlertResponse(a)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *AlertHandler) Create(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	a, err := h.service.Create(c.Request.Context(), alert.CreateInput{
		Type:    alert.Type(req.Type),
		Message: req.Message,
		BeachID: req.BeachID,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewAlertResponse(a))
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid alert id"})
		return
	}

	a, err := h.service.MarkRead(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAlertResponse(a))
}

func (h *AlertHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid alert id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) ErrorLog(c *gin.Context) {
	entries, err := h.service.ErrorLog(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
