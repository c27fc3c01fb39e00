package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/integration"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
)

type IntegrationHandler struct {
	service integration.Service
}

func NewHandler(service integration.Service) *IntegrationHandler {
	return &IntegrationHandler{service: service}
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, integration.ErrNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "integration not found"})
		return
	}
	response.Error(c, err)
}

func (h *IntegrationHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]IntegrationResponse, len(list))
	for i, in := range list {
		items[i] = NewIntegrationResponse(in)
	}
	c.JSON(http.StatusOK, items)
}

func (h *IntegrationHandler) Create(c *gin.Context) {
	var req CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	in, err := h.service.Create(c.Request.Context(), integration.CreateInput{
		Name:     req.Name,
		Type:     req.Type,
		Provider: req.Provider,
		APIKey:   req.APIKey,
		Enabled:  req.Enabled,
		Settings: req.Settings,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewIntegrationResponse(in))
}

func (h *IntegrationHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid integration id"})
		return
	}

	in, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewIntegrationResponse(in))
}

func (h *IntegrationHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid integration id"})
		return
	}
	var req UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	in, err := h.service.Update(c.Request.Context(), uri.ID, integration.UpdateInput{
		Name:     req.Name,
		Type:     req.Type,
		Provider: req.Provider,
		APIKey:   req.APIKey,
		Enabled:  req.Enabled,
		Settings: req.Settings,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewIntegrationResponse(in))
}

func (h *IntegrationHandler) Toggle(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid integration id"})
		return
	}

	in, err := h.service.Toggle(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewIntegrationResponse(in))
}

func (h *IntegrationHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid integration id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IntegrationHandler) State(c *gin.Context) {
	state, err := h.service.State(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
