package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
	"github.com/playamar/beach-admin-backend/internal/pkg/storage"
)

type BeachHandler struct {
	service   beach.Service
	store     storage.Storage
	processor *storage.PhotoProcessor
}

func NewHandler(service beach.Service, store storage.Storage, processor *storage.PhotoProcessor) *BeachHandler {
	return &BeachHandler{service: service, store: store, processor: processor}
}

// zoneURI binds /beaches/:id/zones/:zoneId path parameters.
type zoneURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	ZoneID string `uri:"zoneId" binding:"required,uuid"`
}

// sunbedURI binds /beaches/:id/zones/:zoneId/sunbeds/:sunbedId parameters.
type sunbedURI struct {
	ID       string `uri:"id" binding:"required,uuid"`
	ZoneID   string `uri:"zoneId" binding:"required,uuid"`
	SunbedID string `uri:"sunbedId" binding:"required,uuid"`
}

// adminURI binds /beaches/:id/admins/:userId path parameters.
type adminURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userId" binding:"required,uuid"`
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, beach.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "beach not found"})
	case errors.Is(err, beach.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "zone not found"})
	case errors.Is(err, beach.ErrSunbedNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "sunbed not found"})
	default:
		response.Error(c, err)
	}
}

func (h *BeachHandler) List(c *gin.Context) {
	var req ListBeachesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	beaches, total, err := h.service.List(c.Request.Context(), beach.Filter{
		Keyword:  req.Keyword,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]BeachListItem, len(beaches))
	for i, b := range beaches {
		items[i] = NewBeachListItem(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *BeachHandler) Create(c *gin.Context) {
	var req CreateBeachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), beach.CreateInput{
		Name:          req.Name,
		Location:      req.Location,
		Status:        beach.Status(req.Status),
		PricePerDay:   req.PricePerDay,
		Amenities:     req.Amenities,
		Images:        req.Images,
		TotalCapacity: req.TotalCapacity,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBeachResponse(b))
}

func (h *BeachHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

func (h *BeachHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}
	var req UpdateBeachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	var status *beach.Status
	if req.Status != nil {
		s := beach.Status(*req.Status)
		status = &s
	}
	b, err := h.service.Update(c.Request.Context(), uri.ID, beach.UpdateInput{
		Name:        req.Name,
		Location:    req.Location,
		Status:      status,
		PricePerDay: req.PricePerDay,
		Amenities:   req.Amenities,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

func (h *BeachHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BeachHandler) OccupancyOverview(c *gin.Context) {
	items, err := h.service.OccupancyOverview(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BeachHandler) StatsSummary(c *gin.Context) {
	summary, err := h.service.StatsSummary(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UploadImage accepts a multipart photo, normalizes it to JPEG and attaches
// the served URL to the beach's image list.
func (h *BeachHandler) UploadImage(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "image file is required"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "unsupported image format"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	normalized, err := h.processor.Normalize(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid image file"})
		return
	}

	name := fmt.Sprintf("beaches/%s/%s.jpg", req.ID, uuid.NewString())
	if err := h.store.Save(c.Request.Context(), name, normalized); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.AttachImage(c.Request.Context(), req.ID, "/uploads/"+name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

// ------------------------
//     Zone endpoints
// ------------------------

func (h *BeachHandler) AddZone(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}
	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	b, err := h.service.AddZone(c.Request.Context(), uri.ID, beach.ZoneInput{
		Name:    req.Name,
		Rows:    req.Rows,
		Cols:    req.Cols,
		Sunbeds: toDomainSunbeds(req.Sunbeds),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBeachResponse(b))
}

func (h *BeachHandler) UpdateZone(c *gin.Context) {
	var uri zoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid path parameters"})
		return
	}
	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	b, err := h.service.UpdateZone(c.Request.Context(), uri.ID, uri.ZoneID, beach.ZonePatch{
		Name:    req.Name,
		Rows:    req.Rows,
		Cols:    req.Cols,
		Sunbeds: toDomainSunbeds(req.Sunbeds),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

func (h *BeachHandler) DeleteZone(c *gin.Context) {
	var uri zoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid path parameters"})
		return
	}

	b, err := h.service.DeleteZone(c.Request.Context(), uri.ID, uri.ZoneID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

func (h *BeachHandler) UpdateSunbed(c *gin.Context) {
	var uri sunbedURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid path parameters"})
		return
	}
	var req UpdateSunbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	b, err := h.service.UpdateSunbedStatus(c.Request.Context(), uri.ID, uri.ZoneID, uri.SunbedID, beach.SunbedStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

// ------------------------
//    Admin endpoints
// ------------------------

func (h *BeachHandler) AssignAdmins(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid beach id"})
		return
	}
	var req AssignAdminsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	b, err := h.service.AssignAdmins(c.Request.Context(), uri.ID, req.allIDs())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}

func (h *BeachHandler) RemoveAdmin(c *gin.Context) {
	var uri adminURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid path parameters"})
		return
	}

	b, err := h.service.RemoveAdmin(c.Request.Context(), uri.ID, uri.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBeachResponse(b))
}
