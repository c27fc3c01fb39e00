package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/booking"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "booking not found"})
	case errors.Is(err, beach.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "beach not found"})
	default:
		response.Error(c, err)
	}
}

func (h *BookingHandler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	filter := booking.Filter{
		BeachID:  req.BeachID,
		Status:   req.Status,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.CheckInFrom != "" {
		filter.CheckInFrom, _ = time.Parse(dateLayout, req.CheckInFrom)
	}
	if req.CheckInTo != "" {
		filter.CheckInTo, _ = time.Parse(dateLayout, req.CheckInTo)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	checkIn, _ := time.Parse(dateLayout, req.CheckInDate)
	checkOut, _ := time.Parse(dateLayout, req.CheckOutDate)

	b, err := h.service.Create(c.Request.Context(), booking.CreateInput{
		BeachID:       req.BeachID,
		ZoneID:        req.ZoneID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		TotalPrice:    req.TotalPrice,
		Status:        booking.Status(req.Status),
		PaymentStatus: booking.PaymentStatus(req.PaymentStatus),
		SunbedIDs:     req.SunbedIDs,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *BookingHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid booking id"})
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	input := booking.UpdateInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalPrice:    req.TotalPrice,
	}
	if req.CheckInDate != nil {
		t, _ := time.Parse(dateLayout, *req.CheckInDate)
		input.CheckInDate = &t
	}
	if req.CheckOutDate != nil {
		t, _ := time.Parse(dateLayout, *req.CheckOutDate)
		input.CheckOutDate = &t
	}
	if req.Status != nil {
		s := booking.Status(*req.Status)
		input.Status = &s
	}
	if req.PaymentStatus != nil {
		p := booking.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &p
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid booking id"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid booking id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
