package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/booking"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
)

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	ID            string    `json:"id"`
	BeachID       string    `json:"beachId"`
	BeachName     string    `json:"beachName"`
	BeachLocation string    `json:"beachLocation"`
	ZoneID        *string   `json:"zoneId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	SunbedIDs     []string  `json:"sunbedIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	ids := b.SunbedIDs
	if ids == nil {
		ids = []string{}
	}
	return BookingResponse{
		ID:            b.ID,
		BeachID:       b.BeachID,
		BeachName:     b.BeachName,
		BeachLocation: b.BeachLocation,
		ZoneID:        b.ZoneID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CheckInDate:   b.CheckInDate,
		CheckOutDate:  b.CheckOutDate,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		SunbedIDs:     ids,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	BeachID     string `form:"beachId" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Keyword     string `form:"q"`
	CheckInFrom string `form:"checkInFrom" binding:"omitempty,datetime=2006-01-02"`
	CheckInTo   string `form:"checkInTo" binding:"omitempty,datetime=2006-01-02"`
}

// CreateBookingRequest defines the payload for creating a booking.
type CreateBookingRequest struct {
	BeachID       string   `json:"beachId" binding:"required,uuid"`
	ZoneID        *string  `json:"zoneId" binding:"omitempty,uuid"`
	CustomerName  string   `json:"customerName" binding:"required"`
	CustomerEmail string   `json:"customerEmail" binding:"omitempty,email"`
	CheckInDate   string   `json:"checkInDate" binding:"required,datetime=2006-01-02"`
	CheckOutDate  string   `json:"checkOutDate" binding:"required,datetime=2006-01-02"`
	TotalPrice    float64  `json:"totalPrice" binding:"omitempty,gte=0"`
	Status        string   `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus string   `json:"paymentStatus" binding:"omitempty,oneof=pending paid refunded"`
	SunbedIDs     []string `json:"sunbedIds" binding:"omitempty,dive,uuid"`
}

// UpdateBookingRequest defines the partial update payload.
type UpdateBookingRequest struct {
	CustomerName  *string  `json:"customerName"`
	CustomerEmail *string  `json:"customerEmail" binding:"omitempty,email"`
	CheckInDate   *string  `json:"checkInDate" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate  *string  `json:"checkOutDate" binding:"omitempty,datetime=2006-01-02"`
	TotalPrice    *float64 `json:"totalPrice" binding:"omitempty,gte=0"`
	Status        *string  `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *string  `json:"paymentStatus" binding:"omitempty,oneof=pending paid refunded"`
}
