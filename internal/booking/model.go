package booking

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("booking not found")

// Status enumerates booking lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Occupying reports whether a booking in this status holds its sunbeds.
func (s Status) Occupying() bool {
	return s != StatusCancelled
}

// PaymentStatus enumerates payment states of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentRefunded
}

// Booking ties a customer stay to a beach and the sunbeds it occupies.
// BeachName and BeachLocation are denormalized for list views.
type Booking struct {
	ID            string
	BeachID       string
	ZoneID        *string
	CustomerName  string
	CustomerEmail string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	TotalPrice    float64
	Status        Status
	PaymentStatus PaymentStatus
	SunbedIDs     []string
	BeachName     string
	BeachLocation string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	BeachID     string
	Status      string
	CheckInFrom time.Time
	CheckInTo   time.Time
	Keyword     string // matches customer name or email
	Page        int
	PageSize    int
}

// Stats is the booking headline for the dashboard.
type Stats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
}
