package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/finance"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
)

// RecordResponse is the API shape of a finance record.
type RecordResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	BookingID   *string   `json:"bookingId"`
	BeachID     *string   `json:"beachId"`
	RecordDate  time.Time `json:"recordDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewRecordResponse(r *finance.Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		Type:        string(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		BookingID:   r.BookingID,
		BeachID:     r.BeachID,
		RecordDate:  r.RecordDate,
		CreatedAt:   r.CreatedAt,
	}
}

// ListRecordsRequest defines query parameters for listing finance records.
type ListRecordsRequest struct {
	request.ListParams
	Type    string `form:"type" binding:"omitempty,oneof=rental_income service_fee expense"`
	BeachID string `form:"beachId" binding:"omitempty,uuid"`
	Month   int    `form:"month" binding:"omitempty,gte=1,lte=12"`
	Year    int    `form:"year" binding:"omitempty,gte=2000"`
}

// CreateRecordRequest defines the payload for a manual finance record.
type CreateRecordRequest struct {
	Type        string  `json:"type" binding:"required,oneof=rental_income service_fee expense"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	BeachID     *string `json:"beachId" binding:"omitempty,uuid"`
	RecordDate  string  `json:"recordDate" binding:"omitempty,datetime=2006-01-02"`
}

// PayoutResponse is the API shape of a payout.
type PayoutResponse struct {
	ID            string     `json:"id"`
	BeachID       string     `json:"beachId"`
	BeachName     string     `json:"beachName"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	RequestedDate time.Time  `json:"requestedDate"`
	ProcessedDate *time.Time `json:"processedDate"`
	ProcessedBy   *string    `json:"processedBy"`
	Notes         string     `json:"notes"`
}

func NewPayoutResponse(p *finance.Payout) PayoutResponse {
	return PayoutResponse{
		ID:            p.ID,
		BeachID:       p.BeachID,
		BeachName:     p.BeachName,
		Amount:        p.Amount,
		Status:        string(p.Status),
		RequestedDate: p.RequestedDate,
		ProcessedDate: p.ProcessedDate,
		ProcessedBy:   p.ProcessedBy,
		Notes:         p.Notes,
	}
}

// ListPayoutsRequest defines query parameters for listing payouts.
type ListPayoutsRequest struct {
	request.ListParams
	BeachID string `form:"beachId" binding:"omitempty,uuid"`
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected completed"`
}

// CreatePayoutRequest defines the payload for requesting a payout.
type CreatePayoutRequest struct {
	BeachID string  `json:"beachId" binding:"required,uuid"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Notes   string  `json:"notes"`
}

// ProcessPayoutRequest defines the payload for moving a payout through its
// lifecycle.
type ProcessPayoutRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected completed"`
	Notes  string `json:"notes"`
}
