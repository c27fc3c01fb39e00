package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/alert"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
)

// AlertResponse is the API shape of an alert.
type AlertResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	BeachID   *string   `json:"beachId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAlertResponse(a *alert.Alert) AlertResponse {
	return AlertResponse{
		ID:        a.ID,
		Type:      string(a.Type),
		Message:   a.Message,
		BeachID:   a.BeachID,
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt,
	}
}

// ListAlertsRequest defines query parameters for listing alerts.
type ListAlertsRequest struct {
	request.ListParams
	Type       string `form:"type" binding:"omitempty,oneof=info warning success error"`
	BeachID    string `form:"beachId" binding:"omitempty,uuid"`
	UnreadOnly bool   `form:"unreadOnly"`
}

// CreateAlertRequest defines the payload for creating an alert.
type CreateAlertRequest struct {
	Type    string  `json:"type" binding:"omitempty,oneof=info warning success error"`
	Message string  `json:"message" binding:"required"`
	BeachID *string `json:"beachId" binding:"omitempty,uuid"`
}
