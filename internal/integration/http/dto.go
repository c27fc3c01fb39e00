package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/integration"
)

// IntegrationResponse is the API shape of an integration. The API key is
// masked to its last four characters.
type IntegrationResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Provider  string         `json:"provider"`
	APIKey    string         `json:"apiKey"`
	Enabled   bool           `json:"enabled"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func NewIntegrationResponse(in *integration.Integration) IntegrationResponse {
	settings := in.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	return IntegrationResponse{
		ID:        in.ID,
		Name:      in.Name,
		Type:      in.Type,
		Provider:  in.Provider,
		APIKey:    maskKey(in.APIKey),
		Enabled:   in.Enabled,
		Settings:  settings,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

// CreateIntegrationRequest defines the payload for creating an integration.
type CreateIntegrationRequest struct {
	Name     string         `json:"name" binding:"required"`
	Type     string         `json:"type" binding:"required"`
	Provider string         `json:"provider"`
	APIKey   string         `json:"apiKey" binding:"required"`
	Enabled  bool           `json:"enabled"`
	Settings map[string]any `json:"settings"`
}

// UpdateIntegrationRequest defines the partial update payload.
type UpdateIntegrationRequest struct {
	Name     *string        `json:"name"`
	Type     *string        `json:"type"`
	Provider *string        `json:"provider"`
	APIKey   *string        `json:"apiKey"`
	Enabled  *bool          `json:"enabled"`
	Settings map[string]any `json:"settings"`
}
