package integration

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("integration not found")

// Integration is a configured external service connection. Settings holds
// provider-specific options as free-form JSON.
type Integration struct {
	ID        string
	Name      string
	Type      string // e.g. weather, maps, payment
	Provider  string // e.g. openweather, google, stripe, paypal
	APIKey    string
	Enabled   bool
	Settings  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State is the quick on/off view the frontend polls to decide which
// integration-backed widgets to render.
type State struct {
	Weather bool `json:"weather"`
	Maps    bool `json:"maps"`
	Stripe  bool `json:"stripe"`
	PayPal  bool `json:"paypal"`
}
