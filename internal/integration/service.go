package integration

import (
	"context"
	"strings"

	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// CreateInput carries the fields of a new integration.
type CreateInput struct {
	Name     string
	Type     string
	Provider string
	APIKey   string
	Enabled  bool
	Settings map[string]any
}

// UpdateInput carries a partial integration update.
type UpdateInput struct {
	Name     *string
	Type     *string
	Provider *string
	APIKey   *string
	Enabled  *bool
	Settings map[string]any
}

// Service defines business logic for integrations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Integration, error)
	GetByID(ctx context.Context, id string) (*Integration, error)
	List(ctx context.Context) ([]*Integration, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Integration, error)
	Toggle(ctx context.Context, id string) (*Integration, error)
	Delete(ctx context.Context, id string) error
	State(ctx context.Context) (*State, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Integration, error) {
	if input.Name == "" || input.Type == "" || input.APIKey == "" {
		return nil, apperror.BadRequest("name, type and apiKey are required")
	}
	if input.Settings == nil {
		input.Settings = map[string]any{}
	}

	in := &Integration{
		Name:     input.Name,
		Type:     input.Type,
		Provider: input.Provider,
		APIKey:   input.APIKey,
		Enabled:  input.Enabled,
		Settings: input.Settings,
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Integration, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Integration, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*Integration{}
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Integration, error) {
	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.BadRequest("name must not be empty")
		}
		in.Name = *input.Name
	}
	if input.Type != nil {
		in.Type = *input.Type
	}
	if input.Provider != nil {
		in.Provider = *input.Provider
	}
	if input.APIKey != nil {
		if *input.APIKey == "" {
			return nil, apperror.BadRequest("apiKey must not be empty")
		}
		in.APIKey = *input.APIKey
	}
	if input.Enabled != nil {
		in.Enabled = *input.Enabled
	}
	if input.Settings != nil {
		in.Settings = input.Settings
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *service) Toggle(ctx context.Context, id string) (*Integration, error) {
	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Enabled = !in.Enabled
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// State collapses the configured integrations into the on/off flags the
// frontend cares about. A category is on when any matching integration is
// enabled.
func (s *service) State(ctx context.Context) (*State, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var state State
	for _, in := range list {
		if !in.Enabled {
			continue
		}
		switch strings.ToLower(in.Type) {
		case "weather":
			state.Weather = true
		case "maps":
			state.Maps = true
		}
		switch strings.ToLower(in.Provider) {
		case "stripe":
			state.Stripe = true
		case "paypal":
			state.PayPal = true
		}
	}
	return &state, nil
}
