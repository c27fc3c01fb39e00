package alert

import (
	"context"

	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// CreateInput carries the fields of a new alert.
type CreateInput struct {
	Type    Type
	Message string
	BeachID *string
}

// Service defines business logic for alerts and the error log view.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Alert, error)
	List(ctx context.Context, filter Filter) ([]*Alert, int, error)
	MarkRead(ctx context.Context, id string) (*Alert, error)
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	ErrorLog(ctx context.Context) ([]LogEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Alert, error) {
	if input.Message == "" {
		return nil, apperror.BadRequest("message is required")
	}
	if input.Type == "" {
		input.Type = TypeInfo
	}
	if !ValidType(input.Type) {
		return nil, apperror.BadRequest("invalid alert type")
	}

	a := &Alert{Type: input.Type, Message: input.Message, BeachID: input.BeachID}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Alert, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id string) (*Alert, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ErrorLog renders the latest warnings and errors as log entries. The
// source names the beach scope when the alert has one.
func (s *service) ErrorLog(ctx context.Context) ([]LogEntry, error) {
	alerts, err := s.repo.RecentSevere(ctx, 50)
	if err != nil {
		return nil, err
	}
	entries := make([]LogEntry, 0, len(alerts))
	for _, a := range alerts {
		source := "system"
		if a.BeachID != nil {
			source = "beach:" + *a.BeachID
		}
		entries = append(entries, LogEntry{
			ID:        a.ID,
			Level:     string(a.Type),
			Message:   a.Message,
			Source:    source,
			Timestamp: a.CreatedAt,
		})
	}
	return entries, nil
}
