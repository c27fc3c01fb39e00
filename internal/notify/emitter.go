package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/stan.go"

	"github.com/playamar/beach-admin-backend/internal/logger"
)

// Emitter is the outbound side of the change notification channel.
// Emission is best effort: callers log and swallow errors, and must never
// let a failed publish abort the surrounding mutation.
type Emitter interface {
	Emit(subject string, payload any) error
	Close() error
}

// Config holds NATS Streaming connection settings.
type Config struct {
	URL       string
	ClusterID string
	ClientID  string
}

type stanEmitter struct {
	conn stan.Conn
}

// NewStanEmitter connects to NATS Streaming and returns an Emitter over it.
func NewStanEmitter(cfg Config) (Emitter, error) {
	conn, err := stan.Connect(cfg.ClusterID, cfg.ClientID, stan.NatsURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS Streaming: %w", err)
	}
	return &stanEmitter{conn: conn}, nil
}

func (e *stanEmitter) Emit(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := e.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}

	logger.Get().Debug("published change notification", "subject", subject)
	return nil
}

func (e *stanEmitter) Close() error {
	if e.conn != nil {
		return e.conn.Close()
	}
	return nil
}

type noopEmitter struct{}

// NewNoopEmitter returns an Emitter that drops every event.
// Used when no NATS URL is configured, and in tests.
func NewNoopEmitter() Emitter {
	return noopEmitter{}
}

func (noopEmitter) Emit(string, any) error { return nil }
func (noopEmitter) Close() error           { return nil }
