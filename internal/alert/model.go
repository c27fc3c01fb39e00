package alert

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("alert not found")

// Type enumerates alert severities.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// ValidType reports whether t is a known alert type.
func ValidType(t Type) bool {
	return t == TypeInfo || t == TypeWarning || t == TypeSuccess || t == TypeError
}

// Alert is an operational notice shown in the admin panel, optionally
// scoped to a beach.
type Alert struct {
	ID        string
	Type      Type
	Message   string
	BeachID   *string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing alerts.
type Filter struct {
	Type       string
	BeachID    string
	UnreadOnly bool
	Page       int
	PageSize   int
}

// LogEntry is one line of the error log view: warnings and errors rendered
// with their origin.
type LogEntry struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
