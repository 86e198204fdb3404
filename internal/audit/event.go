// Package audit provides structured logging of configuration operations:
// which tool was pointed at which plan, when, and whether it worked.
// Secrets never appear in events; keys pass through Mask first.
package audit

import (
	"strings"
	"time"
)

// Category represents the type of operation being audited.
type Category string

const (
	CategoryTool   Category = "tool"
	CategoryMCP    Category = "mcp"
	CategoryBackup Category = "backup"
	CategorySystem Category = "system"
)

// Status represents the outcome of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// Event represents a single auditable operation.
type Event struct {
	EventID string `json:"event_id"`

	// Operation details
	Category  Category `json:"category"`
	Operation string   `json:"operation"`
	Tool      string   `json:"tool,omitempty"`
	Plan      string   `json:"plan,omitempty"`
	Model     string   `json:"model,omitempty"`

	// Result
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Timing
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at,omitempty"`
	DurationMs  int64         `json:"duration_ms,omitempty"`
	Duration    time.Duration `json:"-"`

	// Session context
	SessionID string `json:"session_id,omitempty"`
}

// Complete finalizes the event with timing and status.
func (e *Event) Complete(status Status, err error) {
	e.CompletedAt = time.Now()
	e.Duration = e.CompletedAt.Sub(e.StartedAt)
	e.DurationMs = e.Duration.Milliseconds()
	e.Status = status

	if err != nil {
		e.ErrorMessage = err.Error()
		if status == "" {
			e.Status = StatusError
		}
	}
}

// Mask redacts a secret for display and logging, keeping the last four
// runes. Short secrets are masked in full.
func Mask(secret string) string {
	secret = strings.TrimSpace(secret)
	runes := []rune(secret)
	if len(runes) == 0 {
		return ""
	}
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return "****" + string(runes[len(runes)-4:])
}
