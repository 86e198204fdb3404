package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes audit events as JSON lines and, when a store is attached,
// persists them to the history database. Logging never breaks a CLI flow:
// persistence failures are swallowed.
type Logger struct {
	mu        sync.Mutex
	sessionID string
	output    io.Writer
	store     *Store
}

// LoggerOption configures the logger.
type LoggerOption func(*Logger)

// WithStore sets the history store for persistence.
func WithStore(store *Store) LoggerOption {
	return func(l *Logger) {
		l.store = store
	}
}

// WithSession sets the session ID.
func WithSession(id string) LoggerOption {
	return func(l *Logger) {
		l.sessionID = id
	}
}

// WithOutput sets the JSONL output writer.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.output = w
	}
}

// NewLogger creates a new audit logger. Without options it writes to
// stderr.
func NewLogger(opts ...LoggerOption) *Logger {
	l := &Logger{
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sessionID == "" {
		l.sessionID = fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return l
}

// Start begins tracking an operation.
func (l *Logger) Start(category Category, operation string) *Event {
	return &Event{
		EventID:   uuid.New().String(),
		Category:  category,
		Operation: operation,
		StartedAt: time.Now(),
		SessionID: l.sessionID,
	}
}

// Log writes a completed event to the output and the store.
func (l *Logger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.CompletedAt.IsZero() {
		event.CompletedAt = time.Now()
		event.Duration = event.CompletedAt.Sub(event.StartedAt)
		event.DurationMs = event.Duration.Milliseconds()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = fmt.Fprintf(l.output, "%s\n", data)

	if l.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// Persistence is best-effort; the JSONL line is the record of truth.
		_ = l.store.Save(ctx, event)
	}

	return err
}

// LogSuccess logs a successful operation.
func (l *Logger) LogSuccess(event *Event) error {
	event.Complete(StatusSuccess, nil)
	return l.Log(event)
}

// LogError logs a failed operation.
func (l *Logger) LogError(event *Event, err error) error {
	event.Complete(StatusError, err)
	return l.Log(event)
}

// LogWarning logs a warning.
func (l *Logger) LogWarning(event *Event, msg string) error {
	event.Complete(StatusWarning, nil)
	event.ErrorMessage = msg
	return l.Log(event)
}
