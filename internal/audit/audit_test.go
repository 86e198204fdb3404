package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mask Tests ---

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "**"},
		{"abcd", "****"},
		{"abcde", "****bcde"},
		{"sk-1234567890", "****7890"},
		{"  sk-123456  ", "****3456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.in), "Mask(%q)", tt.in)
	}
}

// --- Logger Tests ---

func TestLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithSession("sess-test"))

	event := l.Start(CategoryTool, "use")
	event.Tool = "claude"
	event.Plan = "openrouter"
	require.NoError(t, l.LogSuccess(event))

	line := strings.TrimSpace(buf.String())
	var parsed Event
	require.NoError(t, json.Unmarshal([]byte(line), &parsed))

	assert.NotEmpty(t, parsed.EventID)
	assert.Equal(t, CategoryTool, parsed.Category)
	assert.Equal(t, "use", parsed.Operation)
	assert.Equal(t, "claude", parsed.Tool)
	assert.Equal(t, "openrouter", parsed.Plan)
	assert.Equal(t, StatusSuccess, parsed.Status)
	assert.Equal(t, "sess-test", parsed.SessionID)
	assert.False(t, parsed.CompletedAt.IsZero())
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	event := l.Start(CategoryTool, "use")
	require.NoError(t, l.LogError(event, assert.AnError))

	var parsed Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, StatusError, parsed.Status)
	assert.Equal(t, assert.AnError.Error(), parsed.ErrorMessage)
}

func TestEventComplete(t *testing.T) {
	e := &Event{StartedAt: time.Now().Add(-50 * time.Millisecond)}
	e.Complete("", assert.AnError)

	assert.Equal(t, StatusError, e.Status)
	assert.GreaterOrEqual(t, e.DurationMs, int64(50))
}

// --- Store Tests ---

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndRecent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i, tool := range []string{"pi", "claude", "codex"} {
		e := &Event{
			EventID:   string(rune('a'+i)) + "-event",
			Category:  CategoryTool,
			Operation: "use",
			Tool:      tool,
			Plan:      "kimi",
			Status:    StatusSuccess,
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		e.Complete(StatusSuccess, nil)
		require.NoError(t, s.Save(ctx, e))
	}

	events, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "codex", events[0].Tool)
	assert.Equal(t, "claude", events[1].Tool)
}

func TestStoreCountByStatus(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	save := func(id string, status Status) {
		require.NoError(t, s.Save(ctx, &Event{
			EventID: id, Category: CategoryTool, Operation: "use",
			Status: status, StartedAt: time.Now(),
		}))
	}
	save("e1", StatusSuccess)
	save("e2", StatusSuccess)
	save("e3", StatusError)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[StatusSuccess])
	assert.Equal(t, 1, counts[StatusError])
}

func TestLoggerPersistsToStore(t *testing.T) {
	s := newStore(t)
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithStore(s))

	event := l.Start(CategoryMCP, "add")
	event.Tool = "claude"
	require.NoError(t, l.LogSuccess(event))

	events, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "add", events[0].Operation)
}
