package tool

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/registry"
)

func testManagers(t *testing.T) ([]Manager, Paths) {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)

	dir := t.TempDir()
	p := Paths{
		Pi:             filepath.Join(dir, "pi", "agent", "models.json"),
		ClaudeSettings: filepath.Join(dir, "claude", "settings.json"),
		ClaudeJSON:     filepath.Join(dir, "claude.json"),
		CodexConfig:    filepath.Join(dir, "codex", "config.toml"),
		CodexAuth:      filepath.Join(dir, "codex", "auth.json"),
	}
	return All(reg, "kimi", p), p
}

func TestAllManagerNames(t *testing.T) {
	managers, _ := testManagers(t)

	var names []string
	for _, m := range managers {
		names = append(names, m.Name())
		assert.NotEmpty(t, m.Title())
		assert.NotEmpty(t, m.Paths())
	}
	assert.Equal(t, []string{"pi", "claude", "codex"}, names)
}

func TestFor(t *testing.T) {
	managers, _ := testManagers(t)

	m, err := For(managers, "claude")
	require.NoError(t, err)
	assert.Equal(t, "Claude Code", m.Title())

	_, err = For(managers, "cursor")
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestLoadDetectUnloadCycle(t *testing.T) {
	managers, _ := testManagers(t)

	for _, m := range managers {
		t.Run(m.Name(), func(t *testing.T) {
			assert.False(t, m.Detect().Configured())

			require.NoError(t, m.Load("sk-cycle", provider.Options{}))

			d := m.Detect()
			assert.True(t, d.Configured())
			assert.Equal(t, "kimi", d.Plan)
			assert.Equal(t, "sk-cycle", d.APIKey)
			assert.Equal(t, "kimi-k2-thinking", d.Model)

			require.NoError(t, m.Unload())
			assert.False(t, m.Detect().Configured())
		})
	}
}

func TestLoadRejectsBlankKeyEverywhere(t *testing.T) {
	managers, _ := testManagers(t)

	for _, m := range managers {
		err := m.Load("   ", provider.Options{})
		assert.ErrorIs(t, err, provider.ErrValidation, m.Name())
	}
}

func TestUnsupportedMCPManagement(t *testing.T) {
	managers, _ := testManagers(t)
	srv, ok := mcp.Find("fetch")
	require.True(t, ok)

	for _, name := range []string{"pi", "codex"} {
		m, err := For(managers, name)
		require.NoError(t, err)

		err = m.AddMCPServer(srv)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrUnsupported, name)

		var uerr *UnsupportedError
		require.True(t, errors.As(err, &uerr), name)
		assert.Equal(t, name, uerr.Tool)
	}
}
