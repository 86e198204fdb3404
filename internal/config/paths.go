// Package config resolves the file locations this program works with. Every
// path can be redirected through the environment so tests and containers
// never touch a real home directory. Paths are resolved once at startup and
// passed down explicitly; there is no process-wide singleton.
package config

import (
	"os"
	"path/filepath"
)

const homeEnv = "AGENTWIRE_HOME"

// Paths holds every file location the program reads or writes.
type Paths struct {
	// Home is the application home directory (~/.agentwire).
	Home string

	// AuditLog is the JSONL operation log (~/.agentwire/audit.log).
	AuditLog string

	// HistoryDB is the sqlite history database (~/.agentwire/history.db).
	HistoryDB string

	// Backups is the config snapshot directory (~/.agentwire/backups).
	Backups string

	// RegistryTable optionally points at an external provider table
	// (AGENTWIRE_REGISTRY); empty means the built-in table.
	RegistryTable string

	// Pi is the pi agent's provider document (~/.pi/agent/models.json).
	Pi string

	// ClaudeSettings is Claude Code's settings file
	// (~/.claude/settings.json).
	ClaudeSettings string

	// ClaudeJSON is Claude Code's MCP configuration (~/.claude.json).
	ClaudeJSON string

	// CodexConfig is Codex CLI's configuration (~/.codex/config.toml).
	CodexConfig string

	// CodexAuth is Codex CLI's credential file (~/.codex/auth.json).
	CodexAuth string
}

// DefaultPaths resolves all paths from the user's home directory and the
// AGENTWIRE_* environment overrides.
func DefaultPaths() Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	appHome := getEnvDefault(homeEnv, filepath.Join(home, ".agentwire"))

	return Paths{
		Home:          appHome,
		AuditLog:      filepath.Join(appHome, "audit.log"),
		HistoryDB:     filepath.Join(appHome, "history.db"),
		Backups:       filepath.Join(appHome, "backups"),
		RegistryTable: os.Getenv("AGENTWIRE_REGISTRY"),

		Pi:             getEnvDefault("AGENTWIRE_PI_CONFIG", filepath.Join(home, ".pi", "agent", "models.json")),
		ClaudeSettings: getEnvDefault("AGENTWIRE_CLAUDE_SETTINGS", filepath.Join(home, ".claude", "settings.json")),
		ClaudeJSON:     getEnvDefault("AGENTWIRE_CLAUDE_JSON", filepath.Join(home, ".claude.json")),
		CodexConfig:    getEnvDefault("AGENTWIRE_CODEX_CONFIG", filepath.Join(home, ".codex", "config.toml")),
		CodexAuth:      getEnvDefault("AGENTWIRE_CODEX_AUTH", filepath.Join(home, ".codex", "auth.json")),
	}
}

// WithHome rebases the application-owned paths (log, history, backups) onto
// a different home directory. Tool paths are left as resolved.
func (p Paths) WithHome(appHome string) Paths {
	p.Home = appHome
	p.AuditLog = filepath.Join(appHome, "audit.log")
	p.HistoryDB = filepath.Join(appHome, "history.db")
	p.Backups = filepath.Join(appHome, "backups")
	return p
}

// EnsureHome creates the application home directory.
func (p Paths) EnsureHome() error {
	return os.MkdirAll(p.Home, 0o755)
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
