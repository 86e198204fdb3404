// Package tool adapts the provider lifecycle to the on-disk configuration
// formats of the supported third-party coding agents. Each manager owns one
// tool's files; orchestration over multiple tools is left to callers.
package tool

import (
	"errors"
	"fmt"

	"github.com/halden/agentwire/internal/lifecycle"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/provider"
)

// Common manager errors.
var (
	// ErrUnknownTool indicates a tool name no manager is registered for.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnsupported indicates an operation a tool's format has no
	// equivalent for. Surfaced explicitly so callers can branch on
	// capability instead of silently succeeding.
	ErrUnsupported = errors.New("operation not supported")
)

// UnsupportedError wraps ErrUnsupported with the tool and operation.
type UnsupportedError struct {
	Tool string
	Op   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Tool, e.Op)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Manager configures one third-party tool.
type Manager interface {
	// Name is the stable identifier used on the command line.
	Name() string

	// Title is the human label.
	Title() string

	// Paths lists the files this manager writes, for backup and diagnostics.
	Paths() []string

	// Detect probes the tool's stored configuration. Best-effort; never
	// fails.
	Detect() lifecycle.Detection

	// Load writes the provider configuration into the tool's files.
	Load(apiKey string, opts provider.Options) error

	// Unload blanks the stored secret while keeping the configuration
	// structure in place.
	Unload() error

	// AddMCPServer installs an MCP server definition. Tools without
	// extension management return an UnsupportedError.
	AddMCPServer(srv mcp.Server) error
}

// Paths wires each manager to its files. Tests point these at temp
// directories.
type Paths struct {
	Pi             string
	ClaudeSettings string
	ClaudeJSON     string
	CodexConfig    string
	CodexAuth      string
}

// For finds a manager by name.
func For(managers []Manager, name string) (Manager, error) {
	for _, m := range managers {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}
