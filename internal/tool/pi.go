package tool

import (
	"github.com/halden/agentwire/internal/confstore"
	"github.com/halden/agentwire/internal/lifecycle"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/registry"
)

// Pi manages the pi agent's models.json. Its format is the provider
// document the lifecycle engine works on natively, so this manager is a
// thin wrapper.
type Pi struct {
	lc *lifecycle.Lifecycle
}

// NewPi creates the pi manager for the models file at path.
func NewPi(reg *registry.Registry, identity, path string) *Pi {
	return &Pi{lc: lifecycle.New(confstore.New(path), reg, identity)}
}

func (p *Pi) Name() string { return "pi" }

func (p *Pi) Title() string { return "Pi" }

func (p *Pi) Paths() []string {
	return []string{p.lc.Store().Path()}
}

func (p *Pi) Detect() lifecycle.Detection {
	return p.lc.Detect()
}

func (p *Pi) Load(apiKey string, opts provider.Options) error {
	return p.lc.Load(apiKey, opts)
}

func (p *Pi) Unload() error {
	return p.lc.Unload()
}

func (p *Pi) AddMCPServer(srv mcp.Server) error {
	return &UnsupportedError{Tool: p.Name(), Op: "MCP server management"}
}
