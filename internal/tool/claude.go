package tool

import (
	"sort"

	"github.com/halden/agentwire/internal/confstore"
	"github.com/halden/agentwire/internal/jsondoc"
	"github.com/halden/agentwire/internal/lifecycle"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/registry"
)

// Claude Code reads its provider settings from the env map in
// ~/.claude/settings.json and its MCP servers from ~/.claude.json. Both
// files are user-edited, so writes go through the order-preserving document
// store.
const (
	envBaseURL   = "ANTHROPIC_BASE_URL"
	envAuthToken = "ANTHROPIC_AUTH_TOKEN"
	envModel     = "ANTHROPIC_MODEL"
)

// Claude manages Claude Code's settings and MCP configuration.
type Claude struct {
	reg      *registry.Registry
	identity string
	settings *confstore.Store
	mcpFile  *confstore.Store
}

// NewClaude creates the Claude Code manager.
func NewClaude(reg *registry.Registry, identity, settingsPath, mcpPath string) *Claude {
	return &Claude{
		reg:      reg,
		identity: identity,
		settings: confstore.New(settingsPath),
		mcpFile:  confstore.New(mcpPath),
	}
}

func (c *Claude) Name() string { return "claude" }

func (c *Claude) Title() string { return "Claude Code" }

func (c *Claude) Paths() []string {
	return []string{c.settings.Path(), c.mcpFile.Path()}
}

func (c *Claude) Detect() lifecycle.Detection {
	doc, err := c.settings.Read()
	if err != nil {
		return lifecycle.Detection{}
	}
	env := doc.GetObject("env")
	if env == nil {
		return lifecycle.Detection{}
	}
	token := env.GetString(envAuthToken)
	if token == "" {
		return lifecycle.Detection{}
	}

	return lifecycle.Detection{
		Plan:   lifecycle.ClassifyPlan(c.reg, c.identity, env.GetString(envBaseURL)),
		APIKey: token,
		Model:  env.GetString(envModel),
	}
}

// Load resolves the provider facts, derives the Anthropic-compatible
// endpoint and writes the env map. Hostings that only expose an
// OpenAI-compatible API cannot serve Claude Code and are rejected.
func (c *Claude) Load(apiKey string, opts provider.Options) error {
	key, err := provider.ValidateAPIKey(apiKey)
	if err != nil {
		return err
	}
	res, err := provider.Resolve(c.reg, c.identity, opts)
	if err != nil {
		return err
	}

	baseURL := res.BaseURL
	if res.API != registry.ProtocolAnthropic {
		derived, ok := c.reg.ResolveProviderBaseURL(c.identity, registry.ProtocolAnthropic, res.BaseURL)
		if !ok {
			return &UnsupportedError{Tool: c.Name(), Op: "plans without an Anthropic-compatible endpoint"}
		}
		baseURL = derived
	}

	doc, err := c.settings.Read()
	if err != nil {
		return err
	}
	env := doc.EnsureObject("env")
	env.Set(envBaseURL, baseURL)
	env.Set(envAuthToken, key)
	env.Set(envModel, res.ModelID)
	return c.settings.Write(doc)
}

func (c *Claude) Unload() error {
	if !c.settings.Exists() {
		return nil
	}
	doc, err := c.settings.Read()
	if err != nil {
		return err
	}
	env := doc.GetObject("env")
	if env == nil || !env.Has(envAuthToken) {
		return nil
	}

	env.Set(envAuthToken, "")
	return c.settings.Write(doc)
}

// AddMCPServer installs a server definition into the mcpServers map of
// ~/.claude.json, leaving every other key of that file alone.
func (c *Claude) AddMCPServer(srv mcp.Server) error {
	doc, err := c.mcpFile.Read()
	if err != nil {
		return err
	}

	entry := jsondoc.New()
	entry.Set("command", srv.Command)
	args := make([]any, len(srv.Args))
	for i, a := range srv.Args {
		args[i] = a
	}
	entry.Set("args", args)
	if len(srv.Env) > 0 {
		env := jsondoc.New()
		for _, k := range sortedEnvKeys(srv.Env) {
			env.Set(k, srv.Env[k])
		}
		entry.Set("env", env)
	}

	doc.EnsureObject("mcpServers").Set(srv.Name, entry)
	return c.mcpFile.Write(doc)
}

func sortedEnvKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
