package tool

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/halden/agentwire/internal/confstore"
	"github.com/halden/agentwire/internal/lifecycle"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/registry"
)

// Codex CLI splits its configuration across two files: provider and model
// selection in ~/.codex/config.toml, the API key in ~/.codex/auth.json. The
// TOML file is round-tripped through a generic map so tables this program
// does not own survive a rewrite.
type Codex struct {
	reg        *registry.Registry
	identity   string
	configPath string
	auth       *confstore.Store
}

// NewCodex creates the Codex CLI manager.
func NewCodex(reg *registry.Registry, identity, configPath, authPath string) *Codex {
	return &Codex{
		reg:        reg,
		identity:   identity,
		configPath: configPath,
		auth:       confstore.New(authPath),
	}
}

func (c *Codex) Name() string { return "codex" }

func (c *Codex) Title() string { return "Codex CLI" }

func (c *Codex) Paths() []string {
	return []string{c.configPath, c.auth.Path()}
}

func (c *Codex) readConfig() (map[string]any, error) {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, &confstore.ParseError{Path: c.configPath, Err: err}
	}
	cfg := map[string]any{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &confstore.ParseError{Path: c.configPath, Err: err}
	}
	return cfg, nil
}

func (c *Codex) writeConfig(cfg map[string]any) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return &confstore.WriteError{Path: c.configPath, Err: err}
	}
	return confstore.WriteFile(c.configPath, data)
}

func (c *Codex) providerTable(cfg map[string]any) map[string]any {
	providers, ok := cfg["model_providers"].(map[string]any)
	if !ok {
		return nil
	}
	table, ok := providers[c.identity].(map[string]any)
	if !ok {
		return nil
	}
	return table
}

func (c *Codex) Detect() lifecycle.Detection {
	var key string
	if authDoc, err := c.auth.Read(); err == nil {
		key = authDoc.GetString("OPENAI_API_KEY")
	}
	if key == "" {
		return lifecycle.Detection{}
	}

	d := lifecycle.Detection{APIKey: key}
	cfg, err := c.readConfig()
	if err != nil {
		return d
	}
	if model, ok := cfg["model"].(string); ok {
		d.Model = model
	}

	var baseURL string
	if table := c.providerTable(cfg); table != nil {
		baseURL, _ = table["base_url"].(string)
	}
	d.Plan = lifecycle.ClassifyPlan(c.reg, c.identity, baseURL)
	return d
}

// Load writes the provider table and model selection into config.toml and
// the key into auth.json. Codex speaks the OpenAI wire shapes, which every
// shipped plan exposes.
func (c *Codex) Load(apiKey string, opts provider.Options) error {
	key, err := provider.ValidateAPIKey(apiKey)
	if err != nil {
		return err
	}
	res, err := provider.Resolve(c.reg, c.identity, opts)
	if err != nil {
		return err
	}

	wireAPI := "chat"
	if res.API == registry.ProtocolOpenAIResponses {
		wireAPI = "responses"
	}

	cfg, err := c.readConfig()
	if err != nil {
		return err
	}
	providers, ok := cfg["model_providers"].(map[string]any)
	if !ok {
		providers = map[string]any{}
		cfg["model_providers"] = providers
	}
	table, ok := providers[c.identity].(map[string]any)
	if !ok {
		table = map[string]any{}
		providers[c.identity] = table
	}
	table["name"] = res.DisplayName
	table["base_url"] = res.BaseURL
	table["wire_api"] = wireAPI

	cfg["model"] = res.ModelID
	cfg["model_provider"] = c.identity

	if err := c.writeConfig(cfg); err != nil {
		return err
	}

	authDoc, err := c.auth.Read()
	if err != nil {
		return err
	}
	authDoc.Set("OPENAI_API_KEY", key)
	return c.auth.Write(authDoc)
}

func (c *Codex) Unload() error {
	if !c.auth.Exists() {
		return nil
	}
	authDoc, err := c.auth.Read()
	if err != nil {
		return err
	}
	if !authDoc.Has("OPENAI_API_KEY") {
		return nil
	}

	authDoc.Set("OPENAI_API_KEY", "")
	return c.auth.Write(authDoc)
}

func (c *Codex) AddMCPServer(srv mcp.Server) error {
	return &UnsupportedError{Tool: c.Name(), Op: "MCP server management"}
}
