// Package registry holds the static provider facts: base URLs per protocol
// and hosting variant, default models, context ceilings and display names.
// The table ships as embedded YAML so the facts stay configuration data; an
// alternate table can be loaded from a file. All lookups are pure functions
// over the loaded table, no I/O at use time.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed registry.yaml
var builtinTable []byte

// ProtocolMode identifies the wire API shape used to talk to an endpoint.
type ProtocolMode string

const (
	ProtocolOpenAIChat      ProtocolMode = "openai-chat-completions"
	ProtocolOpenAIResponses ProtocolMode = "openai-responses"
	ProtocolAnthropic       ProtocolMode = "anthropic-messages"
	ProtocolGenerativeAI    ProtocolMode = "generative-ai"
)

// Source names a hosting variant for a provider identity. The empty string
// is the native variant (the provider's own endpoint).
type Source string

const (
	SourceNative     Source = ""
	SourceNvidia     Source = "nvidia"
	SourceOpenRouter Source = "openrouter"
	SourceGLMGlobal  Source = "glm-global"
	SourceGLMChina   Source = "glm-china"
	SourceCustom     Source = "custom"
)

// ErrUnknownProvider indicates a lookup for an identity the table does not
// define.
var ErrUnknownProvider = errors.New("unknown provider")

// ErrNoBaseURL indicates a variant that carries no endpoint of its own and
// requires a caller-supplied base URL.
var ErrNoBaseURL = errors.New("variant has no base URL")

// Variant describes one hosting channel for an identity.
type Variant struct {
	Name         Source   `yaml:"name"`
	DisplayName  string   `yaml:"displayName"`
	BaseURL      string   `yaml:"baseUrl"`
	AnthropicURL string   `yaml:"anthropicUrl"`
	DefaultModel string   `yaml:"defaultModel"`
	Fragments    []string `yaml:"fragments"`
}

// Identity describes one provider identity and its hosting variants.
type Identity struct {
	ID           string                  `yaml:"id"`
	Aliases      []string                `yaml:"aliases"`
	DisplayName  string                  `yaml:"displayName"`
	DefaultModel string                  `yaml:"defaultModel"`
	MaxContext   int                     `yaml:"maxContext"`
	Protocol     ProtocolMode            `yaml:"protocol"`
	BaseURLs     map[ProtocolMode]string `yaml:"baseUrls"`
	Variants     []Variant               `yaml:"variants"`
}

func (id *Identity) variant(source Source) (*Variant, bool) {
	for i := range id.Variants {
		if id.Variants[i].Name == source {
			return &id.Variants[i], true
		}
	}
	return nil, false
}

// Registry is a loaded provider table.
type Registry struct {
	identities []Identity
	byID       map[string]*Identity
}

type tableFile struct {
	Identities []Identity `yaml:"identities"`
}

// Load parses the built-in table.
func Load() (*Registry, error) {
	return parse(builtinTable)
}

// LoadFile parses a table from an external YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry table: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse registry table: %w", err)
	}
	if len(tf.Identities) == 0 {
		return nil, errors.New("registry table defines no identities")
	}

	r := &Registry{
		identities: tf.Identities,
		byID:       make(map[string]*Identity),
	}
	for i := range r.identities {
		id := &r.identities[i]
		if id.ID == "" {
			return nil, errors.New("registry table entry missing id")
		}
		if id.DefaultModel == "" || id.Protocol == "" {
			return nil, fmt.Errorf("identity %s missing defaultModel or protocol", id.ID)
		}
		if _, ok := id.BaseURLs[id.Protocol]; !ok {
			return nil, fmt.Errorf("identity %s has no base URL for its protocol", id.ID)
		}
		r.byID[id.ID] = id
		for _, alias := range id.Aliases {
			r.byID[strings.ToLower(alias)] = id
		}
	}
	return r, nil
}

// Normalize maps a user-supplied provider name to its canonical identity id.
// Matching is case-insensitive and alias-aware ("moonshot" resolves to
// "kimi").
func (r *Registry) Normalize(name string) (string, bool) {
	id, ok := r.byID[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return id.ID, true
}

// Identity returns the table entry for an identity id or alias.
func (r *Registry) Identity(id string) (*Identity, bool) {
	entry, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	return entry, ok
}

// Identities returns all identities in table order.
func (r *Registry) Identities() []Identity {
	out := make([]Identity, len(r.identities))
	copy(out, r.identities)
	return out
}

// ResolveBaseURL returns the endpoint for an identity under a hosting
// variant. The native variant (and any unrecognized source) resolves to the
// identity's own endpoint for its protocol. A variant with no endpoint of
// its own, such as "custom", yields ErrNoBaseURL; callers supply the URL
// as an override instead.
func (r *Registry) ResolveBaseURL(identity string, source Source) (string, error) {
	id, ok := r.Identity(identity)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, identity)
	}
	if v, ok := id.variant(source); ok {
		if v.BaseURL == "" {
			return "", fmt.Errorf("%w: %s/%s", ErrNoBaseURL, id.ID, source)
		}
		return v.BaseURL, nil
	}
	return id.BaseURLs[id.Protocol], nil
}

// ResolveProtocol returns the protocol mode for an identity. The mode is
// fixed per identity; all hosting variants share it.
func (r *Registry) ResolveProtocol(identity string) (ProtocolMode, error) {
	id, ok := r.Identity(identity)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, identity)
	}
	return id.Protocol, nil
}

// SupportsReasoning reports whether extended-thinking output is available
// under a hosting variant. It is a native-API-only feature: true for the
// native variant, false for every cross-hosted one.
func SupportsReasoning(source Source) bool {
	return source == SourceNative
}

// DisplayName returns the human label for an identity under a hosting
// variant. Unrecognized variants fall back to the identity's canonical
// label.
func (r *Registry) DisplayName(identity string, source Source) string {
	id, ok := r.Identity(identity)
	if !ok {
		return identity
	}
	if v, ok := id.variant(source); ok && v.DisplayName != "" {
		return v.DisplayName
	}
	return id.DisplayName
}

// DefaultModel returns the default model id for an identity under a hosting
// variant. Gateway variants may override the identity default with their own
// namespaced id (e.g. "moonshotai/kimi-k2-thinking" on OpenRouter).
func (r *Registry) DefaultModel(identity string, source Source) string {
	id, ok := r.Identity(identity)
	if !ok {
		return ""
	}
	if v, ok := id.variant(source); ok && v.DefaultModel != "" {
		return v.DefaultModel
	}
	return id.DefaultModel
}

// MaxContext returns the documented context ceiling for an identity, or 0
// when unknown.
func (r *Registry) MaxContext(identity string) int {
	id, ok := r.Identity(identity)
	if !ok {
		return 0
	}
	return id.MaxContext
}

// ResolveProviderBaseURL derives the endpoint for a target protocol from a
// configured base URL, for hostings that expose more than one protocol. The
// configured URL is matched (trailing slashes ignored) against the
// identity's native endpoints and variant endpoints; hostings without an
// equivalent for the target protocol report ok=false.
func (r *Registry) ResolveProviderBaseURL(identity string, protocol ProtocolMode, configuredURL string) (string, bool) {
	id, ok := r.Identity(identity)
	if !ok {
		return "", false
	}
	configured := strings.TrimRight(strings.TrimSpace(configuredURL), "/")

	for mode, u := range id.BaseURLs {
		if mode == protocol {
			continue
		}
		if strings.TrimRight(u, "/") == configured {
			target, ok := id.BaseURLs[protocol]
			return target, ok
		}
	}
	if u, ok := id.BaseURLs[protocol]; ok && strings.TrimRight(u, "/") == configured {
		return u, true
	}
	for i := range id.Variants {
		v := &id.Variants[i]
		if v.BaseURL != "" && strings.TrimRight(v.BaseURL, "/") == configured {
			if protocol == ProtocolAnthropic && v.AnthropicURL != "" {
				return v.AnthropicURL, true
			}
			if protocol == id.Protocol {
				return v.BaseURL, true
			}
			return "", false
		}
		if v.AnthropicURL != "" && strings.TrimRight(v.AnthropicURL, "/") == configured {
			if protocol == ProtocolAnthropic {
				return v.AnthropicURL, true
			}
			if protocol == id.Protocol {
				return v.BaseURL, true
			}
			return "", false
		}
	}
	return "", false
}

// Classify maps a stored base URL back to the hosting variant that produced
// it. Variants are tried in table order and the first whose fragment appears
// anywhere in the URL wins; no match means native.
//
// This is a substring heuristic, not a guarantee: a custom URL that happens
// to contain a known fragment classifies as that variant. Kept for
// compatibility with stored configurations; exact host matching would not
// recognize URLs hand-edited with path or port changes.
func (r *Registry) Classify(identity, baseURL string) Source {
	id, ok := r.Identity(identity)
	if !ok {
		return SourceNative
	}
	url := strings.ToLower(baseURL)
	for i := range id.Variants {
		for _, frag := range id.Variants[i].Fragments {
			if frag != "" && strings.Contains(url, frag) {
				return id.Variants[i].Name
			}
		}
	}
	return SourceNative
}
