package provider

import (
	"errors"
	"strings"

	"github.com/halden/agentwire/internal/jsondoc"
	"github.com/halden/agentwire/internal/registry"
)

// ErrValidation indicates caller-supplied input violated a precondition.
// Validation failures surface before any file is touched.
var ErrValidation = errors.New("invalid input")

// ValidationError wraps ErrValidation with the violated precondition.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Options carries the caller's overrides for one load. Zero-value fields
// mean "use the registry's resolution".
type Options struct {
	// BaseURL overrides the variant's resolved endpoint.
	BaseURL string

	// Model overrides the variant's default model id.
	Model string

	// Source selects the hosting variant ("" for native).
	Source string
}

// Resolution is the full set of static facts derived for one load.
type Resolution struct {
	BaseURL     string
	ModelID     string
	DisplayName string
	API         registry.ProtocolMode
	Reasoning   bool
	MaxContext  int
}

// Resolve derives the endpoint, model, protocol and capability facts for an
// identity under the caller's options. Pure: no document is consulted.
func Resolve(reg *registry.Registry, identity string, opts Options) (Resolution, error) {
	source := registry.Source(strings.TrimSpace(opts.Source))

	var res Resolution

	res.BaseURL = strings.TrimSpace(opts.BaseURL)
	if res.BaseURL == "" {
		url, err := reg.ResolveBaseURL(identity, source)
		if err != nil {
			return Resolution{}, err
		}
		res.BaseURL = url
	}

	res.ModelID = strings.TrimSpace(opts.Model)
	if res.ModelID == "" {
		res.ModelID = reg.DefaultModel(identity, source)
	}

	api, err := reg.ResolveProtocol(identity)
	if err != nil {
		return Resolution{}, err
	}
	res.API = api
	res.Reasoning = registry.SupportsReasoning(source)
	res.DisplayName = reg.DisplayName(identity, source)
	res.MaxContext = reg.MaxContext(identity)
	return res, nil
}

// ValidateAPIKey trims an API key and rejects blank input. Every surface
// that persists a key funnels through this check.
func ValidateAPIKey(apiKey string) (string, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return "", &ValidationError{Msg: "API key cannot be empty"}
	}
	return key, nil
}

// Merge computes the new provider sub-document from the stored one and a
// resolution. The stored document is not modified; the result is a copy
// with only the owned fields rewritten, so every unrecognized field of the
// entry and of its models survives verbatim.
func Merge(existing *jsondoc.Object, res Resolution, apiKey string) (*jsondoc.Object, error) {
	key, err := ValidateAPIKey(apiKey)
	if err != nil {
		return nil, err
	}

	entry := jsondoc.New()
	if existing != nil {
		entry = existing.Clone()
	}

	entry.Set(keyBaseURL, res.BaseURL)
	entry.Set(keyAPI, string(res.API))
	entry.Set(keyAPIKey, key)
	entry.Set(keyAuthHeader, true)
	entry.Set(keyModels, reconcileModels(entry.GetArray(keyModels), res))
	return entry, nil
}

// reconcileModels applies the configured-model convention to a stored model
// list: the first element is the configured slot.
func reconcileModels(models []any, res Resolution) []any {
	if len(models) == 0 {
		tpl := Model{
			ID:            res.ModelID,
			Name:          res.DisplayName,
			Reasoning:     res.Reasoning,
			Input:         []string{"text"},
			ContextWindow: res.MaxContext,
			MaxTokens:     res.MaxContext,
		}
		return []any{tpl.Document()}
	}

	// An entry whose id already matches keeps everything but its reasoning
	// flag, wherever it sits in the list.
	for _, m := range models {
		obj, ok := m.(*jsondoc.Object)
		if !ok {
			continue
		}
		if obj.GetString(keyModelID) == res.ModelID {
			obj.Set(keyReasoning, res.Reasoning)
			return models
		}
	}

	// No match: the first slot becomes the configured model. Its display
	// name is only filled in when blank; every other field and every later
	// entry stays as stored.
	if slot, ok := models[0].(*jsondoc.Object); ok {
		slot.Set(keyModelID, res.ModelID)
		slot.Set(keyReasoning, res.Reasoning)
		if strings.TrimSpace(slot.GetString(keyModelName)) == "" {
			slot.Set(keyModelName, res.DisplayName)
		}
	}
	return models
}
