package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halden/agentwire/internal/jsondoc"
	"github.com/halden/agentwire/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.Load()
	require.NoError(t, err)
	return r
}

// --- Resolve Tests ---

func TestResolveNative(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	assert.Equal(t, "https://api.moonshot.ai/v1", res.BaseURL)
	assert.Equal(t, "kimi-k2-thinking", res.ModelID)
	assert.Equal(t, registry.ProtocolOpenAIChat, res.API)
	assert.True(t, res.Reasoning)
	assert.Equal(t, "Kimi K2", res.DisplayName)
	assert.Equal(t, 262144, res.MaxContext)
}

func TestResolveVariant(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{Source: "openrouter"})
	require.NoError(t, err)

	assert.Equal(t, "https://openrouter.ai/api/v1", res.BaseURL)
	assert.Equal(t, "moonshotai/kimi-k2-thinking", res.ModelID)
	// Reasoning is native-only.
	assert.False(t, res.Reasoning)
	assert.Equal(t, "Kimi K2 (OpenRouter)", res.DisplayName)
	// Protocol is identity-fixed, independent of variant.
	assert.Equal(t, registry.ProtocolOpenAIChat, res.API)
}

func TestResolveOverrides(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{
		BaseURL: "  https://proxy.internal/v1  ",
		Model:   " my-model ",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal/v1", res.BaseURL)
	assert.Equal(t, "my-model", res.ModelID)
}

func TestResolveCustomWithoutURL(t *testing.T) {
	_, err := Resolve(testRegistry(t), "kimi", Options{Source: "custom"})
	assert.ErrorIs(t, err, registry.ErrNoBaseURL)

	// With a URL the custom variant resolves.
	res, err := Resolve(testRegistry(t), "kimi", Options{Source: "custom", BaseURL: "https://gw.corp/v1"})
	require.NoError(t, err)
	assert.Equal(t, "https://gw.corp/v1", res.BaseURL)
	assert.False(t, res.Reasoning)
}

func TestResolveUnknownIdentity(t *testing.T) {
	_, err := Resolve(testRegistry(t), "openai", Options{})
	assert.ErrorIs(t, err, registry.ErrUnknownProvider)
}

// --- Validation Tests ---

func TestValidateAPIKey(t *testing.T) {
	key, err := ValidateAPIKey("  sk-123  ")
	require.NoError(t, err)
	assert.Equal(t, "sk-123", key)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := ValidateAPIKey(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.EqualError(t, err, "API key cannot be empty")
	}
}

func TestMergeRejectsBlankKey(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	_, err = Merge(jsondoc.New(), res, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

// --- Merge Tests ---

func TestMergeSynthesizesModel(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	entry, err := Merge(nil, res, "sk-123")
	require.NoError(t, err)

	assert.Equal(t, "https://api.moonshot.ai/v1", entry.GetString("baseUrl"))
	assert.Equal(t, "openai-chat-completions", entry.GetString("api"))
	assert.Equal(t, "sk-123", entry.GetString("apiKey"))
	assert.True(t, entry.GetBool("authHeader"))

	models := entry.GetArray("models")
	require.Len(t, models, 1)
	m := models[0].(*jsondoc.Object)
	assert.Equal(t, "kimi-k2-thinking", m.GetString("id"))
	assert.Equal(t, "Kimi K2", m.GetString("name"))
	assert.True(t, m.GetBool("reasoning"))
	assert.Equal(t, []any{"text"}, m.GetArray("input"))
	assert.Equal(t, 262144, m.GetInt("contextWindow"))
	assert.Equal(t, 262144, m.GetInt("maxTokens"))

	cost := m.GetObject("cost")
	require.NotNil(t, cost)
	assert.Equal(t, float64(0), cost.GetFloat("input"))
	assert.Equal(t, float64(0), cost.GetFloat("cacheWrite"))
}

func TestMergeTrimsAPIKey(t *testing.T) {
	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	entry, err := Merge(nil, res, "  sk-456\n")
	require.NoError(t, err)
	assert.Equal(t, "sk-456", entry.GetString("apiKey"))
}

func TestMergeExactModelMatchFlipsReasoningOnly(t *testing.T) {
	existing, err := jsondoc.Parse([]byte(`{
		"apiKey": "old",
		"models": [
			{"id": "other", "name": "Other", "reasoning": true},
			{"id": "kimi-k2-thinking", "name": "Custom Name", "reasoning": false,
			 "contextWindow": 1024, "temperature": 0.30}
		]
	}`))
	require.NoError(t, err)

	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	entry, err := Merge(existing, res, "sk-new")
	require.NoError(t, err)

	models := entry.GetArray("models")
	require.Len(t, models, 2)

	// The non-matching entry keeps its place and values.
	first := models[0].(*jsondoc.Object)
	assert.Equal(t, "other", first.GetString("id"))
	assert.True(t, first.GetBool("reasoning"))

	// The match keeps everything but its reasoning flag.
	match := models[1].(*jsondoc.Object)
	assert.Equal(t, "Custom Name", match.GetString("name"))
	assert.True(t, match.GetBool("reasoning"))
	assert.Equal(t, 1024, match.GetInt("contextWindow"))
	assert.Equal(t, 0.3, match.GetFloat("temperature"))
}

func TestMergeRewritesConfiguredSlot(t *testing.T) {
	existing, err := jsondoc.Parse([]byte(`{
		"models": [
			{"id": "stale-model", "name": "My Label", "reasoning": true,
			 "contextWindow": 9999, "custom": "kept"},
			{"id": "second-model", "name": "Second", "reasoning": false}
		]
	}`))
	require.NoError(t, err)

	res, err := Resolve(testRegistry(t), "kimi", Options{Source: "nvidia"})
	require.NoError(t, err)

	entry, err := Merge(existing, res, "sk-1")
	require.NoError(t, err)

	models := entry.GetArray("models")
	require.Len(t, models, 2)

	slot := models[0].(*jsondoc.Object)
	assert.Equal(t, "moonshotai/kimi-k2-thinking", slot.GetString("id"))
	assert.False(t, slot.GetBool("reasoning"))
	// Existing non-blank name is kept; other fields untouched.
	assert.Equal(t, "My Label", slot.GetString("name"))
	assert.Equal(t, 9999, slot.GetInt("contextWindow"))
	assert.Equal(t, "kept", slot.GetString("custom"))

	// The second descriptor is untouched, order preserved.
	second := models[1].(*jsondoc.Object)
	assert.Equal(t, "second-model", second.GetString("id"))
	assert.Equal(t, "Second", second.GetString("name"))
}

func TestMergeFillsBlankSlotName(t *testing.T) {
	existing, err := jsondoc.Parse([]byte(`{"models": [{"id": "stale", "name": "  "}]}`))
	require.NoError(t, err)

	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	entry, err := Merge(existing, res, "sk")
	require.NoError(t, err)

	slot := entry.GetArray("models")[0].(*jsondoc.Object)
	assert.Equal(t, "Kimi K2", slot.GetString("name"))
}

func TestMergePreservesUnknownEntryFields(t *testing.T) {
	existing, err := jsondoc.Parse([]byte(`{
		"note": "hand edited",
		"baseUrl": "https://stale.example/v1",
		"timeoutMs": 30000,
		"apiKey": "old-key",
		"headers": {"X-Custom": "1"}
	}`))
	require.NoError(t, err)

	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	entry, err := Merge(existing, res, "sk-new")
	require.NoError(t, err)

	// Owned fields overwritten.
	assert.Equal(t, "https://api.moonshot.ai/v1", entry.GetString("baseUrl"))
	assert.Equal(t, "sk-new", entry.GetString("apiKey"))

	// Everything else survives, including nesting.
	assert.Equal(t, "hand edited", entry.GetString("note"))
	assert.Equal(t, 30000, entry.GetInt("timeoutMs"))
	assert.Equal(t, "1", entry.GetObject("headers").GetString("X-Custom"))

	// Overwritten keys keep their stored position.
	assert.Equal(t, "note", entry.Keys()[0])
	assert.Equal(t, "baseUrl", entry.Keys()[1])
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	existing, err := jsondoc.Parse([]byte(`{"apiKey": "old", "models": [{"id": "m1"}]}`))
	require.NoError(t, err)

	res, err := Resolve(testRegistry(t), "kimi", Options{})
	require.NoError(t, err)

	_, err = Merge(existing, res, "sk-new")
	require.NoError(t, err)

	assert.Equal(t, "old", existing.GetString("apiKey"))
	assert.Equal(t, "m1", existing.GetArray("models")[0].(*jsondoc.Object).GetString("id"))
}

// --- EntryFromDocument Tests ---

func TestEntryFromDocument(t *testing.T) {
	doc, err := jsondoc.Parse([]byte(`{
		"baseUrl": "https://api.moonshot.ai/v1",
		"api": "openai-chat-completions",
		"apiKey": "sk-9",
		"authHeader": true,
		"models": [
			{"id": "kimi-k2-thinking", "name": "Kimi K2", "reasoning": true,
			 "input": ["text"], "contextWindow": 262144, "maxTokens": 262144,
			 "cost": {"input": 0.6, "output": 2.5, "cacheRead": 0.15, "cacheWrite": 0}}
		]
	}`))
	require.NoError(t, err)

	e := EntryFromDocument(doc)
	assert.Equal(t, "https://api.moonshot.ai/v1", e.BaseURL)
	assert.Equal(t, "openai-chat-completions", e.API)
	assert.Equal(t, "sk-9", e.APIKey)
	assert.True(t, e.AuthHeader)
	require.Len(t, e.Models, 1)

	m := e.Models[0]
	assert.Equal(t, "kimi-k2-thinking", m.ID)
	assert.Equal(t, []string{"text"}, m.Input)
	assert.Equal(t, 262144, m.ContextWindow)
	assert.Equal(t, 0.6, m.Cost.Input)
	assert.Equal(t, 0.15, m.Cost.CacheRead)
}

func TestEntryFromDocumentNil(t *testing.T) {
	e := EntryFromDocument(nil)
	assert.Empty(t, e.APIKey)
	assert.Empty(t, e.Models)
}
