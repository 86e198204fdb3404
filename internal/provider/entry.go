// Package provider models the one configuration subtree this program owns
// inside a third-party tool's config file, and implements the merge that
// rewrites it without touching anything else.
package provider

import (
	"encoding/json"
	"strconv"

	"github.com/halden/agentwire/internal/jsondoc"
)

// JSON keys owned by the merge inside a provider entry. Every other key
// found in a stored entry survives the merge verbatim.
const (
	keyBaseURL    = "baseUrl"
	keyAPI        = "api"
	keyAPIKey     = "apiKey"
	keyAuthHeader = "authHeader"
	keyModels     = "models"
)

// Keys of a model descriptor.
const (
	keyModelID       = "id"
	keyModelName     = "name"
	keyReasoning     = "reasoning"
	keyInput         = "input"
	keyContextWindow = "contextWindow"
	keyMaxTokens     = "maxTokens"
	keyCost          = "cost"
)

// Cost holds per-million-token pricing. Synthesized models start at zero.
type Cost struct {
	Input      float64
	Output     float64
	CacheRead  float64
	CacheWrite float64
}

// Model is one model descriptor in a provider entry. The first element of an
// entry's model list is "the configured model": detect and unload read it
// positionally, so list order is meaningful and must be preserved.
type Model struct {
	ID            string
	Name          string
	Reasoning     bool
	Input         []string
	ContextWindow int
	MaxTokens     int
	Cost          Cost
}

// Entry is a typed read of the managed provider sub-document. An empty
// APIKey is the "unloaded" sentinel: the entry and its models persist, but
// detect treats it the same as absent.
type Entry struct {
	BaseURL    string
	API        string
	APIKey     string
	AuthHeader bool
	Models     []Model
}

// EntryFromDocument parses a stored provider sub-document. Fields the
// program does not recognize are simply not represented here; the merge
// operates on the document tree itself, so they are never at risk. A nil
// document yields an empty entry.
func EntryFromDocument(doc *jsondoc.Object) Entry {
	var e Entry
	if doc == nil {
		return e
	}
	e.BaseURL = doc.GetString(keyBaseURL)
	e.API = doc.GetString(keyAPI)
	e.APIKey = doc.GetString(keyAPIKey)
	e.AuthHeader = doc.GetBool(keyAuthHeader)
	for _, m := range doc.GetArray(keyModels) {
		if obj, ok := m.(*jsondoc.Object); ok {
			e.Models = append(e.Models, modelFromDocument(obj))
		}
	}
	return e
}

func modelFromDocument(doc *jsondoc.Object) Model {
	m := Model{
		ID:            doc.GetString(keyModelID),
		Name:          doc.GetString(keyModelName),
		Reasoning:     doc.GetBool(keyReasoning),
		ContextWindow: doc.GetInt(keyContextWindow),
		MaxTokens:     doc.GetInt(keyMaxTokens),
	}
	for _, v := range doc.GetArray(keyInput) {
		if s, ok := v.(string); ok {
			m.Input = append(m.Input, s)
		}
	}
	if cost := doc.GetObject(keyCost); cost != nil {
		m.Cost = Cost{
			Input:      cost.GetFloat("input"),
			Output:     cost.GetFloat("output"),
			CacheRead:  cost.GetFloat("cacheRead"),
			CacheWrite: cost.GetFloat("cacheWrite"),
		}
	}
	return m
}

// Document serializes a model descriptor. Used when the merge synthesizes
// the configured-model slot for an entry with no stored models.
func (m Model) Document() *jsondoc.Object {
	doc := jsondoc.New()
	doc.Set(keyModelID, m.ID)
	doc.Set(keyModelName, m.Name)
	doc.Set(keyReasoning, m.Reasoning)

	input := make([]any, len(m.Input))
	for i, s := range m.Input {
		input[i] = s
	}
	doc.Set(keyInput, input)
	doc.Set(keyContextWindow, intNumber(m.ContextWindow))
	doc.Set(keyMaxTokens, intNumber(m.MaxTokens))

	cost := jsondoc.New()
	cost.Set("input", floatNumber(m.Cost.Input))
	cost.Set("output", floatNumber(m.Cost.Output))
	cost.Set("cacheRead", floatNumber(m.Cost.CacheRead))
	cost.Set("cacheWrite", floatNumber(m.Cost.CacheWrite))
	doc.Set(keyCost, cost)
	return doc
}

func intNumber(i int) json.Number {
	return json.Number(strconv.Itoa(i))
}

func floatNumber(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}
