// Package lifecycle orchestrates the detect/load/unload cycle for one
// managed provider entry inside one configuration document.
//
// Every operation is a full read-modify-write pass: the document is re-read
// from disk each time, so edits made between calls by the owning tool or
// the user are respected. No file locking is taken; concurrent writers are
// last-write-wins.
package lifecycle

import (
	"github.com/halden/agentwire/internal/confstore"
	"github.com/halden/agentwire/internal/jsondoc"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/registry"
)

const keyProviders = "providers"

// Detection is the result of probing a stored configuration. The zero value
// means "nothing configured": an absent entry and a disabled one (entry
// present, apiKey blanked) both report it.
type Detection struct {
	// Plan is the hosting variant classified from the stored base URL, or
	// the identity id itself for native hosting. Empty when not configured.
	Plan string

	// APIKey is the stored key.
	APIKey string

	// Model is the configured model id (the first stored model), when
	// present.
	Model string
}

// Configured reports whether a usable configuration was found.
func (d Detection) Configured() bool {
	return d.APIKey != ""
}

// Lifecycle manages one provider identity's entry in one document.
type Lifecycle struct {
	store    *confstore.Store
	reg      *registry.Registry
	identity string
}

// New creates a lifecycle for the given store, registry and provider
// identity.
func New(store *confstore.Store, reg *registry.Registry, identity string) *Lifecycle {
	return &Lifecycle{store: store, reg: reg, identity: identity}
}

// Store returns the underlying document store.
func (l *Lifecycle) Store() *confstore.Store {
	return l.store
}

// Detect probes the stored configuration. It is a best-effort display probe
// and never fails: a missing, malformed or shapeless document reports as
// not configured.
func (l *Lifecycle) Detect() Detection {
	doc, err := l.store.Read()
	if err != nil {
		return Detection{}
	}
	entryDoc := providerEntry(doc, l.identity)
	if entryDoc == nil {
		return Detection{}
	}

	entry := provider.EntryFromDocument(entryDoc)
	if entry.APIKey == "" {
		return Detection{}
	}

	d := Detection{APIKey: entry.APIKey}
	d.Plan = l.ClassifyPlan(entry.BaseURL)
	if len(entry.Models) > 0 {
		d.Model = entry.Models[0].ID
	}
	return d
}

// ClassifyPlan maps a stored base URL to a plan name: the variant name when
// a known hosting fragment matches, the identity id for native hosting.
func (l *Lifecycle) ClassifyPlan(baseURL string) string {
	return ClassifyPlan(l.reg, l.identity, baseURL)
}

// ClassifyPlan is the standalone form used by managers that keep their
// provider state outside a lifecycle-managed document.
func ClassifyPlan(reg *registry.Registry, identity, baseURL string) string {
	source := reg.Classify(identity, baseURL)
	if source == registry.SourceNative {
		return identity
	}
	return string(source)
}

// Load resolves the provider facts, merges them into the stored document
// and writes it back. Exactly one write happens on success; validation and
// parse failures surface before any write.
func (l *Lifecycle) Load(apiKey string, opts provider.Options) error {
	res, err := provider.Resolve(l.reg, l.identity, opts)
	if err != nil {
		return err
	}

	doc, err := l.store.Read()
	if err != nil {
		return err
	}

	entry, err := provider.Merge(providerEntry(doc, l.identity), res, apiKey)
	if err != nil {
		return err
	}

	doc.EnsureObject(keyProviders).Set(l.identity, entry)
	return l.store.Write(doc)
}

// Unload blanks the stored API key while leaving the rest of the entry
// intact, so a later Load finds the user's model customizations where it
// left them. An absent file or entry is a no-op: unload never creates a
// file.
func (l *Lifecycle) Unload() error {
	if !l.store.Exists() {
		return nil
	}
	doc, err := l.store.Read()
	if err != nil {
		return err
	}
	entryDoc := providerEntry(doc, l.identity)
	if entryDoc == nil {
		return nil
	}

	entryDoc.Set("apiKey", "")
	return l.store.Write(doc)
}

func providerEntry(doc *jsondoc.Object, identity string) *jsondoc.Object {
	providers := doc.GetObject(keyProviders)
	if providers == nil {
		return nil
	}
	return providers.GetObject(identity)
}
