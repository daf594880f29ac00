package providers

import (
	"sort"
	"sync"

	"github.com/glyphgen/glyphgen"
)

// Spec describes one known AI provider. The set of specs is fixed at
// compile time; whether a provider is usable depends on it being
// compiled in (registered) and on its environment variable.
type Spec struct {
	ID           string
	EnvVar       string
	DisplayName  string
	DefaultModel string
}

// The known providers, in selection priority order. Do not reorder:
// ResolveActive picks the first installed and configured entry.
var specs = []Spec{
	{
		ID:           "openai",
		EnvVar:       "OPENAI_API_KEY",
		DisplayName:  "OpenAI",
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		EnvVar:       "ANTHROPIC_API_KEY",
		DisplayName:  "Anthropic",
		DefaultModel: "claude-3-5-haiku-latest",
	},
	{
		ID:           "huggingface",
		EnvVar:       "HF_TOKEN",
		DisplayName:  "Hugging Face",
		DefaultModel: "deepseek-ai/DeepSeek-V3.1",
	},
}

// Priority returns the known provider specs in selection priority
// order. The first installed and configured spec wins.
func Priority() []Spec {
	result := make([]Spec, len(specs))
	copy(result, specs)
	return result
}

// Display returns the known provider specs sorted alphabetically by
// environment variable. This ordering is for user-facing listings only
// and is deliberately distinct from the selection priority.
func Display() []Spec {
	result := Priority()
	sort.Slice(result, func(i, j int) bool {
		return result[i].EnvVar < result[j].EnvVar
	})
	return result
}

// Lookup returns the spec for the given provider ID.
func Lookup(id string) (Spec, bool) {
	for _, spec := range specs {
		if spec.ID == id {
			return spec, true
		}
	}
	return Spec{}, false
}

// Factory creates a provider instance configured with the given API key.
type Factory func(apiKey string) (glyphgen.SuggestionProvider, error)

// Registry tracks which provider implementations are compiled into the
// binary. Providers register themselves during init().
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// Register adds a provider factory to the registry. Unknown IDs are
// rejected so a stray registration cannot widen the fixed provider set.
func (r *Registry) Register(id string, factory Factory) {
	if _, ok := Lookup(id); !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[id] = factory
}

// Registered returns the sorted IDs of all compiled-in providers.
func (r *Registry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) factory(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// Global default registry, populated by provider init() functions.
var defaultRegistry = &Registry{}

// Register adds a provider factory to the default registry.
func Register(id string, factory Factory) {
	defaultRegistry.Register(id, factory)
}

// Registered returns the compiled-in provider IDs from the default registry.
func Registered() []string {
	return defaultRegistry.Registered()
}
