package providers

import (
	"testing"

	"github.com/glyphgen/glyphgen"
	"github.com/stretchr/testify/require"
)

func TestPriorityOrder(t *testing.T) {
	ids := []string{}
	for _, spec := range Priority() {
		ids = append(ids, spec.ID)
	}
	require.Equal(t, []string{"openai", "anthropic", "huggingface"}, ids)
}

func TestDisplayOrder(t *testing.T) {
	// Display ordering is alphabetical by env var, distinct from the
	// selection priority.
	vars := []string{}
	for _, spec := range Display() {
		vars = append(vars, spec.EnvVar)
	}
	require.Equal(t, []string{"ANTHROPIC_API_KEY", "HF_TOKEN", "OPENAI_API_KEY"}, vars)
}

func TestLookup(t *testing.T) {
	spec, ok := Lookup("anthropic")
	require.True(t, ok)
	require.Equal(t, "ANTHROPIC_API_KEY", spec.EnvVar)
	require.Equal(t, "Anthropic", spec.DisplayName)
	require.NotEmpty(t, spec.DefaultModel)

	_, ok = Lookup("gemini")
	require.False(t, ok)
}

func TestRegistryRejectsUnknownID(t *testing.T) {
	r := &Registry{}
	r.Register("gemini", func(apiKey string) (glyphgen.SuggestionProvider, error) {
		return nil, nil
	})
	require.Empty(t, r.Registered())

	r.Register("openai", func(apiKey string) (glyphgen.SuggestionProvider, error) {
		return nil, nil
	})
	require.Equal(t, []string{"openai"}, r.Registered())
}
