package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var allIDs = []string{"openai", "anthropic", "huggingface"}

// subsets enumerates every subset of allIDs.
func subsets() [][]string {
	var result [][]string
	for mask := 0; mask < 1<<len(allIDs); mask++ {
		var subset []string
		for i, id := range allIDs {
			if mask&(1<<i) != 0 {
				subset = append(subset, id)
			}
		}
		result = append(result, subset)
	}
	return result
}

func snapshotFor(installed, configured []string) Snapshot {
	snap := Snapshot{
		Installed: make(map[string]bool),
		Env:       make(map[string]string),
	}
	for _, id := range installed {
		snap.Installed[id] = true
	}
	for _, id := range configured {
		spec, ok := Lookup(id)
		if ok {
			snap.Env[spec.EnvVar] = "test-key"
		}
	}
	return snap
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// TestResolveActiveProperty checks that for every combination of
// installed and configured providers, the active provider is the
// highest-priority member of the intersection, or nil when the
// intersection is empty.
func TestResolveActiveProperty(t *testing.T) {
	for _, installed := range subsets() {
		for _, configured := range subsets() {
			snap := snapshotFor(installed, configured)
			active := ResolveActive(snap)

			var want string
			for _, spec := range Priority() {
				if contains(installed, spec.ID) && contains(configured, spec.ID) {
					want = spec.ID
					break
				}
			}

			if want == "" {
				require.Nil(t, active, "installed=%v configured=%v", installed, configured)
			} else {
				require.NotNil(t, active, "installed=%v configured=%v", installed, configured)
				require.Equal(t, want, active.ID, "installed=%v configured=%v", installed, configured)
			}

			// Determinism: same snapshot, same result.
			again := ResolveActive(snap)
			if active == nil {
				require.Nil(t, again)
			} else {
				require.Equal(t, active.ID, again.ID)
			}
		}
	}
}

// TestClassifyTotalAndExclusive checks the three-way classification is
// exhaustive and mutually exclusive across all snapshots.
func TestClassifyTotalAndExclusive(t *testing.T) {
	for _, installed := range subsets() {
		for _, configured := range subsets() {
			snap := snapshotFor(installed, configured)
			report := Classify(snap)

			switch {
			case len(installed) == 0:
				require.Equal(t, StatusNoExtras, report.Status)
				require.Nil(t, report.Active)
			case ResolveActive(snap) == nil:
				require.Equal(t, StatusNoKey, report.Status)
				require.Nil(t, report.Active)
			default:
				require.Equal(t, StatusActive, report.Status)
				require.NotNil(t, report.Active)
			}
		}
	}
}

func TestClassifyEmptyKeyNotConfigured(t *testing.T) {
	snap := snapshotFor([]string{"openai"}, nil)
	snap.Env["OPENAI_API_KEY"] = "   "
	require.Equal(t, StatusNoKey, Classify(snap).Status)
}

func TestMessageNoExtras(t *testing.T) {
	msg := Report{Status: StatusNoExtras}.Message()
	// Installing the extras and configuring keys are separate steps
	// and the message must present them in order.
	require.Contains(t, msg, "not included in this build")
	first := strings.Index(msg, "First")
	then := strings.Index(msg, "Then configure an API key")
	require.Greater(t, first, -1)
	require.Greater(t, then, first)
}

func TestMessageNoKey(t *testing.T) {
	msg := Report{Status: StatusNoKey}.Message()
	require.Contains(t, msg, "ANTHROPIC_API_KEY")
	require.Contains(t, msg, "HF_TOKEN")
	require.Contains(t, msg, "OPENAI_API_KEY")
	require.Contains(t, msg, "Anthropic")
	require.Contains(t, msg, "Hugging Face")
	require.Contains(t, msg, "OpenAI")
	require.Contains(t, msg, ".env file")

	// Listed in alphabetical env var order.
	a := strings.Index(msg, "ANTHROPIC_API_KEY")
	h := strings.Index(msg, "HF_TOKEN")
	o := strings.Index(msg, "OPENAI_API_KEY")
	require.Less(t, a, h)
	require.Less(t, h, o)
}

func TestMessageActive(t *testing.T) {
	spec, _ := Lookup("openai")
	msg := Report{Status: StatusActive, Active: &spec}.Message()
	require.Contains(t, msg, "OpenAI")
	require.Contains(t, msg, "gpt-4o-mini")
}

func TestNewActiveNoProvider(t *testing.T) {
	snap := snapshotFor(nil, nil)
	_, err := NewActive(snap)
	require.ErrorIs(t, err, ErrNoActiveProvider)
}

func TestCurrentSnapshotReadsEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("HF_TOKEN", "")
	snap := CurrentSnapshot()
	require.Equal(t, "sk-test", snap.Env["OPENAI_API_KEY"])
	require.Equal(t, "", snap.Env["ANTHROPIC_API_KEY"])
}
