package providers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/glyphgen/glyphgen"
)

// ErrNoActiveProvider is returned when a command requires an AI
// provider but none is both compiled in and configured.
var ErrNoActiveProvider = errors.New("no active AI provider")

// Snapshot is a read-only view of provider availability: which
// providers are compiled in and which environment variables are set.
// Building the snapshot explicitly keeps resolution deterministic and
// testable without touching the process environment.
type Snapshot struct {
	Installed map[string]bool
	Env       map[string]string
}

// CurrentSnapshot captures the live registry and environment. It is
// recomputed on every call; availability is never cached.
func CurrentSnapshot() Snapshot {
	installed := make(map[string]bool)
	for _, id := range Registered() {
		installed[id] = true
	}
	env := make(map[string]string)
	for _, spec := range specs {
		env[spec.EnvVar] = os.Getenv(spec.EnvVar)
	}
	return Snapshot{Installed: installed, Env: env}
}

// IsInstalled reports whether the provider implementation is compiled
// into this binary. It never fails: unknown IDs are simply not installed.
func (s Snapshot) IsInstalled(id string) bool {
	return s.Installed[id]
}

func (s Snapshot) configured(spec Spec) bool {
	return strings.TrimSpace(s.Env[spec.EnvVar]) != ""
}

// ResolveActive returns the first provider in priority order that is
// both installed and configured, or nil when there is no candidate.
func ResolveActive(snap Snapshot) *Spec {
	for _, spec := range specs {
		if snap.IsInstalled(spec.ID) && snap.configured(spec) {
			active := spec
			return &active
		}
	}
	return nil
}

// Status classifies provider availability into exactly one of three states.
type Status int

const (
	// StatusNoExtras means no provider implementation is compiled in.
	StatusNoExtras Status = iota

	// StatusNoKey means at least one provider is compiled in but none
	// has its API key configured.
	StatusNoKey

	// StatusActive means a provider is selected and ready.
	StatusActive
)

// Report is the result of classifying a snapshot. Active is non-nil
// exactly when Status is StatusActive.
type Report struct {
	Status Status
	Active *Spec
}

// Classify derives the provider status from a snapshot. The three
// states are exhaustive and mutually exclusive.
func Classify(snap Snapshot) Report {
	anyInstalled := false
	for _, spec := range specs {
		if snap.IsInstalled(spec.ID) {
			anyInstalled = true
			break
		}
	}
	if !anyInstalled {
		return Report{Status: StatusNoExtras}
	}
	if active := ResolveActive(snap); active != nil {
		return Report{Status: StatusActive, Active: active}
	}
	return Report{Status: StatusNoKey}
}

// Message renders the canonical user-facing text for this report.
// Every command that surfaces provider status must print this exact
// text so the guidance stays consistent across the CLI.
func (r Report) Message() string {
	switch r.Status {
	case StatusActive:
		return fmt.Sprintf("Active provider: %s (%s)", r.Active.DisplayName, r.Active.DefaultModel)
	case StatusNoKey:
		var b strings.Builder
		b.WriteString("No AI provider is configured. Set an API key for one of:\n\n")
		width := 0
		for _, spec := range Display() {
			if len(spec.EnvVar) > width {
				width = len(spec.EnvVar)
			}
		}
		for _, spec := range Display() {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, spec.EnvVar, spec.DisplayName)
		}
		b.WriteString("\nKeys can be set as environment variables or in a local .env file.")
		return b.String()
	default:
		return "AI features are not included in this build.\n\n" +
			"First, rebuild glyphgen without the \"noai\" build tag so the AI\n" +
			"providers are compiled in. Then configure an API key for one of\n" +
			"the providers."
	}
}

// NewActive resolves the active provider for the snapshot and
// instantiates it with the API key from the snapshot environment.
func NewActive(snap Snapshot) (glyphgen.SuggestionProvider, error) {
	spec := ResolveActive(snap)
	if spec == nil {
		return nil, ErrNoActiveProvider
	}
	factory, ok := defaultRegistry.factory(spec.ID)
	if !ok {
		return nil, ErrNoActiveProvider
	}
	provider, err := factory(snap.Env[spec.EnvVar])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", spec.ID, err)
	}
	return provider, nil
}
