// Package glyphgen generates icon assets from the Iconify API, direct
// URLs, and local files, with optional AI-assisted icon discovery.
package glyphgen

import (
	"context"
)

// IconSuggestion is a single icon recommendation returned by a
// suggestion provider. IconName is always a fully qualified Iconify
// reference in "collection:name" form.
type IconSuggestion struct {
	IconName   string      `json:"icon_name"`
	Reason     string      `json:"reason"`
	UseCase    string      `json:"use_case,omitempty"`
	Confidence float64     `json:"confidence,omitempty"`
	Style      *StyleHints `json:"style_suggestions,omitempty"`
}

// StyleHints carries optional styling recommendations attached to a
// suggestion. Zero values mean "no recommendation".
type StyleHints struct {
	Color        string `json:"color,omitempty"`
	Size         int    `json:"size,omitempty"`
	BgColor      string `json:"bg_color,omitempty"`
	BorderRadius int    `json:"border_radius,omitempty"`
}

// SuggestResponse is the parsed result of one discovery query.
type SuggestResponse struct {
	SearchQuery string           `json:"search_query,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
	Suggestions []IconSuggestion `json:"suggestions"`
}

// SuggestContext provides optional project context that providers fold
// into the query to improve suggestions.
type SuggestContext struct {
	ProjectType string `json:"project_type,omitempty"`
	DesignStyle string `json:"design_style,omitempty"`
}

// SuggestionProvider is implemented by each AI provider integration.
// Implementations must be safe for use from a single goroutine and
// must honor context cancellation on SuggestIcons.
type SuggestionProvider interface {
	// Name returns the provider identifier, e.g. "openai".
	Name() string

	// ModelName returns the model this provider instance will query.
	ModelName() string

	// SuggestIcons asks the provider for Iconify icon suggestions
	// matching the given natural language query.
	SuggestIcons(ctx context.Context, query string, sctx *SuggestContext) (*SuggestResponse, error)
}
