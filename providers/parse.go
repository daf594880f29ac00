package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/glyphgen/glyphgen"
)

// BuildUserMessage combines the query with optional project context.
func BuildUserMessage(query string, sctx *glyphgen.SuggestContext) string {
	if sctx == nil || (sctx.ProjectType == "" && sctx.DesignStyle == "") {
		return query
	}
	extra, err := json.MarshalIndent(sctx, "", "  ")
	if err != nil {
		return query
	}
	return query + "\n\nAdditional context: " + string(extra)
}

// ParseSuggestions decodes a model reply into a SuggestResponse.
// Markdown code fences around the JSON are tolerated. When the reply is
// not valid JSON the raw text is wrapped into a single low-confidence
// suggestion so callers still get something usable.
func ParseSuggestions(query, raw string) (*glyphgen.SuggestResponse, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response from provider")
	}

	var response glyphgen.SuggestResponse
	if err := json.Unmarshal([]byte(cleaned), &response); err == nil {
		return &response, nil
	}

	// Text fallback: not JSON, but still potentially useful output.
	return &glyphgen.SuggestResponse{
		SearchQuery: query,
		Explanation: "Provider returned unstructured text.",
		Suggestions: []glyphgen.IconSuggestion{
			{
				IconName:   "",
				Reason:     strings.TrimSpace(raw),
				Confidence: 0.1,
			},
		},
	}, nil
}

// stripCodeFences removes a surrounding ```json ... ``` (or plain ```)
// block if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
