//go:build !noai

package cli

// The AI providers register themselves on import. Building with the
// "noai" tag leaves them out entirely, which the providers command and
// search report as "not included in this build".
import (
	_ "github.com/glyphgen/glyphgen/providers/anthropic"
	_ "github.com/glyphgen/glyphgen/providers/huggingface"
	_ "github.com/glyphgen/glyphgen/providers/openai"
)
