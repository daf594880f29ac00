// Package providers defines the AI provider registry, the active
// provider resolution logic, and the shared pieces every suggestion
// provider uses (system prompt, response parsing, API error type).
//
// Provider implementations self-register via init() using [Register].
// A provider is considered installed only when its subpackage is
// compiled into the binary:
//
//   - [github.com/glyphgen/glyphgen/providers/openai] - OpenAI chat models
//   - [github.com/glyphgen/glyphgen/providers/anthropic] - Claude models
//   - [github.com/glyphgen/glyphgen/providers/huggingface] - HF Inference router
package providers
