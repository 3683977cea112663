// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code-fence markers from a model response.
// Models wrap JSON in ```json ... ``` blocks even when instructed not to, and
// sometimes with extra whitespace or more than one marker, so every fence
// occurrence is removed rather than only a leading/trailing match.
func CleanJSONBlock(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
