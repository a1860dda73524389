package planner

import "strings"

// StripCodeFences removes Markdown code-fence wrapping from raw model
// output. Models occasionally wrap the JSON in ``` delimiters despite the
// schema-only instruction.
func StripCodeFences(raw string) string {
	cleaned := raw
	// Drop the first "```json" marker regardless of case, then any bare
	// fences.
	lower := strings.ToLower(cleaned)
	if idx := strings.Index(lower, "```json"); idx >= 0 {
		cleaned = cleaned[:idx] + cleaned[idx+len("```json"):]
	}
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
