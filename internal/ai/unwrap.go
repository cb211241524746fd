package ai

import "strings"

// UnwrapModelJSON strips the markdown code fence the model occasionally
// wraps around its output, even when a JSON response MIME type was
// requested. Input without a fence is returned trimmed and otherwise
// untouched, so unrecognized shapes still reach the JSON parser and fail
// there with a useful error.
func UnwrapModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line (e.g. "json").
		s = s[idx+1:]
	} else {
		// Single-line fenced payload.
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
