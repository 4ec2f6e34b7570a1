package utils

import "strings"

// SplitList parses a comma separated value, trimming spaces and surrounding quotes.
// Empty entries are dropped.
// Example: ` a, "b" ,, 'c'` -> ["a", "b", "c"]
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
