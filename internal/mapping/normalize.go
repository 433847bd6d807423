package mapping

import "strings"

// Normalize reduces a free-text label to a comparison key: lowercased,
// whitespace, underscores and hyphens removed, then every remaining
// character outside [a-z0-9] dropped. Total function; empty input yields
// an empty key.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
