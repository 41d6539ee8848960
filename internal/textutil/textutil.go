// Package textutil holds small string helpers for console display.
package textutil

import "strings"

const marker = "..."

// Truncate shortens s for display. Strings within the limit are returned
// unchanged; longer strings are cut so that, including the trailing
// marker, the result is exactly max bytes and never exceeds it.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= len(marker) {
		return marker[:max]
	}
	return s[:max-len(marker)] + marker
}

// Indent prefixes every line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
