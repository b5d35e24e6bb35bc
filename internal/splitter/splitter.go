// Package splitter handles filename splitting and prefix extraction for prefixsub.
package splitter

import (
	"path/filepath"
	"strings"
)

// Split splits the base name of fileName on every literal occurrence of delimiter.
// The match is exact and case-sensitive. If delimiter does not occur in the
// name, or is empty, the result holds the whole name as its only segment.
func Split(fileName, delimiter string) []string {
	name := filepath.Base(fileName)
	if delimiter == "" {
		return []string{name}
	}
	return strings.Split(name, delimiter)
}

// Prefix returns the first segment, or an empty string when there are none.
func Prefix(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

// Key returns the grouping key for a prefix.
// Keys compare case-insensitively and are never shown to the user.
func Key(prefix string) string {
	return strings.ToLower(prefix)
}

// Join rebuilds a filename from segments[start:], separating every retained
// segment with delimiter. Segments are opaque: content that happens to contain
// the delimiter is not escaped.
func Join(segments []string, delimiter string, start int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(segments) {
		return ""
	}
	return strings.Join(segments[start:], delimiter)
}

// HasPrefix reports whether the name splits into more than one segment,
// i.e. whether it carries a prefix that can be grouped on.
func HasPrefix(fileName, delimiter string) bool {
	return len(Split(fileName, delimiter)) > 1
}
