package simplesite

import (
	"strings"
	"unicode"
)

// Slugify converts a title to a URL-safe slug.
//
// The transformation rules are:
//   - Uppercase ASCII letters are lowercased
//   - Lowercase letters (a-z) and digits (0-9) are kept as-is
//   - Runs of whitespace become a single hyphen
//   - All other characters are removed
//
// Leading and trailing hyphens never appear in the result. A title with no
// alphanumeric characters yields the empty string; the save pipeline
// substitutes a time-based fallback in that case.
//
// This is a pure function with no side effects.
//
// Example:
//
//	Slugify("Hello World")                  // "hello-world"
//	Slugify("Cloud Computing Trends!!")     // "cloud-computing-trends"
//	Slugify("  Too    Many  Spaces ")       // "too-many-spaces"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	// Fields collapses interior runs and drops leading/trailing separators.
	return strings.Join(strings.Fields(b.String()), "-")
}
