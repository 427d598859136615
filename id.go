package texsrc

import (
	"strings"

	"github.com/meigma/texsrc/internal/classify"
)

// SanitizeID converts a document identifier into a file-name-safe stem.
//
// It performs the following transformations:
//   - Trims surrounding whitespace: " 2101.00001 " → "2101.00001"
//   - Keeps ASCII letters, digits, '.', '-' and '_'
//   - Replaces every other rune with '_': "hep-th/9901001" → "hep-th_9901001"
//   - Converts an empty result to "source"
func SanitizeID(id string) string {
	id = strings.TrimSpace(id)
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "source"
	}
	return b.String()
}

// SyntheticName returns the entry name used when a payload holds a single
// source file rather than an archive.
func SyntheticName(id string) string {
	return SanitizeID(id) + classify.PrimaryExtension
}
