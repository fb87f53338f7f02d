// Package match implements text normalization and approximate string
// matching for lab item names.
package match

import "strings"

// stripped is the fixed set of punctuation and separator characters removed
// during normalization. These show up in OCR output and vendor catalogs
// interchangeably (e.g. "T-BIL", "T.BIL", "T BIL").
const stripped = "* _-()[]./"

// Normalize canonicalizes a raw item name for comparison: uppercase, strip
// separators, then strip a trailing run of digits (instrument channel
// suffixes such as "_V100"). Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToUpper(text) {
		if strings.ContainsRune(stripped, r) {
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()

	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	// An all-digit name is kept as-is rather than reduced to nothing.
	if end == 0 {
		return s
	}
	return s[:end]
}
