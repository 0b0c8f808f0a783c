// Package match canonicalizes titles and company names for cross-source
// duplicate detection. Sources disagree on everything cosmetic: legal
// suffixes, bracketed location tags, spacing, truncation.
package match

import (
	"regexp"
	"strings"
)

var (
	legalMarkers = regexp.MustCompile(`\(주\)|주식회사|\(유\)|inc\.|co\.|ltd\.`)
	bracketed    = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	nonWord      = regexp.MustCompile(`[^a-z0-9가-힣]`)
)

// Normalize canonicalizes text for comparison: lower-case, drop corporate
// suffixes, drop bracketed annotations ("[판교]", "(채용시마감)"), then strip
// everything that is not a letter, digit or Hangul. Idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = legalMarkers.ReplaceAllString(text, "")
	text = bracketed.ReplaceAllString(text, "")
	return nonWord.ReplaceAllString(text, "")
}
