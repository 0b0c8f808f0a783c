package match

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// similarityFloor guards the fuzzy path: below 5 runes, short generic titles
// ("신입", "백엔드") collide on ratio far too easily.
const similarityFloor = 5

const similarityThreshold = 0.70

// SameEntity decides whether two already-normalized strings name the same
// thing. Containment handles truncation differences between sources; the
// ratio handles small wording drift. Empty strings never match.
func SameEntity(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if utf8.RuneCountInString(a) < similarityFloor || utf8.RuneCountInString(b) < similarityFloor {
		return false
	}
	return Ratio(a, b) > similarityThreshold
}

// Ratio is the difflib sequence-similarity measure over runes, in [0,1].
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
