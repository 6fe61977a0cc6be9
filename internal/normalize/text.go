package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchText returns the search variant of card text: clarification markers
// removed, accents folded, whitespace collapsed and lower-cased.
func SearchText(text string) string {
	text = clarificationMarkers.Replace(text)

	// A transform chain is stateful, build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, text); err == nil {
		text = folded
	}
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
