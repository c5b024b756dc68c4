package ingest

import (
	"strings"
	"unicode"
)

// punctuation is the ASCII punctuation set stripped before splitting.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctuationStripper = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(punctuation))
	for _, r := range punctuation {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}()

// Tokenize removes punctuation, lower-cases, and splits on whitespace.
// Punctuation inside a word joins its halves: "don't" becomes "dont".
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(punctuationStripper.Replace(text)), isSeparator)
}

// isSeparator is unicode.IsSpace plus the ASCII information separators
// U+001C..U+001F.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
