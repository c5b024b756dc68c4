// Package analytics computes per-document and corpus-wide lexical statistics
// and pairwise document similarity.
package analytics

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/lexis/pkg/lexis/dictionary"
)

// TokenSet is a set of normalized tokens.
type TokenSet map[string]struct{}

// Len returns the set size.
func (s TokenSet) Len() int { return len(s) }

// Has reports membership.
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func (s TokenSet) addAll(other TokenSet) {
	for tok := range other {
		s[tok] = struct{}{}
	}
}

// DocumentStats is the immutable per-document record.
type DocumentStats struct {
	Name         string
	TotalWords   int
	Unique       TokenSet
	Frequencies  map[string]int
	Known        TokenSet // unique tokens present in the dictionary
	New          TokenSet // unique tokens absent from the dictionary
	LongestKnown string   // longest known token, empty if none

	// order holds unique tokens in first-occurrence order.
	order []string
}

// Analyze builds the stats of one document from its token sequence.
func Analyze(name string, tokens []string, dict *dictionary.Dictionary) DocumentStats {
	ds := DocumentStats{
		Name:        name,
		TotalWords:  len(tokens),
		Unique:      make(TokenSet),
		Frequencies: make(map[string]int),
		Known:       make(TokenSet),
		New:         make(TokenSet),
	}
	for _, tok := range tokens {
		if _, seen := ds.Frequencies[tok]; !seen {
			ds.order = append(ds.order, tok)
			ds.Unique[tok] = struct{}{}
			if dict.Contains(tok) {
				ds.Known[tok] = struct{}{}
				ds.LongestKnown = longer(ds.LongestKnown, tok)
			} else {
				ds.New[tok] = struct{}{}
			}
		}
		ds.Frequencies[tok]++
	}
	return ds
}

// longer picks the word with more runes; equal lengths resolve to the
// lexicographically smaller word.
func longer(current, candidate string) string {
	if current == "" {
		return candidate
	}
	lc, ln := utf8.RuneCountInString(current), utf8.RuneCountInString(candidate)
	if ln > lc || (ln == lc && candidate < current) {
		return candidate
	}
	return current
}

// tokenOrder returns unique tokens in first-occurrence order. Stats built
// outside Analyze have no recorded order and fall back to sorted tokens.
func (d DocumentStats) tokenOrder() []string {
	if len(d.order) == len(d.Frequencies) {
		return d.order
	}
	order := make([]string, 0, len(d.Frequencies))
	for tok := range d.Frequencies {
		order = append(order, tok)
	}
	sort.Strings(order)
	return order
}

// UniqueWords returns the number of distinct tokens.
func (d DocumentStats) UniqueWords() int { return len(d.Unique) }

// FoundPercent is the share of unique tokens found in the dictionary.
func (d DocumentStats) FoundPercent() float64 {
	return percent(len(d.Known), len(d.Unique))
}

// NewPercent is the share of unique tokens absent from the dictionary.
func (d DocumentStats) NewPercent() float64 {
	return percent(len(d.New), len(d.Unique))
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
