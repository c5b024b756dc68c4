package analytics

import (
	"unicode/utf8"

	"github.com/cognicore/lexis/pkg/lexis/dictionary"
)

// TokenCount pairs a token with its corpus-wide count.
type TokenCount struct {
	Token string
	Count int
}

// DocumentCount pairs a document name with a word count.
type DocumentCount struct {
	Name  string
	Count int
}

// SkippedDocument is a document excluded from aggregation.
type SkippedDocument struct {
	Name string
	Err  error
}

// CorpusStats is the aggregate over every analyzed document.
type CorpusStats struct {
	TotalDocuments int
	DictionarySize int

	Unique      TokenSet
	Known       TokenSet
	New         TokenSet
	Frequencies map[string]int

	LongestKnown string
	MostFrequent TokenCount

	MostWords   DocumentCount
	LeastWords  DocumentCount
	MostUnique  DocumentCount
	LeastUnique DocumentCount

	AverageWords  float64
	AverageUnique float64

	// FoundPercent and NewPercent are relative to the corpus vocabulary.
	FoundPercent float64
	NewPercent   float64
	// DictionaryCoverage is the share of the dictionary used by the corpus.
	DictionaryCoverage float64

	Skipped []SkippedDocument
}

// HasDocuments reports whether any document was aggregated. Extremes are
// only meaningful when it returns true.
func (c CorpusStats) HasDocuments() bool { return c.TotalDocuments > 0 }

// HasTokens reports whether MostFrequent is meaningful.
func (c CorpusStats) HasTokens() bool { return c.MostFrequent.Count > 0 }

// Aggregator folds DocumentStats into CorpusStats. One aggregator serves a
// single run; it is not safe for concurrent use.
type Aggregator struct {
	dictSize int

	docs    []DocumentStats
	skipped []SkippedDocument

	unique      TokenSet
	known       TokenSet
	newWords    TokenSet
	frequencies map[string]int
	firstSeen   []string // corpus tokens in first-occurrence order
	longest     string
	totalWords  int
	totalUnique int
}

// NewAggregator creates an empty aggregator for the given dictionary.
func NewAggregator(dict *dictionary.Dictionary) *Aggregator {
	return &Aggregator{
		dictSize:    dict.Len(),
		unique:      make(TokenSet),
		known:       make(TokenSet),
		newWords:    make(TokenSet),
		frequencies: make(map[string]int),
	}
}

// Add folds one document. Documents must be added in a stable order; ties
// in every extremal statistic go to the earliest added document.
func (a *Aggregator) Add(ds DocumentStats) {
	a.docs = append(a.docs, ds)
	a.unique.addAll(ds.Unique)
	a.known.addAll(ds.Known)
	a.newWords.addAll(ds.New)

	for _, tok := range ds.tokenOrder() {
		if _, seen := a.frequencies[tok]; !seen {
			a.firstSeen = append(a.firstSeen, tok)
		}
		a.frequencies[tok] += ds.Frequencies[tok]
	}

	if utf8.RuneCountInString(ds.LongestKnown) > utf8.RuneCountInString(a.longest) {
		a.longest = ds.LongestKnown
	}
	a.totalWords += ds.TotalWords
	a.totalUnique += ds.UniqueWords()
}

// Skip records a document that could not be analyzed.
func (a *Aggregator) Skip(name string, err error) {
	a.skipped = append(a.skipped, SkippedDocument{Name: name, Err: err})
}

// Documents returns the added documents in insertion order.
func (a *Aggregator) Documents() []DocumentStats {
	out := make([]DocumentStats, len(a.docs))
	copy(out, a.docs)
	return out
}

// Result computes the corpus statistics from everything added so far.
func (a *Aggregator) Result() CorpusStats {
	n := len(a.docs)
	cs := CorpusStats{
		TotalDocuments: n,
		DictionarySize: a.dictSize,
		Unique:         copySet(a.unique),
		Known:          copySet(a.known),
		New:            copySet(a.newWords),
		Frequencies:    make(map[string]int, len(a.frequencies)),
		LongestKnown:   a.longest,
		Skipped:        append([]SkippedDocument(nil), a.skipped...),
	}
	for tok, c := range a.frequencies {
		cs.Frequencies[tok] = c
	}

	for _, tok := range a.firstSeen {
		if c := a.frequencies[tok]; c > cs.MostFrequent.Count {
			cs.MostFrequent = TokenCount{Token: tok, Count: c}
		}
	}

	if n > 0 {
		first := a.docs[0]
		cs.MostWords = DocumentCount{first.Name, first.TotalWords}
		cs.LeastWords = cs.MostWords
		cs.MostUnique = DocumentCount{first.Name, first.UniqueWords()}
		cs.LeastUnique = cs.MostUnique
		for _, d := range a.docs[1:] {
			if d.TotalWords > cs.MostWords.Count {
				cs.MostWords = DocumentCount{d.Name, d.TotalWords}
			}
			if d.TotalWords < cs.LeastWords.Count {
				cs.LeastWords = DocumentCount{d.Name, d.TotalWords}
			}
			if u := d.UniqueWords(); u > cs.MostUnique.Count {
				cs.MostUnique = DocumentCount{d.Name, u}
			}
			if u := d.UniqueWords(); u < cs.LeastUnique.Count {
				cs.LeastUnique = DocumentCount{d.Name, u}
			}
		}
		cs.AverageWords = float64(a.totalWords) / float64(n)
		cs.AverageUnique = float64(a.totalUnique) / float64(n)
	}

	cs.FoundPercent = percent(len(a.known), len(a.unique))
	cs.NewPercent = percent(len(a.newWords), len(a.unique))
	cs.DictionaryCoverage = percent(len(a.known), a.dictSize)
	return cs
}

func copySet(s TokenSet) TokenSet {
	out := make(TokenSet, len(s))
	out.addAll(s)
	return out
}
