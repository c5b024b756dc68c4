// Package report renders corpus statistics for people (console text) and
// for machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cognicore/lexis/pkg/lexis/analytics"
)

// DocumentLine is the per-document block of the report.
type DocumentLine struct {
	Name         string  `json:"name"`
	TotalWords   int     `json:"total_words"`
	UniqueWords  int     `json:"unique_words"`
	Found        int     `json:"found"`
	FoundPercent float64 `json:"found_percent"`
	New          int     `json:"new"`
	NewPercent   float64 `json:"new_percent"`
}

// WordLength is a word and its length in characters.
type WordLength struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DocCount is a document and a word count.
type DocCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PairLine is one reported document pair.
type PairLine struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// Similarity holds the extreme pairs per metric. Nil entries mean there
// was no pair to report.
type Similarity struct {
	PairsScored  int       `json:"pairs_scored"`
	MostJaccard  *PairLine `json:"most_jaccard,omitempty"`
	LeastJaccard *PairLine `json:"least_jaccard,omitempty"`
	MostCosine   *PairLine `json:"most_cosine,omitempty"`
	LeastCosine  *PairLine `json:"least_cosine,omitempty"`
	MostShared   *PairLine `json:"most_shared,omitempty"`
	LeastShared  *PairLine `json:"least_shared,omitempty"`
}

// Summary is the full report model.
type Summary struct {
	RunID              string         `json:"run_id,omitempty"`
	Documents          []DocumentLine `json:"documents"`
	TotalDocuments     int            `json:"total_documents"`
	Skipped            []string       `json:"skipped,omitempty"`
	TotalUnique        int            `json:"total_unique_words"`
	Found              int            `json:"found"`
	FoundPercent       float64        `json:"found_percent"`
	New                int            `json:"new"`
	NewPercent         float64        `json:"new_percent"`
	DictionaryCoverage float64        `json:"dictionary_coverage_percent"`
	LongestKnown       *WordLength    `json:"longest_dictionary_word,omitempty"`
	MostFrequent       *WordCount     `json:"most_frequent_word,omitempty"`
	MostWords          *DocCount      `json:"most_total_words,omitempty"`
	LeastWords         *DocCount      `json:"least_total_words,omitempty"`
	MostUnique         *DocCount      `json:"most_unique_words,omitempty"`
	LeastUnique        *DocCount      `json:"least_unique_words,omitempty"`
	AverageWords       float64        `json:"average_total_words"`
	AverageUnique      float64        `json:"average_unique_words"`
	Similarity         Similarity     `json:"similarity"`
}

// Build assembles the report model from analysis results.
func Build(docs []analytics.DocumentStats, cs analytics.CorpusStats, m *analytics.Matrix) Summary {
	s := Summary{
		Documents:          make([]DocumentLine, 0, len(docs)),
		TotalDocuments:     cs.TotalDocuments,
		TotalUnique:        cs.Unique.Len(),
		Found:              cs.Known.Len(),
		FoundPercent:       cs.FoundPercent,
		New:                cs.New.Len(),
		NewPercent:         cs.NewPercent,
		DictionaryCoverage: cs.DictionaryCoverage,
		AverageWords:       cs.AverageWords,
		AverageUnique:      cs.AverageUnique,
	}
	for _, d := range docs {
		s.Documents = append(s.Documents, DocumentLine{
			Name:         d.Name,
			TotalWords:   d.TotalWords,
			UniqueWords:  d.UniqueWords(),
			Found:        d.Known.Len(),
			FoundPercent: d.FoundPercent(),
			New:          d.New.Len(),
			NewPercent:   d.NewPercent(),
		})
	}
	for _, sk := range cs.Skipped {
		s.Skipped = append(s.Skipped, sk.Name)
	}
	if cs.LongestKnown != "" {
		s.LongestKnown = &WordLength{Word: cs.LongestKnown, Length: utf8.RuneCountInString(cs.LongestKnown)}
	}
	if cs.HasTokens() {
		s.MostFrequent = &WordCount{Word: cs.MostFrequent.Token, Count: cs.MostFrequent.Count}
	}
	if cs.HasDocuments() {
		s.MostWords = docCount(cs.MostWords)
		s.LeastWords = docCount(cs.LeastWords)
		s.MostUnique = docCount(cs.MostUnique)
		s.LeastUnique = docCount(cs.LeastUnique)
	}

	s.Similarity = Similarity{
		PairsScored:  m.Len(),
		MostJaccard:  extreme(m, analytics.MetricJaccard, true),
		LeastJaccard: extreme(m, analytics.MetricJaccard, false),
		MostCosine:   extreme(m, analytics.MetricCosine, true),
		LeastCosine:  extreme(m, analytics.MetricCosine, false),
		MostShared:   extreme(m, analytics.MetricShared, true),
		LeastShared:  extreme(m, analytics.MetricShared, false),
	}
	return s
}

func docCount(dc analytics.DocumentCount) *DocCount {
	return &DocCount{Name: dc.Name, Count: dc.Count}
}

func extreme(m *analytics.Matrix, metric analytics.Metric, most bool) *PairLine {
	var (
		p  analytics.PairScore
		ok bool
	)
	if most {
		p, ok = m.Most(metric)
	} else {
		p, ok = m.Least(metric)
	}
	if !ok {
		return nil
	}
	return &PairLine{A: p.A, B: p.B, Score: p.Score(metric)}
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
