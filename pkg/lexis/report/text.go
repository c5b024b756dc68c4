package report

import (
	"fmt"
	"io"
)

// printer remembers the first write error so the report code can stay
// linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteText renders the console report: one block per document, then the
// corpus summary and the similarity analysis.
func WriteText(w io.Writer, s Summary) error {
	p := &printer{w: w}

	for _, d := range s.Documents {
		p.printf("Song: %s\n", d.Name)
		p.printf("Total words: %d\n", d.TotalWords)
		p.printf("Unique words: %d\n", d.UniqueWords)
		p.printf("Words found in dictionary: %d (%.2f%%)\n", d.Found, d.FoundPercent)
		p.printf("New words (not in dictionary): %d (%.2f%%)\n", d.New, d.NewPercent)
		p.printf("---\n")
	}

	p.printf("--- Final Summary ---\n")
	p.printf("Total songs processed: %d\n", s.TotalDocuments)
	if len(s.Skipped) > 0 {
		p.printf("Songs skipped (unreadable): %d\n", len(s.Skipped))
	}
	p.printf("Total unique words across all songs: %d\n", s.TotalUnique)
	p.printf("Total words found in dictionary: %d (%.2f%%)\n", s.Found, s.FoundPercent)
	p.printf("Total new words (not in dictionary): %d (%.2f%%)\n", s.New, s.NewPercent)
	p.printf("Percentage of dictionary words used: %.2f%%\n", s.DictionaryCoverage)

	if s.LongestKnown != nil {
		p.printf("Longest dictionary word: \"%s\" (%d characters)\n", s.LongestKnown.Word, s.LongestKnown.Length)
	} else {
		p.printf("Longest dictionary word: n/a\n")
	}
	if s.MostFrequent != nil {
		p.printf("Most repeated word: \"%s\" (repeated %d times)\n", s.MostFrequent.Word, s.MostFrequent.Count)
	} else {
		p.printf("Most repeated word: n/a\n")
	}

	docLine(p, "Song with most total words", s.MostWords)
	docLine(p, "Song with least total words", s.LeastWords)
	docLine(p, "Song with most unique words", s.MostUnique)
	docLine(p, "Song with least unique words", s.LeastUnique)

	p.printf("Average total words per song: %.2f\n", s.AverageWords)
	p.printf("Average unique words per song: %.2f\n", s.AverageUnique)

	p.printf("\nSong Similarity Analysis:\n")
	sim := s.Similarity
	scoreLine(p, "Most similar songs (Jaccard)", sim.MostJaccard)
	scoreLine(p, "Least similar songs (Jaccard)", sim.LeastJaccard)
	scoreLine(p, "Most similar songs (Cosine)", sim.MostCosine)
	scoreLine(p, "Least similar songs (Cosine)", sim.LeastCosine)
	sharedLine(p, "Songs with most similar words", sim.MostShared)
	sharedLine(p, "Songs with least similar words", sim.LeastShared)
	p.printf("---\n")

	return p.err
}

// WriteSaved prints the confirmation line for a written output file.
func WriteSaved(w io.Writer, label, path string) error {
	_, err := fmt.Fprintf(w, "%s saved to %s\n", label, path)
	return err
}

func docLine(p *printer, label string, dc *DocCount) {
	if dc == nil {
		p.printf("%s: n/a\n", label)
		return
	}
	p.printf("%s: \"%s\" (%d words)\n", label, dc.Name, dc.Count)
}

func scoreLine(p *printer, label string, pl *PairLine) {
	if pl == nil {
		p.printf("%s: n/a\n", label)
		return
	}
	p.printf("%s: \"%s\" and \"%s\" (similarity: %.4f)\n", label, pl.A, pl.B, pl.Score)
}

func sharedLine(p *printer, label string, pl *PairLine) {
	if pl == nil {
		p.printf("%s: n/a\n", label)
		return
	}
	p.printf("%s: \"%s\" and \"%s\" (%d common words)\n", label, pl.A, pl.B, int(pl.Score))
}
