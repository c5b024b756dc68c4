// Package lexicon reads and writes flat word lists: one normalized token per
// line, sorted, no duplicates.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Normalize returns the sorted, de-duplicated, non-empty words.
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Write emits the normalized word list to w, one word per line.
func Write(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range Normalize(words) {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the word list to path, replacing any existing file.
func WriteFile(path string, words []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create lexicon %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close lexicon %s: %w", path, cerr)
		}
	}()
	if err := Write(f, words); err != nil {
		return fmt.Errorf("write lexicon %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a word list written by WriteFile. Blank lines are ignored.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}
