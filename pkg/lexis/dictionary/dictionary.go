// Package dictionary holds the reference word list that corpus tokens are
// matched against.
package dictionary

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Dictionary is an immutable set of lowercase words.
type Dictionary struct {
	words map[string]struct{}
}

// New builds a dictionary from words, trimming and lower-casing each one.
// Blank entries are ignored.
func New(words []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		d.words[w] = struct{}{}
	}
	return d
}

// Load reads a newline-delimited word list.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return New(strings.Split(string(data), "\n")), nil
}

// Contains reports whether word is in the dictionary. The lookup is exact;
// callers pass already-normalized tokens.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.words[word]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// Words returns all words sorted.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
