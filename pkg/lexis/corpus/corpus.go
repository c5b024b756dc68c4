// Package corpus produces the raw text of every document in a run. Sources
// skip documents they cannot read and report them; only failures that
// prevent enumerating the corpus are returned as errors.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/logger"
)

// Document is one named text in the corpus.
type Document struct {
	Name     string
	Text     string
	Encoding string // codec that decoded the file; empty for JSONL input
}

// Skipped records a document that was left out of the run.
type Skipped struct {
	Name string
	Err  error
}

// Source yields the documents of a corpus in a stable order.
type Source interface {
	Load(ctx context.Context) ([]Document, []Skipped, error)
}

// DefaultExtensions lists the file extensions a Dir source reads by default.
var DefaultExtensions = []string{".txt"}

var errDuplicateName = errors.New("duplicate document name")

// Dir reads every matching file directly inside Path. Files are visited in
// file-name order.
type Dir struct {
	Path       string
	Extensions []string
	Reader     *ingest.Reader
}

// Load implements Source.
func (d Dir) Load(ctx context.Context) ([]Document, []Skipped, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("list corpus dir %s: %w", d.Path, err)
	}

	reader := d.Reader
	if reader == nil {
		reader = ingest.NewReader()
	}
	exts := d.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	log := logger.WithComponent("corpus")
	var (
		docs    []Document
		skipped []Skipped
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !hasExtension(name, exts) {
			continue
		}

		text, codec, err := reader.ReadFile(filepath.Join(d.Path, name))
		if err != nil {
			log.Warn("skipping document", "file", name, "encodings", reader.Encodings(), "error", err)
			skipped = append(skipped, Skipped{Name: name, Err: err})
			continue
		}
		if ingest.IsHTMLName(name) {
			text = ingest.ExtractHTMLText(text)
		}
		log.Debug("read document", "file", name, "encoding", codec, "bytes", len(text))
		docs = append(docs, Document{Name: name, Text: text, Encoding: codec})
	}
	return docs, skipped, nil
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, want := range exts {
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
