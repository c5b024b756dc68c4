package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// DecodingError reports a file that none of the candidate codecs accepted.
type DecodingError struct {
	Path  string
	Tried []string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("unable to decode %s with any of [%s]", e.Path, strings.Join(e.Tried, ", "))
}

func (e *DecodingError) Unwrap() error {
	return internalerr.ErrUndecodable
}

// Reader decodes files by trying each codec in order and keeping the first
// that succeeds.
type Reader struct {
	codecs []Codec
}

// NewReader creates a reader over the given codecs. With no codecs it uses
// DefaultEncodings.
func NewReader(codecs ...Codec) *Reader {
	if len(codecs) == 0 {
		codecs, _ = Codecs(DefaultEncodings)
	}
	return &Reader{codecs: codecs}
}

// NewReaderFromNames resolves encoding names and builds a reader.
func NewReaderFromNames(names []string) (*Reader, error) {
	codecs, err := Codecs(names)
	if err != nil {
		return nil, err
	}
	return NewReader(codecs...), nil
}

// Encodings lists the codec names in the order they are tried.
func (r *Reader) Encodings() []string {
	names := make([]string, len(r.codecs))
	for i, c := range r.codecs {
		names[i] = c.Name()
	}
	return names
}

// Decode returns the text and the name of the codec that produced it.
// The path is only used for error reporting.
func (r *Reader) Decode(path string, data []byte) (string, string, error) {
	for _, c := range r.codecs {
		text, err := c.Decode(data)
		if err != nil {
			continue
		}
		return text, c.Name(), nil
	}
	return "", "", &DecodingError{Path: path, Tried: r.Encodings()}
}

// ReadFile reads and decodes a file.
func (r *Reader) ReadFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return r.Decode(path, data)
}
