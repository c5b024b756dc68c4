// Package ingest turns raw document bytes into normalized tokens: encoding
// fallback, HTML text extraction, and tokenization.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Codec decodes raw bytes into text. Decode must fail rather than guess
// when the bytes are not valid for the encoding.
type Codec interface {
	Name() string
	Decode(data []byte) (string, error)
}

// DefaultEncodings is the fallback order used when none is configured.
var DefaultEncodings = []string{"utf-8", "cp1252", "iso-8859-1"}

var errInvalidBytes = errors.New("invalid byte sequence")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type utf8Codec struct{}

func (utf8Codec) Name() string { return "utf-8" }

func (utf8Codec) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidBytes
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// cp1252Codec rejects the bytes Windows-1252 leaves unassigned. The charmap
// decoder maps them to C1 controls instead of failing.
type cp1252Codec struct{}

func (cp1252Codec) Name() string { return "cp1252" }

func (cp1252Codec) Decode(data []byte) (string, error) {
	for i, b := range data {
		switch b {
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return "", fmt.Errorf("%w: byte 0x%02X at offset %d", errInvalidBytes, b, i)
		}
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// latin1Codec maps every byte to a code point, so it never fails.
type latin1Codec struct{}

func (latin1Codec) Name() string { return "iso-8859-1" }

func (latin1Codec) Decode(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

var codecsByName = map[string]Codec{
	"utf-8":        utf8Codec{},
	"utf8":         utf8Codec{},
	"cp1252":       cp1252Codec{},
	"windows-1252": cp1252Codec{},
	"iso-8859-1":   latin1Codec{},
	"latin-1":      latin1Codec{},
	"latin1":       latin1Codec{},
}

// LookupCodec returns the codec registered under name (case-insensitive).
func LookupCodec(name string) (Codec, error) {
	c, ok := codecsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown encoding %q", internalerr.ErrInvalidInput, name)
	}
	return c, nil
}

// Codecs resolves names into codecs, preserving order.
func Codecs(names []string) ([]Codec, error) {
	out := make([]Codec, 0, len(names))
	for _, name := range names {
		c, err := LookupCodec(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
