package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

func TestReaderFallbackOrder(t *testing.T) {
	r := NewReader()
	if got := r.Encodings(); !reflect.DeepEqual(got, []string{"utf-8", "cp1252", "iso-8859-1"}) {
		t.Fatalf("default encodings = %v", got)
	}

	tests := []struct {
		name      string
		data      []byte
		wantText  string
		wantCodec string
	}{
		{"utf8", []byte("caf\xc3\xa9"), "café", "utf-8"},
		{"utf8 bom dropped", []byte("\xef\xbb\xbfhello"), "hello", "utf-8"},
		{"cp1252 smart quote", []byte("\x93hi\x94"), "“hi”", "cp1252"},
		{"latin1 for cp1252 holes", []byte("a\x81b"), "a\u0081b", "iso-8859-1"},
		{"empty", []byte{}, "", "utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, codec, err := r.Decode("song.txt", tt.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if codec != tt.wantCodec {
				t.Errorf("codec = %q, want %q", codec, tt.wantCodec)
			}
		})
	}
}

func TestReaderAllCodecsFail(t *testing.T) {
	utf8Only, err := NewReaderFromNames([]string{"utf-8", "cp1252"})
	if err != nil {
		t.Fatalf("NewReaderFromNames: %v", err)
	}

	_, _, err = utf8Only.Decode("bad.txt", []byte("x\x81\xff"))
	if err == nil {
		t.Fatal("expected decoding failure")
	}
	var decErr *DecodingError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodingError, got %T", err)
	}
	if decErr.Path != "bad.txt" || !reflect.DeepEqual(decErr.Tried, []string{"utf-8", "cp1252"}) {
		t.Errorf("unexpected error fields: %+v", decErr)
	}
	if !errors.Is(err, internalerr.ErrUndecodable) {
		t.Error("DecodingError should unwrap to ErrUndecodable")
	}
}

func TestReaderReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.txt")
	if err := os.WriteFile(path, []byte("Lose yourself\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, codec, err := NewReader().ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if text != "Lose yourself\n" || codec != "utf-8" {
		t.Errorf("got (%q, %q)", text, codec)
	}

	if _, _, err := NewReader().ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLookupCodec(t *testing.T) {
	for _, name := range []string{"UTF-8", "utf8", "Windows-1252", "cp1252", "latin1", "Latin-1", "ISO-8859-1"} {
		if _, err := LookupCodec(name); err != nil {
			t.Errorf("LookupCodec(%q): %v", name, err)
		}
	}
	if _, err := LookupCodec("ebcdic"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := Codecs([]string{"utf-8", "nope"}); err == nil {
		t.Error("Codecs should fail on unknown name")
	}
}
