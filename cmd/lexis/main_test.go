package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lexis.yaml")
	yaml := "corpus:\n  dir: from-file\ndictionary:\n  path: file-dict.txt\nsimilarity:\n  max_pairs: 10\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	cfg, err := parseConfig([]string{"-config", cfgPath, "-dict", "flag-dict.txt", "-max-pairs", "0"}, &stderr)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Corpus.Dir != "from-file" {
		t.Errorf("Corpus.Dir = %q, want value from file", cfg.Corpus.Dir)
	}
	if cfg.Dictionary.Path != "flag-dict.txt" {
		t.Errorf("Dictionary.Path = %q, want flag value", cfg.Dictionary.Path)
	}
	if cfg.Similarity.MaxPairs != 0 {
		t.Errorf("MaxPairs = %d, want explicit flag value 0", cfg.Similarity.MaxPairs)
	}
}

func TestParseConfigRejectsArgs(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseConfig([]string{"extra"}, &stderr); err == nil {
		t.Error("expected error for positional arguments")
	}
	if _, err := parseConfig([]string{"-no-such-flag"}, &stderr); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func setupRun(t *testing.T) (dir string, args []string) {
	t.Helper()
	dir = t.TempDir()
	songs := filepath.Join(dir, "Songs")
	if err := os.Mkdir(songs, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(songs, "doc1.txt"): "Cat, dog! dog.",
		filepath.Join(songs, "doc2.txt"): "Fox and cat",
		filepath.Join(dir, "words.txt"):  "cat\ndog\n",
	}
	for path, body := range files {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	args = []string{
		"-songs", songs,
		"-dict", filepath.Join(dir, "words.txt"),
		"-lexicon-out", filepath.Join(dir, "lexicon.txt"),
		"-known-out", filepath.Join(dir, "known.txt"),
		"-log-level", "error",
	}
	return dir, args
}

func TestRunPrintsReportAndSavedLines(t *testing.T) {
	dir, args := setupRun(t)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"Song: doc1.txt",
		"Total songs processed: 2",
		"Custom lexicon saved to " + filepath.Join(dir, "lexicon.txt"),
		"Known words saved to " + filepath.Join(dir, "known.txt"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "Total songs processed") > strings.Index(out, "saved to") {
		t.Error("saved lines should follow the report")
	}

	data, err := os.ReadFile(filepath.Join(dir, "lexicon.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "and\nfox\n" {
		t.Errorf("lexicon = %q", data)
	}
}

func TestRunFailedOutputExitsNonZero(t *testing.T) {
	dir, args := setupRun(t)
	args = append(args, "-lexicon-out", filepath.Join(dir, "missing", "lexicon.txt"))

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), args, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "Known words saved to") {
		t.Error("known words should still be written when lexicon fails")
	}
	if strings.Contains(stdout.String(), "Custom lexicon saved to") {
		t.Error("failed output must not be reported as saved")
	}
}

// savedLineWriter fails any write of a "saved to" line.
type savedLineWriter struct {
	bytes.Buffer
}

func (w *savedLineWriter) Write(p []byte) (int, error) {
	if bytes.Contains(p, []byte("saved to")) {
		return 0, errors.New("stdout closed")
	}
	return w.Buffer.Write(p)
}

func TestRunSavedLineWriteError(t *testing.T) {
	dir, args := setupRun(t)

	var stdout savedLineWriter
	var stderr bytes.Buffer
	if code := run(context.Background(), args, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "Total songs processed: 2") {
		t.Error("report should still be printed")
	}
	if _, err := os.Stat(filepath.Join(dir, "known.txt")); err != nil {
		t.Errorf("outputs should still be written: %v", err)
	}
}

func TestRunMissingDictionary(t *testing.T) {
	dir, args := setupRun(t)
	args = append(args, "-dict", filepath.Join(dir, "nope.txt"))

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), args, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("no report expected, got %q", stdout.String())
	}
}

func TestRunInvalidConfig(t *testing.T) {
	_, args := setupRun(t)
	args = append(args, "-log-format", "xml")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), args, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}
