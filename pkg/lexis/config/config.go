// Package config loads run configuration from YAML with LEXIS_* environment
// overrides. Every field has a default, so an empty file (or none) is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/logger"
)

// Config is the top-level run configuration.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Output     OutputConfig     `yaml:"output"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CorpusConfig selects the documents to analyze. JSONL, when set, takes
// precedence over Dir.
type CorpusConfig struct {
	Dir        string   `yaml:"dir"`
	JSONL      string   `yaml:"jsonl"`
	Extensions []string `yaml:"extensions"`
	Encodings  []string `yaml:"encodings"`
}

// DictionaryConfig points at the reference word list.
type DictionaryConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig names the files a run writes. Empty JSON or Database
// disables that output.
type OutputConfig struct {
	Lexicon  string `yaml:"lexicon"`
	Known    string `yaml:"known"`
	JSON     string `yaml:"json"`
	Database string `yaml:"database"`
}

// SimilarityConfig bounds the pairwise stage. MaxPairs 0 scores every pair.
type SimilarityConfig struct {
	MaxPairs int    `yaml:"max_pairs"`
	Seed     uint64 `yaml:"seed"`
}

// LoggingConfig controls slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:        "Songs",
			Extensions: []string{".txt"},
			Encodings:  append([]string(nil), ingest.DefaultEncodings...),
		},
		Dictionary: DictionaryConfig{
			Path: "Dictionary/words_alpha.txt",
		},
		Output: OutputConfig{
			Lexicon: "eminem_lexicon_custom.txt",
			Known:   "known_words_eminem_has_used.txt",
		},
		Similarity: SimilarityConfig{
			Seed: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file (if path is non-empty) over the defaults and then
// applies environment overrides. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads LEXIS_* environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LEXIS_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("LEXIS_CORPUS_JSONL"); v != "" {
		cfg.Corpus.JSONL = v
	}
	if v := os.Getenv("LEXIS_CORPUS_EXTENSIONS"); v != "" {
		cfg.Corpus.Extensions = splitList(v)
	}
	if v := os.Getenv("LEXIS_CORPUS_ENCODINGS"); v != "" {
		cfg.Corpus.Encodings = splitList(v)
	}
	if v := os.Getenv("LEXIS_DICTIONARY_PATH"); v != "" {
		cfg.Dictionary.Path = v
	}
	if v := os.Getenv("LEXIS_OUTPUT_LEXICON"); v != "" {
		cfg.Output.Lexicon = v
	}
	if v := os.Getenv("LEXIS_OUTPUT_KNOWN"); v != "" {
		cfg.Output.Known = v
	}
	if v := os.Getenv("LEXIS_OUTPUT_JSON"); v != "" {
		cfg.Output.JSON = v
	}
	if v := os.Getenv("LEXIS_OUTPUT_DATABASE"); v != "" {
		cfg.Output.Database = v
	}
	if v := os.Getenv("LEXIS_SIMILARITY_MAX_PAIRS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: LEXIS_SIMILARITY_MAX_PAIRS=%q", internalerr.ErrInvalidConfig, v)
		}
		cfg.Similarity.MaxPairs = n
	}
	if v := os.Getenv("LEXIS_SIMILARITY_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: LEXIS_SIMILARITY_SEED=%q", internalerr.ErrInvalidConfig, v)
		}
		cfg.Similarity.Seed = n
	}
	if v := os.Getenv("LEXIS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LEXIS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{internalerr.ErrInvalidConfig}, args...)...))
	}

	if c.Corpus.Dir == "" && c.Corpus.JSONL == "" {
		invalid("corpus.dir or corpus.jsonl is required")
	}
	if c.Corpus.JSONL == "" && len(c.Corpus.Extensions) == 0 {
		invalid("corpus.extensions must not be empty")
	}
	if len(c.Corpus.Encodings) == 0 {
		invalid("corpus.encodings must not be empty")
	}
	if _, err := ingest.Codecs(c.Corpus.Encodings); err != nil {
		invalid("corpus.encodings: %v", err)
	}
	if c.Dictionary.Path == "" {
		invalid("dictionary.path is required")
	}
	if c.Output.Lexicon == "" {
		invalid("output.lexicon is required")
	}
	if c.Output.Known == "" {
		invalid("output.known is required")
	}
	if c.Similarity.MaxPairs < 0 {
		invalid("similarity.max_pairs must be >= 0, got %d", c.Similarity.MaxPairs)
	}
	if !logger.ValidLevel(c.Logging.Level) {
		invalid("logging.level %q", c.Logging.Level)
	}
	if !logger.ValidFormat(c.Logging.Format) {
		invalid("logging.format %q", c.Logging.Format)
	}
	return errors.Join(errs...)
}
