// Package lexis runs the lyric-corpus analysis: it loads the dictionary and
// the corpus, analyzes every document, aggregates corpus statistics, scores
// document pairs, and writes the derived word lists.
package lexis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexis/pkg/lexis/analytics"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/corpus"
	"github.com/cognicore/lexis/pkg/lexis/dictionary"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/lexicon"
	"github.com/cognicore/lexis/pkg/lexis/logger"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/store"
	"github.com/cognicore/lexis/pkg/lexis/store/sqlite"
)

// Output labels, as printed in the "saved to" lines.
const (
	LabelLexicon  = "Custom lexicon"
	LabelKnown    = "Known words"
	LabelJSON     = "JSON report"
	LabelDatabase = "Run"
)

// Engine wires the analysis stages together. Each Run is independent; no
// statistics are carried between runs.
type Engine struct {
	cfg       *config.Config
	source    corpus.Source
	strategy  analytics.Strategy
	store     store.Store
	ownsStore bool
	entropy   *ulid.MonotonicEntropy
	now       func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSource replaces the corpus source derived from the config.
func WithSource(src corpus.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithStrategy replaces the similarity strategy derived from the config.
func WithStrategy(s analytics.Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithStore persists runs to st instead of the configured database. The
// caller keeps ownership of st.
func WithStore(st store.Store) Option {
	return func(e *Engine) { e.store = st }
}

// WithClock overrides the time source used for run IDs.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New validates cfg and builds an engine. When cfg names a database and no
// store was supplied, the SQLite store is opened here and closed by Close.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.source == nil {
		src, err := sourceFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		e.source = src
	}
	if e.strategy == nil {
		e.strategy = strategyFromConfig(cfg)
	}
	if e.store == nil && cfg.Output.Database != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.Output.Database)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", cfg.Output.Database, err)
		}
		e.store = st
		e.ownsStore = true
	}
	return e, nil
}

func sourceFromConfig(cfg *config.Config) (corpus.Source, error) {
	if cfg.Corpus.JSONL != "" {
		return corpus.JSONL{Path: cfg.Corpus.JSONL}, nil
	}
	reader, err := ingest.NewReaderFromNames(cfg.Corpus.Encodings)
	if err != nil {
		return nil, err
	}
	return corpus.Dir{
		Path:       cfg.Corpus.Dir,
		Extensions: cfg.Corpus.Extensions,
		Reader:     reader,
	}, nil
}

func strategyFromConfig(cfg *config.Config) analytics.Strategy {
	if cfg.Similarity.MaxPairs > 0 {
		return analytics.SampledPairs{MaxPairs: cfg.Similarity.MaxPairs, Seed: cfg.Similarity.Seed}
	}
	return analytics.AllPairs{}
}

// Close releases the store if the engine opened it.
func (e *Engine) Close() error {
	if e.ownsStore && e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Result is everything one run produced.
type Result struct {
	RunID     string
	CreatedAt time.Time
	Documents []analytics.DocumentStats
	Corpus    analytics.CorpusStats
	Matrix    *analytics.Matrix
	Summary   report.Summary
}

// Run executes the pipeline. A missing dictionary or an unreadable corpus
// aborts the run; individual unreadable documents are skipped.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	log := logger.WithComponent("engine")

	dict, err := dictionary.Load(e.cfg.Dictionary.Path)
	if err != nil {
		return nil, err
	}
	log.Info("dictionary loaded", "path", e.cfg.Dictionary.Path, "words", dict.Len())

	docs, skipped, err := e.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	agg := analytics.NewAggregator(dict)
	for _, sk := range skipped {
		agg.Skip(sk.Name, sk.Err)
	}
	for _, d := range docs {
		agg.Add(analytics.Analyze(d.Name, ingest.Tokenize(d.Text), dict))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := agg.Documents()
	cs := agg.Result()
	matrix := e.strategy.Compute(stats)

	created := e.now()
	id := ulid.MustNew(ulid.Timestamp(created), e.entropy).String()
	summary := report.Build(stats, cs, matrix)
	summary.RunID = id

	log.Info("analysis complete",
		"run_id", id,
		"documents", cs.TotalDocuments,
		"skipped", len(cs.Skipped),
		"unique_words", cs.Unique.Len(),
		"pairs", matrix.Len(),
	)

	return &Result{
		RunID:     id,
		CreatedAt: created,
		Documents: stats,
		Corpus:    cs,
		Matrix:    matrix,
		Summary:   summary,
	}, nil
}

// Output is the outcome of writing one artifact.
type Output struct {
	Label string
	Path  string
	Err   error
}

// Outputs is the set of artifacts written by Export.
type Outputs []Output

// Err joins every failed output, or returns nil.
func (o Outputs) Err() error {
	var errs []error
	for _, out := range o {
		if out.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", out.Label, out.Err))
		}
	}
	return errors.Join(errs...)
}

// Export writes the new-word lexicon, the known-word list, the optional
// JSON report and the optional run record. Each is attempted regardless of
// earlier failures.
func (e *Engine) Export(ctx context.Context, res *Result) Outputs {
	log := logger.WithComponent("export")
	outs := Outputs{
		{Label: LabelLexicon, Path: e.cfg.Output.Lexicon},
		{Label: LabelKnown, Path: e.cfg.Output.Known},
	}
	outs[0].Err = lexicon.WriteFile(outs[0].Path, res.Corpus.New.Sorted())
	outs[1].Err = lexicon.WriteFile(outs[1].Path, res.Corpus.Known.Sorted())

	if path := e.cfg.Output.JSON; path != "" {
		outs = append(outs, Output{Label: LabelJSON, Path: path, Err: writeJSON(path, res.Summary)})
	}
	if e.store != nil {
		path := e.cfg.Output.Database
		if path == "" {
			path = "store"
		}
		outs = append(outs, Output{Label: LabelDatabase + " " + res.RunID, Path: path, Err: e.store.SaveRun(ctx, toRun(res))})
	}

	for _, out := range outs {
		if out.Err != nil {
			log.Error("output failed", "output", out.Label, "path", out.Path, "error", out.Err)
			continue
		}
		log.Debug("output written", "output", out.Label, "path", out.Path)
	}
	return outs
}

func writeJSON(path string, s report.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return report.WriteJSON(f, s)
}

func toRun(res *Result) store.Run {
	cs := res.Corpus
	r := store.Run{
		ID:                res.RunID,
		CreatedAt:         res.CreatedAt,
		TotalDocuments:    cs.TotalDocuments,
		DictionarySize:    cs.DictionarySize,
		TotalUnique:       cs.Unique.Len(),
		Found:             cs.Known.Len(),
		New:               cs.New.Len(),
		LongestKnown:      cs.LongestKnown,
		MostFrequent:      cs.MostFrequent.Token,
		MostFrequentCount: cs.MostFrequent.Count,
		AverageWords:      cs.AverageWords,
		AverageUnique:     cs.AverageUnique,
		NewWords:          cs.New.Sorted(),
		KnownWords:        cs.Known.Sorted(),
	}
	for _, d := range res.Documents {
		r.Documents = append(r.Documents, store.DocumentRow{
			Name:        d.Name,
			TotalWords:  d.TotalWords,
			UniqueWords: d.UniqueWords(),
			Found:       d.Known.Len(),
			New:         d.New.Len(),
		})
	}
	for _, p := range res.Matrix.Pairs() {
		r.Pairs = append(r.Pairs, store.PairRow{A: p.A, B: p.B, Jaccard: p.Jaccard, Cosine: p.Cosine, Shared: p.Shared})
	}
	for _, sk := range cs.Skipped {
		r.Skipped = append(r.Skipped, sk.Name)
	}
	return r
}
