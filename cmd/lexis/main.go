// Command lexis analyzes a directory of song lyrics against an English
// dictionary and reports vocabulary and similarity statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cognicore/lexis/pkg/lexis"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/logger"
	"github.com/cognicore/lexis/pkg/lexis/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "lexis: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "lexis: invalid config: %v\n", err)
		return 2
	}
	log := logger.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	eng, err := lexis.New(ctx, cfg)
	if err != nil {
		log.Error("init failed", "error", err)
		return 1
	}
	defer eng.Close()

	res, err := eng.Run(ctx)
	if err != nil {
		log.Error("analysis failed", "error", err)
		return 1
	}
	if err := report.WriteText(stdout, res.Summary); err != nil {
		log.Error("write report", "error", err)
		return 1
	}

	outs := eng.Export(ctx, res)
	code := 0
	for _, out := range outs {
		if out.Err != nil {
			code = 1
			continue
		}
		if err := report.WriteSaved(stdout, out.Label, out.Path); err != nil {
			log.Error("write saved line", "output", out.Label, "error", err)
			code = 1
		}
	}
	return code
}

// parseConfig loads the config file named by -config and applies any
// explicitly set flags on top of it.
func parseConfig(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("lexis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath    = fs.String("config", "", "Optional YAML config file")
		songs      = fs.String("songs", "", "Directory of song files")
		jsonl      = fs.String("jsonl", "", "JSONL corpus file (overrides -songs)")
		dict       = fs.String("dict", "", "Dictionary word list")
		lexiconOut = fs.String("lexicon-out", "", "Output file for words not in the dictionary")
		knownOut   = fs.String("known-out", "", "Output file for dictionary words found")
		jsonOut    = fs.String("json-out", "", "Optional JSON report file")
		db         = fs.String("db", "", "Optional SQLite database for run history")
		maxPairs   = fs.Int("max-pairs", 0, "Score at most this many document pairs (0 = all)")
		seed       = fs.Uint64("seed", 0, "Seed for pair sampling")
		logLevel   = fs.String("log-level", "", "Log level: debug, info, warn, error")
		logFormat  = fs.String("log-format", "", "Log format: text or json")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "songs":
			cfg.Corpus.Dir = *songs
		case "jsonl":
			cfg.Corpus.JSONL = *jsonl
		case "dict":
			cfg.Dictionary.Path = *dict
		case "lexicon-out":
			cfg.Output.Lexicon = *lexiconOut
		case "known-out":
			cfg.Output.Known = *knownOut
		case "json-out":
			cfg.Output.JSON = *jsonOut
		case "db":
			cfg.Output.Database = *db
		case "max-pairs":
			cfg.Similarity.MaxPairs = *maxPairs
		case "seed":
			cfg.Similarity.Seed = *seed
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})
	return cfg, nil
}
