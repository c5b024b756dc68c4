package store

import (
	"context"
	"time"
)

// Store persists the results of analysis runs.
type Store interface {
	Close() error

	// SaveRun stores a complete run. Saving an existing ID replaces it.
	SaveRun(ctx context.Context, r Run) error
	// GetRun loads a run with all its rows.
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns run headers, newest first. Rows and word lists are
	// left empty. limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one persisted analysis.
type Run struct {
	ID                string
	CreatedAt         time.Time
	TotalDocuments    int
	DictionarySize    int
	TotalUnique       int
	Found             int
	New               int
	LongestKnown      string
	MostFrequent      string
	MostFrequentCount int
	AverageWords      float64
	AverageUnique     float64

	Documents  []DocumentRow
	Pairs      []PairRow
	NewWords   []string
	KnownWords []string
	Skipped    []string
}

// DocumentRow holds the per-document counts of a run.
type DocumentRow struct {
	Name        string
	TotalWords  int
	UniqueWords int
	Found       int
	New         int
}

// PairRow holds the similarity scores of one document pair.
type PairRow struct {
	A       string
	B       string
	Jaccard float64
	Cosine  float64
	Shared  int
}
