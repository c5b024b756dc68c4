package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexis/pkg/lexis/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	total_documents INTEGER NOT NULL,
	dictionary_size INTEGER NOT NULL,
	total_unique INTEGER NOT NULL,
	found_words INTEGER NOT NULL,
	new_words INTEGER NOT NULL,
	longest_known TEXT,
	most_frequent TEXT,
	most_frequent_count INTEGER NOT NULL DEFAULT 0,
	average_words REAL NOT NULL DEFAULT 0,
	average_unique REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_documents (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	total_words INTEGER NOT NULL,
	unique_words INTEGER NOT NULL,
	found_words INTEGER NOT NULL,
	new_words INTEGER NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_pairs (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	doc_a TEXT NOT NULL,
	doc_b TEXT NOT NULL,
	jaccard REAL NOT NULL,
	cosine REAL NOT NULL,
	shared INTEGER NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_skipped (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_words (
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY(run_id, kind, word),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// timeLayout is fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	wordKindNew   = "new"
	wordKindKnown = "known"
)

// SaveRun inserts a run and all its rows in one transaction
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"run_words", "run_skipped", "run_pairs", "run_documents", "runs"} {
		col := "run_id"
		if table == "runs" {
			col = "id"
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+col+` = ?`, r.ID); err != nil {
			return err
		}
	}

	const stmt = `
INSERT INTO runs (id, created_at, total_documents, dictionary_size, total_unique, found_words, new_words,
	longest_known, most_frequent, most_frequent_count, average_words, average_unique)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.CreatedAt.UTC().Format(timeLayout),
		r.TotalDocuments,
		r.DictionarySize,
		r.TotalUnique,
		r.Found,
		r.New,
		r.LongestKnown,
		r.MostFrequent,
		r.MostFrequentCount,
		r.AverageWords,
		r.AverageUnique,
	)
	if err != nil {
		return err
	}

	if err := insertDocuments(ctx, tx, r.ID, r.Documents); err != nil {
		return err
	}
	if err := insertPairs(ctx, tx, r.ID, r.Pairs); err != nil {
		return err
	}
	if err := insertSkipped(ctx, tx, r.ID, r.Skipped); err != nil {
		return err
	}
	for kind, words := range map[string][]string{
		wordKindNew:   r.NewWords,
		wordKindKnown: r.KnownWords,
	} {
		if err := insertWords(ctx, tx, r.ID, kind, words); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertDocuments(ctx context.Context, tx *sql.Tx, runID string, docs []store.DocumentRow) error {
	if len(docs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_documents (run_id, position, name, total_words, unique_words, found_words, new_words)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, d := range docs {
		if _, err := stmt.ExecContext(ctx, runID, i, d.Name, d.TotalWords, d.UniqueWords, d.Found, d.New); err != nil {
			return err
		}
	}
	return nil
}

func insertPairs(ctx context.Context, tx *sql.Tx, runID string, pairs []store.PairRow) error {
	if len(pairs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_pairs (run_id, position, doc_a, doc_b, jaccard, cosine, shared)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range pairs {
		if _, err := stmt.ExecContext(ctx, runID, i, p.A, p.B, p.Jaccard, p.Cosine, p.Shared); err != nil {
			return err
		}
	}
	return nil
}

func insertSkipped(ctx context.Context, tx *sql.Tx, runID string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_skipped (run_id, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, name := range names {
		if _, err := stmt.ExecContext(ctx, runID, i, name); err != nil {
			return err
		}
	}
	return nil
}

func insertWords(ctx context.Context, tx *sql.Tx, runID, kind string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO run_words (run_id, kind, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, runID, kind, w); err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `id, created_at, total_documents, dictionary_size, total_unique, found_words, new_words,
	longest_known, most_frequent, most_frequent_count, average_words, average_unique`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var (
		r            store.Run
		createdAt    string
		longest      sql.NullString
		mostFrequent sql.NullString
	)
	err := row.Scan(
		&r.ID, &createdAt, &r.TotalDocuments, &r.DictionarySize, &r.TotalUnique, &r.Found, &r.New,
		&longest, &mostFrequent, &r.MostFrequentCount, &r.AverageWords, &r.AverageUnique,
	)
	if err != nil {
		return store.Run{}, err
	}
	r.LongestKnown = longest.String
	r.MostFrequent = mostFrequent.String
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		r.CreatedAt = t
	}
	return r, nil
}

// GetRun retrieves a run with its documents, pairs and word lists
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	if r.Documents, err = s.loadDocuments(ctx, id); err != nil {
		return store.Run{}, false, err
	}
	if r.Pairs, err = s.loadPairs(ctx, id); err != nil {
		return store.Run{}, false, err
	}
	if r.NewWords, err = s.loadWords(ctx, id, wordKindNew); err != nil {
		return store.Run{}, false, err
	}
	if r.KnownWords, err = s.loadWords(ctx, id, wordKindKnown); err != nil {
		return store.Run{}, false, err
	}
	if r.Skipped, err = s.loadSkipped(ctx, id); err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

func (s *sqliteStore) loadDocuments(ctx context.Context, runID string) ([]store.DocumentRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, total_words, unique_words, found_words, new_words
FROM run_documents WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []store.DocumentRow
	for rows.Next() {
		var d store.DocumentRow
		if err := rows.Scan(&d.Name, &d.TotalWords, &d.UniqueWords, &d.Found, &d.New); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *sqliteStore) loadPairs(ctx context.Context, runID string) ([]store.PairRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT doc_a, doc_b, jaccard, cosine, shared
FROM run_pairs WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []store.PairRow
	for rows.Next() {
		var p store.PairRow
		if err := rows.Scan(&p.A, &p.B, &p.Jaccard, &p.Cosine, &p.Shared); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (s *sqliteStore) loadSkipped(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name FROM run_skipped WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *sqliteStore) loadWords(ctx context.Context, runID, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word FROM run_words WHERE run_id = ? AND kind = ? ORDER BY word`, runID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ListRuns returns run headers, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
