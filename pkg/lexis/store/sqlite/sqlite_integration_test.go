package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/lexis/pkg/lexis/store"
)

func sampleRun(id string, created time.Time) store.Run {
	return store.Run{
		ID:                id,
		CreatedAt:         created,
		TotalDocuments:    2,
		DictionarySize:    2,
		TotalUnique:       4,
		Found:             2,
		New:               2,
		LongestKnown:      "cat",
		MostFrequent:      "cat",
		MostFrequentCount: 2,
		AverageWords:      3,
		AverageUnique:     2.5,
		Documents: []store.DocumentRow{
			{Name: "doc1.txt", TotalWords: 3, UniqueWords: 2, Found: 2, New: 0},
			{Name: "doc2.txt", TotalWords: 3, UniqueWords: 3, Found: 1, New: 2},
		},
		Pairs: []store.PairRow{
			{A: "doc1.txt", B: "doc2.txt", Jaccard: 0.25, Cosine: 0.2581988897, Shared: 1},
		},
		NewWords:   []string{"and", "fox"},
		KnownWords: []string{"cat", "dog"},
		Skipped:    []string{"broken.txt"},
	}
}

// TestSQLiteRunRoundTrip saves a run and reads it back
func TestSQLiteRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun("01HX0000000000000000000000", created)
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, found, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !found {
		t.Fatal("run should be found")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	got.CreatedAt = run.CreatedAt
	if !reflect.DeepEqual(got, run) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, run)
	}
}

// TestSQLiteSkippedOrder keeps skipped names in corpus order
func TestSQLiteSkippedOrder(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	run := sampleRun("run", time.Now())
	run.Skipped = []string{"zz.txt", "songs.jsonl:4", "aa.txt", "aa.txt"}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, _, err := st.GetRun(ctx, "run")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !reflect.DeepEqual(got.Skipped, run.Skipped) {
		t.Errorf("Skipped = %v, want %v", got.Skipped, run.Skipped)
	}
}

// TestSQLiteRunReplace re-saves a run under the same ID
func TestSQLiteRunReplace(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	run := sampleRun("run", time.Now())
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	run.Documents = run.Documents[:1]
	run.NewWords = []string{"zebra"}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	got, _, err := st.GetRun(ctx, "run")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(got.Documents) != 1 {
		t.Errorf("expected 1 document after replace, got %d", len(got.Documents))
	}
	if !reflect.DeepEqual(got.NewWords, []string{"zebra"}) {
		t.Errorf("NewWords = %v", got.NewWords)
	}
}

// TestSQLiteListRuns checks ordering, limits and missing runs
func TestSQLiteListRuns(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := st.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRun %s: %v", id, err)
		}
	}
	// Sub-second timestamps must still sort after whole seconds.
	if err := st.SaveRun(ctx, sampleRun("d", base.Add(2*time.Minute+500*time.Millisecond))); err != nil {
		t.Fatalf("SaveRun d: %v", err)
	}

	runs, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
		if r.Documents != nil || r.NewWords != nil {
			t.Errorf("ListRuns should not load rows for %s", r.ID)
		}
	}
	if !reflect.DeepEqual(ids, []string{"d", "c", "b", "a"}) {
		t.Errorf("order = %v", ids)
	}

	limited, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs, got %d", len(limited))
	}

	if _, found, err := st.GetRun(ctx, "missing"); err != nil || found {
		t.Errorf("GetRun(missing) = found %v, err %v", found, err)
	}
}

// TestSQLiteEmptyRun saves a run with no documents
func TestSQLiteEmptyRun(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	if err := st.SaveRun(ctx, store.Run{ID: "empty", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, found, err := st.GetRun(ctx, "empty")
	if err != nil || !found {
		t.Fatalf("GetRun: found=%v err=%v", found, err)
	}
	if got.Documents != nil || got.Pairs != nil || got.NewWords != nil {
		t.Errorf("expected empty rows, got %+v", got)
	}
}
