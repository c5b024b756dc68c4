package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/lexis/pkg/lexis/store"
)

func TestSaveGetList(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	run := store.Run{
		ID:         "run-1",
		CreatedAt:  base,
		Documents:  []store.DocumentRow{{Name: "a.txt", TotalWords: 3}},
		NewWords:   []string{"fox"},
		KnownWords: []string{"cat"},
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveRun(ctx, store.Run{ID: "run-2", CreatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	// Mutating the caller's slice must not leak into the store.
	run.NewWords[0] = "changed"

	got, found, err := s.GetRun(ctx, "run-1")
	if err != nil || !found {
		t.Fatalf("GetRun: found=%v err=%v", found, err)
	}
	if got.NewWords[0] != "fox" || len(got.Documents) != 1 {
		t.Errorf("stored run altered: %+v", got)
	}

	if _, found, _ := s.GetRun(ctx, "missing"); found {
		t.Error("unexpected run")
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-2" {
		t.Fatalf("ListRuns order = %+v", runs)
	}
	if runs[1].Documents != nil || runs[1].NewWords != nil {
		t.Error("ListRuns should return headers only")
	}

	limited, _ := s.ListRuns(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d", len(limited))
	}
}
