package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"libtrack/internal/modules/session/adapter/out"
	"libtrack/internal/modules/session/domain"
	"libtrack/internal/platform/duration"
)

func TestReplaceThenLoadPreservesOrder(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteLogStore(filepath.Join(t.TempDir(), "libtrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	completed := []domain.CompletedSession{
		{ID: "c2", StudentName: "Second", Level: 200, TimeIn: base.Add(2 * time.Hour), TimeOut: base.Add(3 * time.Hour), Duration: duration.Duration{Hours: 1}, Notes: "later"},
		{ID: "c1", StudentName: "First", Level: 100, TimeIn: base, TimeOut: base.Add(time.Hour), Duration: duration.Duration{Hours: 1}},
	}
	if err := store.ReplaceCompleted(ctx, completed); err != nil {
		t.Fatalf("replace completed: %v", err)
	}
	// A second replace must overwrite, not accumulate.
	if err := store.ReplaceCompleted(ctx, completed); err != nil {
		t.Fatalf("replace completed again: %v", err)
	}

	loaded, err := store.LoadCompleted(ctx)
	if err != nil {
		t.Fatalf("load completed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d sessions, want 2", len(loaded))
	}
	if loaded[0].ID != "c2" || loaded[1].ID != "c1" {
		t.Fatalf("mirror order not preserved: [%s %s]", loaded[0].ID, loaded[1].ID)
	}
	if !loaded[0].TimeIn.Equal(completed[0].TimeIn) {
		t.Fatalf("time in drifted: %v != %v", loaded[0].TimeIn, completed[0].TimeIn)
	}
	if loaded[1].Duration.Hours != 1 || loaded[0].Notes != "later" {
		t.Fatalf("fields not round-tripped: %+v", loaded)
	}
}

func TestActiveSessionsRoundTrip(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteLogStore(filepath.Join(t.TempDir(), "libtrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	active := []domain.ActiveSession{
		{ID: "a1", StudentName: "Ama", Level: 300, TimeIn: time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)},
	}
	if err := store.ReplaceActive(ctx, active); err != nil {
		t.Fatalf("replace active: %v", err)
	}
	loaded, err := store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load active: %v", err)
	}
	if len(loaded) != 1 || loaded[0].StudentName != "Ama" || loaded[0].Level != 300 {
		t.Fatalf("active sessions not round-tripped: %+v", loaded)
	}

	if err := store.ReplaceActive(ctx, nil); err != nil {
		t.Fatalf("replace with empty: %v", err)
	}
	loaded, err = store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load active: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("empty replace left %d rows", len(loaded))
	}
}
