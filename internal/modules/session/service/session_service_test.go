package service_test

import (
	"fmt"
	"testing"
	"time"

	"libtrack/internal/modules/session/service"
	apperrors "libtrack/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 8, 14, hour, min, sec, 0, time.UTC)
}

func TestTimeInThenTimeOutDerivesDuration(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(10, 0, 0), at(11, 30, 45)}}
	svc := service.NewSessionService(clk, &seqID{})

	active, err := svc.TimeIn("Ama Mensah", 200)
	if err != nil {
		t.Fatalf("time in: %v", err)
	}
	if active.ID != "id-1" || active.Level != 200 {
		t.Fatalf("unexpected active session %+v", active)
	}

	completed, ok := svc.TimeOut(active.ID)
	if !ok {
		t.Fatalf("time out should close the session")
	}
	d := completed.Duration
	if d.Hours != 1 || d.Minutes != 30 || d.Seconds != 45 {
		t.Fatalf("duration = %+v, want 1h30m45s", d)
	}
	if len(svc.Active()) != 0 {
		t.Fatalf("active collection should be empty after time out")
	}
	if got := len(svc.Completed()); got != 1 {
		t.Fatalf("completed count = %d, want 1", got)
	}
}

func TestTimeInRejectsBlankAndCaseInsensitiveDuplicate(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})

	if _, err := svc.TimeIn("   ", 100); err != apperrors.ErrEmptyName {
		t.Fatalf("blank name: got %v, want ErrEmptyName", err)
	}
	if _, err := svc.TimeIn("Alice", 100); err != nil {
		t.Fatalf("first time in: %v", err)
	}
	if _, err := svc.TimeIn("alice", 100); err != apperrors.ErrStudentAlreadyActive {
		t.Fatalf("duplicate: got %v, want ErrStudentAlreadyActive", err)
	}
	// A rejected time-in must not grow the collection.
	if got := len(svc.Active()); got != 1 {
		t.Fatalf("active count = %d, want 1", got)
	}
}

func TestTimeOutUnknownIDIsSilentNoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	if _, err := svc.TimeIn("Kofi", 300); err != nil {
		t.Fatalf("time in: %v", err)
	}

	if _, ok := svc.TimeOut("no-such-id"); ok {
		t.Fatalf("unknown id must not close anything")
	}
	if len(svc.Active()) != 1 || len(svc.Completed()) != 0 {
		t.Fatalf("collections changed on unknown time out")
	}
}

func TestTimeOutPrependsMostRecentFirst(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		at(9, 0, 0), at(9, 5, 0), // time ins
		at(10, 0, 0), at(11, 0, 0), // time outs
	}}
	svc := service.NewSessionService(clk, &seqID{})
	first, _ := svc.TimeIn("First", 100)
	second, _ := svc.TimeIn("Second", 100)

	svc.TimeOut(first.ID)
	svc.TimeOut(second.ID)

	completed := svc.Completed()
	if completed[0].StudentName != "Second" || completed[1].StudentName != "First" {
		t.Fatalf("completed order = [%s %s], want most-recent-first",
			completed[0].StudentName, completed[1].StudentName)
	}
}

func TestAddCompletedValidatesAndResorts(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})

	if _, err := svc.AddCompleted("Bad", 100, at(12, 0, 0), at(12, 0, 0), ""); err != apperrors.ErrInvalidTimeRange {
		t.Fatalf("equal times: got %v, want ErrInvalidTimeRange", err)
	}
	if _, err := svc.AddCompleted("Bad", 100, at(13, 0, 0), at(12, 0, 0), ""); err != apperrors.ErrInvalidTimeRange {
		t.Fatalf("inverted times: got %v, want ErrInvalidTimeRange", err)
	}
	if len(svc.Completed()) != 0 {
		t.Fatalf("rejected add must leave collection unchanged")
	}

	if _, err := svc.AddCompleted("Late", 100, at(14, 0, 0), at(15, 0, 0), ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	// The backfilled earlier entry must slot behind the later one.
	if _, err := svc.AddCompleted("Early", 100, at(8, 0, 0), at(8, 30, 0), "backfill"); err != nil {
		t.Fatalf("add: %v", err)
	}
	completed := svc.Completed()
	if completed[0].StudentName != "Late" || completed[1].StudentName != "Early" {
		t.Fatalf("completed order = [%s %s], want descending by time in",
			completed[0].StudentName, completed[1].StudentName)
	}
}

func TestUpdateCompletedDropsInvalidEditWholesale(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	added, err := svc.AddCompleted("Esi", 200, at(9, 0, 0), at(10, 0, 0), "before")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = svc.UpdateCompleted(added.ID, "Renamed", 400, at(11, 0, 0), at(10, 0, 0), "after")
	if err != apperrors.ErrInvalidTimeRange {
		t.Fatalf("invalid edit: got %v, want ErrInvalidTimeRange", err)
	}
	got := svc.Completed()[0]
	if got.StudentName != "Esi" || got.Level != 200 || got.Notes != "before" {
		t.Fatalf("invalid edit must not partially apply, got %+v", got)
	}

	if err := svc.UpdateCompleted(added.ID, "Renamed", 400, at(9, 30, 0), at(10, 0, 0), "after"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got = svc.Completed()[0]
	if got.StudentName != "Renamed" || got.Level != 400 || got.Notes != "after" {
		t.Fatalf("edit not applied: %+v", got)
	}
	if got.Duration.Minutes != 30 {
		t.Fatalf("duration not recomputed, got %+v", got.Duration)
	}
}

func TestUpdateAppliesNameAsTyped(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	added, err := svc.AddCompleted("  Esi  ", 200, at(9, 0, 0), at(10, 0, 0), "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.StudentName != "Esi" {
		t.Fatalf("backfill should trim, got %q", added.StudentName)
	}

	// Edits keep the name verbatim; only time-in and backfill trim.
	if err := svc.UpdateCompleted(added.ID, "  Esi Badu ", 200, at(9, 0, 0), at(10, 0, 0), ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.Completed()[0].StudentName; got != "  Esi Badu " {
		t.Fatalf("edited name = %q, want the untrimmed input", got)
	}
}

func TestUpdateDoesNotResortAfterBackdate(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	svc.AddCompleted("A", 100, at(9, 0, 0), at(9, 30, 0), "")
	b, _ := svc.AddCompleted("B", 100, at(11, 0, 0), at(11, 30, 0), "")

	// Backdating B to before A leaves it at the front: edits keep their
	// slot even when the descending order becomes approximate.
	if err := svc.UpdateCompleted(b.ID, "B", 100, at(7, 0, 0), at(7, 30, 0), ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if svc.Completed()[0].StudentName != "B" {
		t.Fatalf("edit must not re-sort the collection")
	}
}

func TestDeleteCompletedRemovesOrIgnores(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	added, _ := svc.AddCompleted("Gone", 100, at(9, 0, 0), at(9, 15, 0), "")

	svc.DeleteCompleted("missing")
	if len(svc.Completed()) != 1 {
		t.Fatalf("unknown delete must be a no-op")
	}
	svc.DeleteCompleted(added.ID)
	if len(svc.Completed()) != 0 {
		t.Fatalf("delete did not remove the record")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{at(9, 0, 0)}}
	svc := service.NewSessionService(clk, &seqID{})
	svc.AddCompleted("Snap", 100, at(9, 0, 0), at(9, 15, 0), "")

	snapshot := svc.Completed()
	snapshot[0].StudentName = "Mutated"
	if svc.Completed()[0].StudentName != "Snap" {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}
