package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"libtrack/internal/modules/session/domain"
	"libtrack/internal/modules/session/dto"
	"libtrack/internal/modules/session/service"
	"libtrack/internal/modules/session/usecase"
	"libtrack/internal/platform/duration"
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

type fixedID struct{ value string }

func (f fixedID) New() string { return f.value }

type fakeLogStore struct {
	active    []domain.ActiveSession
	completed []domain.CompletedSession

	replaceActiveCalls    int
	replaceCompletedCalls int
	failReplace           bool
}

func (f *fakeLogStore) LoadActive(context.Context) ([]domain.ActiveSession, error) {
	return f.active, nil
}

func (f *fakeLogStore) LoadCompleted(context.Context) ([]domain.CompletedSession, error) {
	return f.completed, nil
}

func (f *fakeLogStore) ReplaceActive(_ context.Context, sessions []domain.ActiveSession) error {
	f.replaceActiveCalls++
	if f.failReplace {
		return errors.New("mirror down")
	}
	f.active = sessions
	return nil
}

func (f *fakeLogStore) ReplaceCompleted(_ context.Context, sessions []domain.CompletedSession) error {
	f.replaceCompletedCalls++
	if f.failReplace {
		return errors.New("mirror down")
	}
	f.completed = sessions
	return nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 14, hour, min, 0, 0, time.UTC)
}

func TestRehydrateSeedsFromMirror(t *testing.T) {
	t.Parallel()
	store := &fakeLogStore{
		active: []domain.ActiveSession{{ID: "a1", StudentName: "Ama", Level: 200, TimeIn: at(9, 0)}},
		completed: []domain.CompletedSession{{
			ID: "c1", StudentName: "Kofi", Level: 300,
			TimeIn: at(7, 0), TimeOut: at(8, 0),
			Duration: duration.Duration{Hours: 1},
		}},
	}
	svc := service.NewSessionService(&fakeClock{values: []time.Time{at(9, 0)}}, fixedID{"x"})
	interactor := usecase.NewInteractor(svc, store)

	if err := interactor.Rehydrate(context.Background()); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	active, _ := interactor.Active(context.Background())
	completed, _ := interactor.Completed(context.Background())
	if len(active) != 1 || active[0].StudentName != "Ama" {
		t.Fatalf("active not rehydrated: %+v", active)
	}
	if len(completed) != 1 || completed[0].Seconds != 3600 {
		t.Fatalf("completed not rehydrated: %+v", completed)
	}
}

func TestMutationsMirrorToLogStore(t *testing.T) {
	t.Parallel()
	store := &fakeLogStore{}
	svc := service.NewSessionService(&fakeClock{values: []time.Time{at(9, 0), at(10, 0)}}, fixedID{"s1"})
	interactor := usecase.NewInteractor(svc, store)
	ctx := context.Background()

	signedIn, err := interactor.TimeIn(ctx, dto.TimeInInput{StudentName: "Ama", Level: 100})
	if err != nil {
		t.Fatalf("time in: %v", err)
	}
	if store.replaceActiveCalls != 1 || len(store.active) != 1 {
		t.Fatalf("time in did not mirror active collection")
	}

	result, err := interactor.TimeOut(ctx, signedIn.SessionID)
	if err != nil || !result.Completed {
		t.Fatalf("time out: result=%+v err=%v", result, err)
	}
	if store.replaceActiveCalls != 2 || store.replaceCompletedCalls != 1 {
		t.Fatalf("time out must mirror both collections, calls=%d/%d",
			store.replaceActiveCalls, store.replaceCompletedCalls)
	}
	if len(store.active) != 0 || len(store.completed) != 1 {
		t.Fatalf("mirror out of sync: active=%d completed=%d", len(store.active), len(store.completed))
	}
}

func TestMirrorFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()
	store := &fakeLogStore{failReplace: true}
	svc := service.NewSessionService(&fakeClock{values: []time.Time{at(9, 0)}}, fixedID{"s1"})
	interactor := usecase.NewInteractor(svc, store)

	if _, err := interactor.TimeIn(context.Background(), dto.TimeInInput{StudentName: "Ama", Level: 100}); err != nil {
		t.Fatalf("a broken mirror must not fail the sign-in: %v", err)
	}
	active, _ := interactor.Active(context.Background())
	if len(active) != 1 {
		t.Fatalf("sign-in not recorded in memory")
	}
}

func TestTimeOutUnknownIDReportsNotCompleted(t *testing.T) {
	t.Parallel()
	store := &fakeLogStore{}
	svc := service.NewSessionService(&fakeClock{values: []time.Time{at(9, 0)}}, fixedID{"s1"})
	interactor := usecase.NewInteractor(svc, store)

	result, err := interactor.TimeOut(context.Background(), "missing")
	if err != nil {
		t.Fatalf("time out: %v", err)
	}
	if result.Completed {
		t.Fatalf("unknown id must report Completed=false")
	}
	if store.replaceCompletedCalls != 0 {
		t.Fatalf("a no-op must not touch the mirror")
	}
}

func TestNilStoreIsOptional(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(&fakeClock{values: []time.Time{at(9, 0)}}, fixedID{"s1"})
	interactor := usecase.NewInteractor(svc, nil)
	ctx := context.Background()

	if err := interactor.Rehydrate(ctx); err != nil {
		t.Fatalf("rehydrate without a mirror: %v", err)
	}
	if _, err := interactor.TimeIn(ctx, dto.TimeInInput{StudentName: "Ama", Level: 100}); err != nil {
		t.Fatalf("time in without a mirror: %v", err)
	}
}
