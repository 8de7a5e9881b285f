package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"libtrack/internal/modules/assistant/usecase"
	sessiondomain "libtrack/internal/modules/session/domain"
)

type stubClock struct{ now time.Time }

func (s stubClock) Now() time.Time { return s.now }

type stubSource struct {
	active    []sessiondomain.ActiveSession
	completed []sessiondomain.CompletedSession
}

func (s stubSource) ActiveSessions(context.Context) ([]sessiondomain.ActiveSession, error) {
	return s.active, nil
}

func (s stubSource) CompletedSessions(context.Context) ([]sessiondomain.CompletedSession, error) {
	return s.completed, nil
}

type stubGenerator struct {
	system string
	prompt string
	reply  string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	s.system, s.prompt = system, prompt
	return s.reply, s.err
}

func TestAskForwardsSnapshotAndQuestion(t *testing.T) {
	t.Parallel()
	gen := &stubGenerator{reply: "Ama is here."}
	source := stubSource{active: []sessiondomain.ActiveSession{{
		ID: "a1", StudentName: "Ama", Level: 200,
		TimeIn: time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC),
	}}}
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	interactor := usecase.NewInteractor(stubClock{now}, source, gen)

	answer, err := interactor.Ask(context.Background(), "  Who is here?  ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "Ama is here." {
		t.Fatalf("answer = %q", answer)
	}
	if !strings.Contains(gen.system, "10:00:00") {
		t.Fatalf("system instruction missing current time:\n%s", gen.system)
	}
	if !strings.Contains(gen.prompt, `"studentName":"Ama"`) {
		t.Fatalf("prompt missing snapshot:\n%s", gen.prompt)
	}
	if !strings.HasSuffix(gen.prompt, "QUESTION:\nWho is here?") {
		t.Fatalf("question must be trimmed, got:\n%s", gen.prompt)
	}
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	t.Parallel()
	gen := &stubGenerator{}
	interactor := usecase.NewInteractor(stubClock{time.Now()}, stubSource{}, gen)

	if _, err := interactor.Ask(context.Background(), "   "); !errors.Is(err, usecase.ErrEmptyQuestion) {
		t.Fatalf("got %v, want ErrEmptyQuestion", err)
	}
	if gen.prompt != "" {
		t.Fatalf("blank question must not reach the generator")
	}
}

func TestAskPropagatesGeneratorError(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("offline")
	interactor := usecase.NewInteractor(stubClock{time.Now()}, stubSource{}, &stubGenerator{err: wantErr})

	if _, err := interactor.Ask(context.Background(), "hi"); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want generator error", err)
	}
}
