package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"libtrack/internal/modules/session/domain"
	"libtrack/internal/modules/session/dto"
	"libtrack/internal/modules/session/service"
)

type tickClock struct{ now time.Time }

func (c tickClock) Now() time.Time { return c.now }

type countID struct{ n int }

func (g *countID) New() string {
	g.n++
	return "id-" + strings.Repeat("x", g.n)
}

type brokenStore struct{}

func (brokenStore) LoadActive(context.Context) ([]domain.ActiveSession, error) {
	return nil, nil
}

func (brokenStore) LoadCompleted(context.Context) ([]domain.CompletedSession, error) {
	return nil, nil
}

func (brokenStore) ReplaceActive(context.Context, []domain.ActiveSession) error {
	return errors.New("disk full")
}

func (brokenStore) ReplaceCompleted(context.Context, []domain.CompletedSession) error {
	return errors.New("disk full")
}

func TestMirrorFailureWarnsButDoesNotFailMutation(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(tickClock{now: time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)}, &countID{})
	var warnings bytes.Buffer
	interactor := &Interactor{service: svc, store: brokenStore{}, warn: &warnings}

	out, err := interactor.TimeIn(context.Background(), dto.TimeInInput{StudentName: "Ama", Level: 200})
	if err != nil {
		t.Fatalf("time in: %v", err)
	}
	if out.StudentName != "Ama" {
		t.Fatalf("student = %q, want Ama", out.StudentName)
	}
	if !strings.Contains(warnings.String(), "could not mirror active sessions") {
		t.Fatalf("warning output = %q, want a mirror warning", warnings.String())
	}
	if !strings.Contains(warnings.String(), "disk full") {
		t.Errorf("warning output should carry the store error, got %q", warnings.String())
	}
}
