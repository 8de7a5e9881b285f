package signin

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "libtrack/internal/modules/session/dto"
	apperrors "libtrack/internal/platform/errors"
)

type stubPort struct {
	completed []sessiondto.CompletedSessionOutput
}

func (s stubPort) TimeIn(_ context.Context, input sessiondto.TimeInInput) (sessiondto.TimeInOutput, error) {
	return sessiondto.TimeInOutput{StudentName: input.StudentName, Level: input.Level}, nil
}

func (s stubPort) Completed(context.Context) ([]sessiondto.CompletedSessionOutput, error) {
	return s.completed, nil
}

func TestRecallsLastLevelForReturningStudent(t *testing.T) {
	t.Parallel()
	history := []sessiondto.CompletedSessionOutput{
		{StudentName: "Ama", Level: 300, TimeIn: time.Now()},
	}
	m := New(stubPort{completed: history})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(historyLoadedMsg{sessions: history})
	for _, r := range "ama" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got, want := levels[m.levelIdx], 300; got != want {
		t.Fatalf("selected level = %d after typing a returning name, want %d", got, want)
	}
	if !strings.Contains(m.View(), "recalled last level") {
		t.Errorf("view should mention the recalled level")
	}
}

func TestSignInErrorsMapToFriendlyStatus(t *testing.T) {
	t.Parallel()
	m := New(stubPort{})
	m, _ = m.Update(SignedInMsg{Err: apperrors.ErrEmptyName})
	if m.status != "enter a student name first" {
		t.Errorf("empty-name status = %q", m.status)
	}
	m, _ = m.Update(SignedInMsg{Err: apperrors.ErrStudentAlreadyActive})
	if m.status != "that student is already signed in" {
		t.Errorf("duplicate status = %q", m.status)
	}
}

func TestSuccessfulSignInClearsTheNameField(t *testing.T) {
	t.Parallel()
	m := New(stubPort{})
	m.name.SetValue("Ama")
	m, _ = m.Update(SignedInMsg{Out: sessiondto.TimeInOutput{StudentName: "Ama", Level: 100}})
	if m.name.Value() != "" {
		t.Fatalf("name field = %q after sign in, want empty", m.name.Value())
	}
	if !strings.Contains(m.status, "signed in Ama") {
		t.Errorf("status = %q, want a sign-in confirmation", m.status)
	}
}
