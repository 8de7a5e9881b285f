package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libtrack/internal/modules/assistant/domain"
	"libtrack/internal/modules/assistant/port/out"
	"libtrack/internal/platform/clock"
)

var ErrEmptyQuestion = errors.New("question is empty")

// Interactor serializes the current session snapshot with the operator's
// question and forwards both to the generator. Failures surface to the
// caller as errors and never touch the session store.
type Interactor struct {
	clock     clock.Clock
	source    out.SessionSource
	generator out.Generator
}

func NewInteractor(clk clock.Clock, source out.SessionSource, generator out.Generator) *Interactor {
	return &Interactor{clock: clk, source: source, generator: generator}
}

func (i *Interactor) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	active, err := i.source.ActiveSessions(ctx)
	if err != nil {
		return "", fmt.Errorf("load active sessions: %w", err)
	}
	completed, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return "", fmt.Errorf("load completed sessions: %w", err)
	}

	prompt, err := domain.BuildPrompt(domain.Snapshot{
		ActiveSessions:    active,
		CompletedSessions: completed,
	}, question)
	if err != nil {
		return "", err
	}
	return i.generator.Generate(ctx, domain.SystemInstruction(i.clock.Now()), prompt)
}
