package usecase

import (
	"context"
	"fmt"
	"io"
	"os"

	"libtrack/internal/modules/session/domain"
	"libtrack/internal/modules/session/dto"
	"libtrack/internal/modules/session/port/out"
	"libtrack/internal/modules/session/service"
)

// Interactor exposes the session operations to adapters. After every
// mutation the in-memory collections are mirrored to the log store;
// the memory store is the source of truth, so a mirror error surfaces
// as a warning and never fails the mutation.
type Interactor struct {
	service *service.SessionService
	store   out.LogStore
	warn    io.Writer
}

func NewInteractor(svc *service.SessionService, store out.LogStore) *Interactor {
	return &Interactor{service: svc, store: store, warn: os.Stderr}
}

// Rehydrate seeds the store from the mirror. A load error leaves the
// collections empty, matching a first run.
func (i *Interactor) Rehydrate(ctx context.Context) error {
	if i.store == nil {
		return nil
	}
	active, err := i.store.LoadActive(ctx)
	if err != nil {
		return err
	}
	completed, err := i.store.LoadCompleted(ctx)
	if err != nil {
		return err
	}
	i.service.Seed(active, completed)
	return nil
}

func (i *Interactor) TimeIn(ctx context.Context, input dto.TimeInInput) (dto.TimeInOutput, error) {
	session, err := i.service.TimeIn(input.StudentName, input.Level)
	if err != nil {
		return dto.TimeInOutput{}, err
	}
	i.mirrorActive(ctx)
	return dto.TimeInOutput{
		SessionID:   session.ID,
		StudentName: session.StudentName,
		Level:       session.Level,
		TimeIn:      session.TimeIn,
	}, nil
}

func (i *Interactor) TimeOut(ctx context.Context, sessionID string) (dto.TimeOutOutput, error) {
	completed, ok := i.service.TimeOut(sessionID)
	if !ok {
		return dto.TimeOutOutput{Completed: false, SessionID: sessionID}, nil
	}
	i.mirrorActive(ctx)
	i.mirrorCompleted(ctx)
	return dto.TimeOutOutput{Completed: true, SessionID: completed.ID}, nil
}

func (i *Interactor) AddCompleted(ctx context.Context, input dto.CompletedInput) (dto.CompletedSessionOutput, error) {
	session, err := i.service.AddCompleted(input.StudentName, input.Level, input.TimeIn, input.TimeOut, input.Notes)
	if err != nil {
		return dto.CompletedSessionOutput{}, err
	}
	i.mirrorCompleted(ctx)
	return toCompletedOutput(session), nil
}

func (i *Interactor) UpdateCompleted(ctx context.Context, sessionID string, input dto.CompletedInput) error {
	if err := i.service.UpdateCompleted(sessionID, input.StudentName, input.Level, input.TimeIn, input.TimeOut, input.Notes); err != nil {
		return err
	}
	i.mirrorCompleted(ctx)
	return nil
}

func (i *Interactor) DeleteCompleted(ctx context.Context, sessionID string) error {
	i.service.DeleteCompleted(sessionID)
	i.mirrorCompleted(ctx)
	return nil
}

func (i *Interactor) Active(ctx context.Context) ([]dto.ActiveSessionOutput, error) {
	sessions := i.service.Active()
	outputs := make([]dto.ActiveSessionOutput, 0, len(sessions))
	for _, s := range sessions {
		outputs = append(outputs, dto.ActiveSessionOutput{
			SessionID:   s.ID,
			StudentName: s.StudentName,
			Level:       s.Level,
			TimeIn:      s.TimeIn,
		})
	}
	return outputs, nil
}

func (i *Interactor) Completed(ctx context.Context) ([]dto.CompletedSessionOutput, error) {
	sessions := i.service.Completed()
	outputs := make([]dto.CompletedSessionOutput, 0, len(sessions))
	for _, s := range sessions {
		outputs = append(outputs, toCompletedOutput(s))
	}
	return outputs, nil
}

func (i *Interactor) mirrorActive(ctx context.Context) {
	if i.store == nil {
		return
	}
	if err := i.store.ReplaceActive(ctx, i.service.Active()); err != nil {
		fmt.Fprintf(i.warn, "warning: could not mirror active sessions: %v\n", err)
	}
}

func (i *Interactor) mirrorCompleted(ctx context.Context) {
	if i.store == nil {
		return
	}
	if err := i.store.ReplaceCompleted(ctx, i.service.Completed()); err != nil {
		fmt.Fprintf(i.warn, "warning: could not mirror completed sessions: %v\n", err)
	}
}

func toCompletedOutput(s domain.CompletedSession) dto.CompletedSessionOutput {
	return dto.CompletedSessionOutput{
		SessionID:   s.ID,
		StudentName: s.StudentName,
		Level:       s.Level,
		TimeIn:      s.TimeIn,
		TimeOut:     s.TimeOut,
		Seconds:     s.Duration.TotalSeconds(),
		Notes:       s.Notes,
	}
}
