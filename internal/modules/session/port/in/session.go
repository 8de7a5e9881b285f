package in

import (
	"context"

	"libtrack/internal/modules/session/dto"
)

type Usecase interface {
	TimeIn(ctx context.Context, input dto.TimeInInput) (dto.TimeInOutput, error)
	TimeOut(ctx context.Context, sessionID string) (dto.TimeOutOutput, error)
	AddCompleted(ctx context.Context, input dto.CompletedInput) (dto.CompletedSessionOutput, error)
	UpdateCompleted(ctx context.Context, sessionID string, input dto.CompletedInput) error
	DeleteCompleted(ctx context.Context, sessionID string) error
	Active(ctx context.Context) ([]dto.ActiveSessionOutput, error)
	Completed(ctx context.Context) ([]dto.CompletedSessionOutput, error)
}
