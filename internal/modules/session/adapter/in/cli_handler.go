package in

import (
	"context"
	"time"

	sessiondto "libtrack/internal/modules/session/dto"
	sessionin "libtrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) TimeIn(ctx context.Context, studentName string, level int) (sessiondto.TimeInOutput, error) {
	return h.usecase.TimeIn(ctx, sessiondto.TimeInInput{StudentName: studentName, Level: level})
}

func (h CLIHandler) TimeOut(ctx context.Context, sessionID string) (sessiondto.TimeOutOutput, error) {
	return h.usecase.TimeOut(ctx, sessionID)
}

func (h CLIHandler) AddCompleted(ctx context.Context, studentName string, level int, timeIn, timeOut time.Time, notes string) (sessiondto.CompletedSessionOutput, error) {
	return h.usecase.AddCompleted(ctx, sessiondto.CompletedInput{
		StudentName: studentName,
		Level:       level,
		TimeIn:      timeIn,
		TimeOut:     timeOut,
		Notes:       notes,
	})
}

func (h CLIHandler) UpdateCompleted(ctx context.Context, sessionID, studentName string, level int, timeIn, timeOut time.Time, notes string) error {
	return h.usecase.UpdateCompleted(ctx, sessionID, sessiondto.CompletedInput{
		StudentName: studentName,
		Level:       level,
		TimeIn:      timeIn,
		TimeOut:     timeOut,
		Notes:       notes,
	})
}

func (h CLIHandler) DeleteCompleted(ctx context.Context, sessionID string) error {
	return h.usecase.DeleteCompleted(ctx, sessionID)
}

func (h CLIHandler) Active(ctx context.Context) ([]sessiondto.ActiveSessionOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Completed(ctx context.Context) ([]sessiondto.CompletedSessionOutput, error) {
	return h.usecase.Completed(ctx)
}
