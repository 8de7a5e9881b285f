package out

import (
	"context"

	"libtrack/internal/modules/session/domain"
)

// LogStore mirrors the in-memory collections so separate CLI invocations
// can rehydrate the store and external tools can query the log. The
// in-memory store remains the source of truth; mirror failures must not
// fail a store mutation.
type LogStore interface {
	LoadActive(ctx context.Context) ([]domain.ActiveSession, error)
	LoadCompleted(ctx context.Context) ([]domain.CompletedSession, error)
	ReplaceActive(ctx context.Context, sessions []domain.ActiveSession) error
	ReplaceCompleted(ctx context.Context, sessions []domain.CompletedSession) error
}
