package out

import (
	"context"

	sessiondomain "libtrack/internal/modules/session/domain"
)

// SessionSource supplies read-only snapshots of the session collections.
// The session module implements it; everything derived here is computed
// fresh from the snapshot on every call.
type SessionSource interface {
	ActiveSessions(ctx context.Context) ([]sessiondomain.ActiveSession, error)
	CompletedSessions(ctx context.Context) ([]sessiondomain.CompletedSession, error)
}
