package out

import (
	"context"

	sessiondomain "libtrack/internal/modules/session/domain"
	statsout "libtrack/internal/modules/stats/port/out"
)

// SessionStore is the slice of the session store the analytics read.
// The in-memory store satisfies it directly.
type SessionStore interface {
	Active() []sessiondomain.ActiveSession
	Completed() []sessiondomain.CompletedSession
}

// StoreSessionSource feeds the analytics from the live in-memory store.
type StoreSessionSource struct {
	store SessionStore
}

func NewStoreSessionSource(store SessionStore) statsout.SessionSource {
	return StoreSessionSource{store: store}
}

func (s StoreSessionSource) ActiveSessions(context.Context) ([]sessiondomain.ActiveSession, error) {
	return s.store.Active(), nil
}

func (s StoreSessionSource) CompletedSessions(context.Context) ([]sessiondomain.CompletedSession, error) {
	return s.store.Completed(), nil
}
