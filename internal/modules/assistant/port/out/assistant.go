package out

import (
	"context"

	sessiondomain "libtrack/internal/modules/session/domain"
)

// Generator is the external text-generation collaborator: one text
// payload in, free text out. No contract on the response shape.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// SessionSource supplies the snapshot serialized into every prompt.
type SessionSource interface {
	ActiveSessions(ctx context.Context) ([]sessiondomain.ActiveSession, error)
	CompletedSessions(ctx context.Context) ([]sessiondomain.CompletedSession, error)
}
