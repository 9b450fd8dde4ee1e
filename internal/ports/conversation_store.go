package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Port: a boundary for per-session conversation state.
// Implementations bound history length and expire idle sessions.
type ConversationStore interface {
	// Append one turn to a session's history.
	Append(ctx context.Context, sessionID string, entry domain.ConversationEntry) error

	// Retrieve a session's history, oldest first.
	History(ctx context.Context, sessionID string) ([]domain.ConversationEntry, error)

	// Clear discards all history for a session.
	Clear(ctx context.Context, sessionID string) error
}
