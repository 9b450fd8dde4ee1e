package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Port: a boundary for durably recording answered queries.
type HistoryRepository interface {
	// Record stores one answered query.
	Record(ctx context.Context, rec *domain.QueryRecord) error

	// ListBySession retrieves the most recent records for a session,
	// newest first, up to limit.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.QueryRecord, error)
}
