package repositories

import (
	"context"
	"database/sql"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the HistoryRepository port.
// Expects a query_history table with a BIGSERIAL id and TIMESTAMPTZ
// created_at.
type SQLHistoryRepository struct{ DB *sql.DB }

func NewSQLHistoryRepository(db *sql.DB) *SQLHistoryRepository {
	return &SQLHistoryRepository{DB: db}
}

// Record stores one answered query and backfills the generated id.
func (s *SQLHistoryRepository) Record(ctx context.Context, rec *domain.QueryRecord) (err error) {
	defer obs.Time(ctx, "history.Record")(&err)

	if s.DB == nil {
		return errors.New("sql history repository: DB is nil")
	}
	if rec == nil {
		return errors.New("record history: record is nil")
	}
	if rec.SessionID == "" {
		return errors.New("record history: session id must not be empty")
	}

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query := `
	INSERT INTO query_history (session_id, kind, query, answer, created_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query,
		rec.SessionID, rec.Kind, rec.Query, rec.Answer, created.UTC(),
	).Scan(&id); err != nil {
		return fmt.Errorf("record history: insert row: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = created

	return nil
}

// ListBySession returns the most recent records for a session, newest first.
func (s *SQLHistoryRepository) ListBySession(
	ctx context.Context,
	sessionID string,
	limit int,
) (_ []*domain.QueryRecord, err error) {
	defer obs.Time(ctx, "history.ListBySession")(&err)

	if s.DB == nil {
		return nil, errors.New("sql history repository: DB is nil")
	}
	if sessionID == "" {
		return nil, errors.New("list history: session id must not be empty")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
	SELECT id, session_id, kind, query, answer, created_at
	FROM query_history
	WHERE session_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2;
	`
	rows, err := s.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query query_history table: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.QueryRecord, 0, limit)
	for rows.Next() {
		var rec domain.QueryRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Kind, &rec.Query, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list history: scan row: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: row iteration: %w", err)
	}

	return records, nil
}
