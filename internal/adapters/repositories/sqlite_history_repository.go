package repositories

import (
	"context"
	"database/sql"
	"delivery-optimizer/internal/domain"
	"errors"
	"fmt"
	"time"
)

const defaultHistoryLimit = 20

// SQLite-backed implementation of the HistoryRepository port.
// Timestamps are stored as RFC 3339 text so lexicographic order
// matches chronological order.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

// Record stores one answered query and backfills the generated id.
func (s *SqliteHistoryRepository) Record(ctx context.Context, rec *domain.QueryRecord) error {
	if s.DB == nil {
		return errors.New("sqlite history repository: DB is nil")
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
	INSERT INTO query_history (
		session_id,
		kind,
		query,
		answer,
		created_at
	)
	VALUES (?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		rec.SessionID, rec.Kind, rec.Query, rec.Answer,
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record history: insert row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record history: last insert id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt = created

	return nil
}

// ListBySession returns the most recent records for a session, newest first.
func (s *SqliteHistoryRepository) ListBySession(
	ctx context.Context,
	sessionID string,
	limit int,
) ([]*domain.QueryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite history repository: DB is nil")
	}
	if sessionID == "" {
		return nil, errors.New("list history: session id must not be empty")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
	SELECT
		id,
		session_id,
		kind,
		query,
		answer,
		created_at
	FROM query_history
	WHERE session_id = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query query_history table: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.QueryRecord, 0, limit)
	for rows.Next() {
		var rec domain.QueryRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Kind, &rec.Query, &rec.Answer, &created); err != nil {
			return nil, fmt.Errorf("list history: scan row: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("list history: parse created_at %q: %w", created, err)
		}
		rec.CreatedAt = ts

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: row iteration: %w", err)
	}

	return records, nil
}
