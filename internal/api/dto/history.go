package dto

import (
	"time"

	"delivery-optimizer/internal/domain"
)

type QueryRecordResponse struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

type ListHistoryResponse struct {
	Records []QueryRecordResponse `json:"records"`
}

type ConversationEntryResponse struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type SessionHistoryResponse struct {
	SessionID string                      `json:"session_id"`
	Entries   []ConversationEntryResponse `json:"entries"`
}

type ClearSessionRequest struct {
	SessionID string `json:"session_id"`
}

func NewListHistoryResponse(records []*domain.QueryRecord) ListHistoryResponse {
	res := ListHistoryResponse{Records: make([]QueryRecordResponse, 0, len(records))}
	for _, rec := range records {
		res.Records = append(res.Records, QueryRecordResponse{
			ID:        rec.ID,
			SessionID: rec.SessionID,
			Kind:      rec.Kind,
			Query:     rec.Query,
			Answer:    rec.Answer,
			CreatedAt: rec.CreatedAt,
		})
	}
	return res
}

func NewSessionHistoryResponse(sessionID string, entries []domain.ConversationEntry) SessionHistoryResponse {
	res := SessionHistoryResponse{
		SessionID: sessionID,
		Entries:   make([]ConversationEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, ConversationEntryResponse{Role: e.Role, Text: e.Text, At: e.At})
	}
	return res
}
