package domain

import "time"

// Represents a single answered query handled by the system.
// A QueryRecord has the session it belonged to, the resolved request
// kind, and the rendered answer. Records are write-once audit data
// populated after a query has been dispatched and answered.
type QueryRecord struct {
	ID        int64
	SessionID string
	Kind      string
	Query     string
	Answer    string
	CreatedAt time.Time
}

// One turn of a session conversation, kept in the session store.
type ConversationEntry struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
