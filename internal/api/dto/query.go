package dto

type QueryRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type QueryResponse struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Answer    string `json:"answer"`
	Data      any    `json:"data,omitempty"`
}
