package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/obs"
	"delivery-optimizer/internal/ports"

	"github.com/google/uuid"
)

// Phraser rewords a rendered answer into conversational prose. A
// failed or empty phrasing leaves the rendered text in place.
type Phraser interface {
	Phrase(ctx context.Context, query string, ans *Answer) (string, error)
}

// QueryResult is the complete outcome of one handled query.
type QueryResult struct {
	SessionID string
	Kind      Kind
	Answer    string
	Data      any
}

// Service handles queries end to end: parse, dispatch, phrase, and
// record. Session and history writes are best effort and never fail
// an otherwise answered query.
type Service struct {
	parser      Parser
	phraser     Phraser
	coordinator *Coordinator
	sessions    ports.ConversationStore
	history     ports.HistoryRepository
	now         func() time.Time
}

// NewService wires the query pipeline. phraser, sessions and history
// may be nil; the matching step is skipped.
func NewService(
	parser Parser,
	phraser Phraser,
	coordinator *Coordinator,
	sessions ports.ConversationStore,
	history ports.HistoryRepository,
) *Service {
	return &Service{
		parser:      parser,
		phraser:     phraser,
		coordinator: coordinator,
		sessions:    sessions,
		history:     history,
		now:         time.Now,
	}
}

// HandleQuery resolves one free-form query. An empty sessionID starts
// a fresh session; the assigned ID comes back in the result.
func (s *Service) HandleQuery(ctx context.Context, sessionID, query string) (*QueryResult, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	req, err := s.parser.Parse(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	ans, err := s.coordinator.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}
	obs.CountQuery(string(ans.Kind))

	text := ans.Text
	if s.phraser != nil {
		phrased, err := s.phraser.Phrase(ctx, query, ans)
		switch {
		case err != nil:
			log.Printf("phrase answer failed, keeping rendered text: %v", err)
		case phrased != "":
			text = phrased
		}
	}

	s.remember(ctx, sessionID, query, text, ans.Kind)

	return &QueryResult{
		SessionID: sessionID,
		Kind:      ans.Kind,
		Answer:    text,
		Data:      ans.Data,
	}, nil
}

// History returns the stored conversation for a session, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.ConversationEntry, error) {
	if s.sessions == nil {
		return nil, nil
	}
	return s.sessions.History(ctx, sessionID)
}

// Records returns the most recent answered queries for a session,
// newest first.
func (s *Service) Records(ctx context.Context, sessionID string, limit int) ([]*domain.QueryRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListBySession(ctx, sessionID, limit)
}

// ClearSession discards a session's conversation state.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Clear(ctx, sessionID)
}

func (s *Service) remember(ctx context.Context, sessionID, query, answer string, kind Kind) {
	at := s.now()

	if s.sessions != nil {
		turns := []domain.ConversationEntry{
			{Role: "user", Text: query, At: at},
			{Role: "assistant", Text: answer, At: at},
		}
		for _, turn := range turns {
			if err := s.sessions.Append(ctx, sessionID, turn); err != nil {
				log.Printf("session append failed session=%s: %v", sessionID, err)
				break
			}
		}
	}

	if s.history != nil {
		rec := &domain.QueryRecord{
			SessionID: sessionID,
			Kind:      string(kind),
			Query:     query,
			Answer:    answer,
			CreatedAt: at,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			log.Printf("history record failed session=%s: %v", sessionID, err)
		}
	}
}
