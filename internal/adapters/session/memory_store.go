package session

import (
	"context"
	"delivery-optimizer/internal/domain"
	"errors"
	"sync"
	"time"
)

type memorySession struct {
	entries []domain.ConversationEntry
	touched time.Time
}

// MemoryStore keeps conversation history in process memory. It serves
// single-instance deployments where no Redis is configured; state is
// lost on restart. Expired sessions are dropped lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, entry domain.ConversationEntry) error {
	if sessionID == "" {
		return errors.New("session append: session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}

	sess.entries = append(sess.entries, entry)
	if len(sess.entries) > historyCap {
		sess.entries = sess.entries[len(sess.entries)-historyCap:]
	}
	sess.touched = s.now()

	return nil
}

func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]domain.ConversationEntry, error) {
	if sessionID == "" {
		return nil, errors.New("session history: session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		return []domain.ConversationEntry{}, nil
	}

	out := make([]domain.ConversationEntry, len(sess.entries))
	copy(out, sess.entries)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("session clear: session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// live returns the session if it exists and has not expired.
// Callers must hold the mutex.
func (s *MemoryStore) live(sessionID string) *memorySession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(sess.touched) > s.ttl {
		delete(s.sessions, sessionID)
		return nil
	}
	return sess
}
