package session

import (
	"context"
	"delivery-optimizer/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions keep at most this many conversation turns.
const historyCap = 50

// RedisStore keeps per-session conversation history in Redis lists.
// Each append refreshes the session TTL, so sessions expire only after
// going idle. Histories are trimmed to the newest historyCap entries.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func sessionKey(id string) string { return "session:" + id }

func (s *RedisStore) Append(ctx context.Context, sessionID string, entry domain.ConversationEntry) error {
	if sessionID == "" {
		return errors.New("session append: session id must not be empty")
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("session append: marshal entry: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -historyCap, -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session append: %w", err)
	}

	return nil
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]domain.ConversationEntry, error) {
	if sessionID == "" {
		return nil, errors.New("session history: session id must not be empty")
	}

	vals, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("session history: %w", err)
	}

	entries := make([]domain.ConversationEntry, 0, len(vals))
	for _, v := range vals {
		var entry domain.ConversationEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("session history: unmarshal entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("session clear: session id must not be empty")
	}

	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
