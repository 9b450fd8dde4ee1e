package session

import (
	"context"
	"delivery-optimizer/internal/domain"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func entry(text string) domain.ConversationEntry {
	return domain.ConversationEntry{Role: "user", Text: text, At: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Hour)
	defer store.Close()

	ctx := context.Background()
	for _, text := range []string{"first", "second", "third"} {
		if err := store.Append(ctx, "s1", entry(text)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Text != "first" || got[2].Text != "third" {
		t.Fatalf("order wrong: %+v", got)
	}
	if got[0].Role != "user" || !got[0].At.Equal(entry("first").At) {
		t.Fatalf("entry fields lost: %+v", got[0])
	}

	// Other sessions stay empty.
	other, err := store.History(ctx, "s2")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty history for s2, got %d", len(other))
	}
}

func TestRedisStoreTrimsToCap(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Hour)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < historyCap+5; i++ {
		if err := store.Append(ctx, "s1", entry(fmt.Sprintf("turn-%d", i))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != historyCap {
		t.Fatalf("expected %d entries, got %d", historyCap, len(got))
	}
	// The oldest five turns were trimmed.
	if got[0].Text != "turn-5" {
		t.Fatalf("first entry = %q, want turn-5", got[0].Text)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Minute)
	defer store.Close()

	ctx := context.Background()
	if err := store.Append(ctx, "s1", entry("hello")); err != nil {
		t.Fatalf("append: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired session, got %d entries", len(got))
	}
}

func TestRedisStoreClear(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Hour)
	defer store.Close()

	ctx := context.Background()
	if err := store.Append(ctx, "s1", entry("hello")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected cleared session, got %d entries", len(got))
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	for i := 0; i < historyCap+5; i++ {
		if err := store.Append(ctx, "s1", entry(fmt.Sprintf("turn-%d", i))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != historyCap {
		t.Fatalf("expected %d entries, got %d", historyCap, len(got))
	}
	if got[0].Text != "turn-5" {
		t.Fatalf("first entry = %q, want turn-5", got[0].Text)
	}

	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = store.History(ctx, "s1")
	if len(got) != 0 {
		t.Fatalf("expected cleared session, got %d entries", len(got))
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Append(ctx, "s1", entry("hello")); err != nil {
		t.Fatalf("append: %v", err)
	}

	now = now.Add(2 * time.Minute)

	got, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired session, got %d entries", len(got))
	}
}

func TestStoreRejectsEmptySessionID(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if err := store.Append(ctx, "", entry("x")); err == nil {
		t.Fatalf("expected error for empty session id on append")
	}
	if _, err := store.History(ctx, ""); err == nil {
		t.Fatalf("expected error for empty session id on history")
	}
	if err := store.Clear(ctx, ""); err == nil {
		t.Fatalf("expected error for empty session id on clear")
	}
}
