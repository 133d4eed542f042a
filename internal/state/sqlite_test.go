package state

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	tests := []struct {
		name   string
		chatID int64
		key    string
		value  string
	}{
		{name: "token", chatID: 100, key: KeyToken, value: "tok-1"},
		{name: "username", chatID: 100, key: KeyUsername, value: "alice"},
		{name: "view selection", chatID: 100, key: KeyCurrentPage, value: "favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(ctx, tt.chatID, tt.key, tt.value); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok, err := s.Get(ctx, tt.chatID, tt.key)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !ok {
				t.Fatal("expected key to be present")
			}
			if diff := cmp.Diff(tt.value, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	got, ok, err := s.Get(ctx, 100, KeyToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || got != "" {
		t.Errorf("Get missing key = (%q, %v), want (\"\", false)", got, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	if err := s.Set(ctx, 100, KeyCurrentPage, "main"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, 100, KeyCurrentPage, "myStories"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, _, err := s.Get(ctx, 100, KeyCurrentPage)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "myStories" {
		t.Errorf("value = %q, want myStories", got)
	}
}

func TestChatScoping(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	if err := s.Set(ctx, 100, KeyToken, "tok-alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, 200, KeyToken, "tok-bob"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, _, _ := s.Get(ctx, 100, KeyToken)
	if got != "tok-alice" {
		t.Errorf("chat 100 token = %q, want tok-alice", got)
	}
	got, _, _ = s.Get(ctx, 200, KeyToken)
	if got != "tok-bob" {
		t.Errorf("chat 200 token = %q, want tok-bob", got)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	if err := s.Set(ctx, 100, KeyToken, "tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(ctx, 100, KeyToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, 100, KeyToken); ok {
		t.Error("expected key to be gone")
	}

	// deleting again is a no-op
	if err := s.Delete(ctx, 100, KeyToken); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	for _, key := range []string{KeyToken, KeyUsername, KeyCurrentPage} {
		if err := s.Set(ctx, 100, key, "x"); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := s.Set(ctx, 200, KeyToken, "other-chat"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Clear(ctx, 100); err != nil {
		t.Fatalf("clear: %v", err)
	}

	for _, key := range []string{KeyToken, KeyUsername, KeyCurrentPage} {
		if _, ok, _ := s.Get(ctx, 100, key); ok {
			t.Errorf("key %s survived clear", key)
		}
	}

	// other chats are untouched
	if got, _, _ := s.Get(ctx, 200, KeyToken); got != "other-chat" {
		t.Errorf("chat 200 token = %q, want other-chat", got)
	}
}
