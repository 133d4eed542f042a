// Package state defines the persisted key-value store that survives
// restarts, scoped per chat. It holds the credential pair and the
// current view selection.
package state

import "context"

// Well-known keys.
const (
	KeyToken       = "token"
	KeyUsername    = "username"
	KeyCurrentPage = "currentPage"
)

// Store is the interface for persisted per-chat key-value state.
// A missing key is a normal outcome, not an error.
type Store interface {
	Get(ctx context.Context, chatID int64, key string) (string, bool, error)
	Set(ctx context.Context, chatID int64, key, value string) error
	Delete(ctx context.Context, chatID int64, key string) error
	Clear(ctx context.Context, chatID int64) error

	Close() error
}
