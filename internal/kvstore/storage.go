// Package kvstore defines the key-value persistence contract the task store
// writes through, plus in-memory and file-backed implementations. The sqlite
// implementation lives in internal/database/repository.
package kvstore

import (
	"context"
	"errors"
)

// DefaultKey is the single key the whole task list is stored under.
const DefaultKey = "tasks"

// ErrInvalidKey is returned for keys a backend cannot address.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage reads and writes opaque string values by key. Read reports ok=false
// with a nil error when the key is absent.
type Storage interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}
