package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("storage is closed")

// Storage is the durable key/value port behind the save slot. Backends store
// opaque serialized records; a missing key reads as ("", nil).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, key string) error
}
