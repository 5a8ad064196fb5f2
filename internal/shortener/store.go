package shortener

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no live value in the store.
var ErrNotFound = errors.New("not found")

// Store is the key-value contract the service needs. Implementations
// own their own timeouts and connectivity handling; errors other than
// ErrNotFound pass through the service untranslated.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes key unconditionally with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX writes key only if it does not already exist. It reports
	// whether the write happened. This is the sole synchronization
	// point for code allocation.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Expire resets the TTL on key, reporting whether the key existed.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Exists reports whether key currently has a live value.
	Exists(ctx context.Context, key string) (bool, error)
}
