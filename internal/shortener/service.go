package shortener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is how long a short link lives without being shortened or
// resolved again.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultKeyPrefix namespaces all shortener keys in the store.
const DefaultKeyPrefix = "su:"

// maxAllocationAttempts bounds the candidate-code loop. There is no
// backoff between attempts; exhaustion is a transient condition the
// caller retries.
const maxAllocationAttempts = 8

var (
	// ErrEmptyURL is returned when the input URL is empty after trimming.
	ErrEmptyURL = errors.New("url is required")

	// ErrCrossOrigin is returned when the target URL points at a
	// different origin than the request came from.
	ErrCrossOrigin = errors.New("only same-origin urls are allowed")

	// ErrCodeSpaceBusy is returned when every candidate code in a
	// create attempt was already taken.
	ErrCodeSpaceBusy = errors.New("could not allocate short code")
)

// Link is a live short-code to path mapping.
type Link struct {
	Code string
	Path string
}

// Service maps short codes to same-origin paths in a shared key-value
// store. It holds no state of its own; concurrent instances coordinate
// purely through the store's SetNX primitive.
type Service struct {
	store     Store
	generator Generator
	prefix    string
	ttl       time.Duration
}

// NewService creates a shortener service on the given store and code
// generator. A zero ttl or empty prefix falls back to the defaults.
func NewService(store Store, generator Generator, prefix string, ttl time.Duration) *Service {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		store:     store,
		generator: generator,
		prefix:    prefix,
		ttl:       ttl,
	}
}

func (s *Service) forwardKey(code string) string {
	return s.prefix + code
}

func (s *Service) reverseKey(path string) string {
	return s.prefix + "path:" + path
}

// CreateShortLink validates rawURL against origin, normalizes it to a
// path, and returns a short link for it. Shortening the same path again
// while its mapping is live returns the existing code with created=false
// and refreshes the TTL on both mappings.
func (s *Service) CreateShortLink(ctx context.Context, origin, rawURL string) (*Link, bool, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return nil, false, ErrEmptyURL
	}

	if !SameOrigin(origin, raw) {
		return nil, false, ErrCrossOrigin
	}

	path := NormalizePath(raw)

	if link, ok, err := s.lookupExisting(ctx, path); err != nil {
		return nil, false, err
	} else if ok {
		return link, false, nil
	}

	link, err := s.allocate(ctx, path)
	if err != nil {
		return nil, false, err
	}

	return link, true, nil
}

// lookupExisting checks the reverse mapping for path. A reverse hit is
// only honored while its forward mapping is still live; a stale reverse
// entry is left for the allocation path to overwrite.
func (s *Service) lookupExisting(ctx context.Context, path string) (*Link, bool, error) {
	code, err := s.store.Get(ctx, s.reverseKey(path))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	live, err := s.store.Exists(ctx, s.forwardKey(code))
	if err != nil {
		return nil, false, err
	}

	if !live {
		return nil, false, nil
	}

	// Sliding expiration: both mappings renew together
	if _, err := s.store.Expire(ctx, s.forwardKey(code), s.ttl); err != nil {
		return nil, false, err
	}

	if _, err := s.store.Expire(ctx, s.reverseKey(path), s.ttl); err != nil {
		return nil, false, err
	}

	return &Link{Code: code, Path: path}, true, nil
}

// allocate claims a fresh code for path. SetNX on the forward key is
// what guarantees a live code is never reassigned; the reverse write
// that follows is deliberately not atomic with it (see the concurrency
// note on Service).
func (s *Service) allocate(ctx context.Context, path string) (*Link, error) {
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		code, err := s.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("allocate short code: %w", err)
		}

		claimed, err := s.store.SetNX(ctx, s.forwardKey(code), path, s.ttl)
		if err != nil {
			return nil, err
		}

		if !claimed {
			continue
		}

		if err := s.store.Set(ctx, s.reverseKey(path), code, s.ttl); err != nil {
			return nil, err
		}

		return &Link{Code: code, Path: path}, nil
	}

	return nil, ErrCodeSpaceBusy
}

// ResolveShortLink returns the path stored under code, refreshing its
// TTL so popular links stay alive. Unknown or expired codes return
// ErrNotFound.
func (s *Service) ResolveShortLink(ctx context.Context, code string) (string, error) {
	path, err := s.store.Get(ctx, s.forwardKey(code))
	if err != nil {
		return "", err
	}

	if _, err := s.store.Expire(ctx, s.forwardKey(code), s.ttl); err != nil {
		return "", err
	}

	return path, nil
}
