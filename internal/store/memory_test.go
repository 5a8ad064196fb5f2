package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/hyeonlab/pagelink/internal/shortener"
	"github.com/hyeonlab/pagelink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLinkStore_GetSet(t *testing.T) {
	t.Run("returns the stored value", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		require.NoError(t, s.Set(context.Background(), "su:abc", "/page", time.Hour))

		value, err := s.Get(context.Background(), "su:abc")

		require.NoError(t, err)
		assert.Equal(t, "/page", value)
	})

	t.Run("returns ErrNotFound for missing keys", func(t *testing.T) {
		s := store.NewMemoryLinkStore()

		_, err := s.Get(context.Background(), "su:missing")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("set overwrites unconditionally", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		_ = s.Set(context.Background(), "su:abc", "/old", time.Hour)

		require.NoError(t, s.Set(context.Background(), "su:abc", "/new", time.Hour))

		value, _ := s.Get(context.Background(), "su:abc")
		assert.Equal(t, "/new", value)
	})

	t.Run("expired keys behave as missing", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		_ = s.Set(context.Background(), "su:abc", "/page", 30*time.Millisecond)

		time.Sleep(50 * time.Millisecond)

		_, err := s.Get(context.Background(), "su:abc")
		assert.ErrorIs(t, err, shortener.ErrNotFound)

		exists, err := s.Exists(context.Background(), "su:abc")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMemoryLinkStore_SetNX(t *testing.T) {
	t.Run("claims a free key", func(t *testing.T) {
		s := store.NewMemoryLinkStore()

		claimed, err := s.SetNX(context.Background(), "su:abc", "/page", time.Hour)

		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("refuses a taken key without touching its value", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		_, _ = s.SetNX(context.Background(), "su:abc", "/first", time.Hour)

		claimed, err := s.SetNX(context.Background(), "su:abc", "/second", time.Hour)

		require.NoError(t, err)
		assert.False(t, claimed)

		value, _ := s.Get(context.Background(), "su:abc")
		assert.Equal(t, "/first", value)
	})

	t.Run("reclaims an expired key", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		_, _ = s.SetNX(context.Background(), "su:abc", "/first", 30*time.Millisecond)

		time.Sleep(50 * time.Millisecond)

		claimed, err := s.SetNX(context.Background(), "su:abc", "/second", time.Hour)

		require.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestMemoryLinkStore_Expire(t *testing.T) {
	t.Run("extends the deadline of a live key", func(t *testing.T) {
		s := store.NewMemoryLinkStore()
		_ = s.Set(context.Background(), "su:abc", "/page", 50*time.Millisecond)

		ok, err := s.Expire(context.Background(), "su:abc", time.Hour)

		require.NoError(t, err)
		assert.True(t, ok)

		time.Sleep(70 * time.Millisecond)

		_, err = s.Get(context.Background(), "su:abc")
		assert.NoError(t, err, "key should have outlived its original ttl")
	})

	t.Run("reports false for missing keys", func(t *testing.T) {
		s := store.NewMemoryLinkStore()

		ok, err := s.Expire(context.Background(), "su:missing", time.Hour)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}
