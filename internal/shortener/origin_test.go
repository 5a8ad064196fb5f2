package shortener_test

import (
	"testing"

	"github.com/hyeonlab/pagelink/internal/shortener"
	"github.com/stretchr/testify/assert"
)

func TestSameOrigin(t *testing.T) {
	const origin = "http://mysite.com"

	t.Run("relative paths are always accepted", func(t *testing.T) {
		assert.True(t, shortener.SameOrigin(origin, "/foo"))
		assert.True(t, shortener.SameOrigin("https://other.example", "/foo"))
	})

	t.Run("matching absolute urls are accepted", func(t *testing.T) {
		assert.True(t, shortener.SameOrigin(origin, "http://mysite.com/x"))
		assert.True(t, shortener.SameOrigin(origin, "http://mysite.com/x?a=1"))
	})

	t.Run("cross-origin urls are rejected", func(t *testing.T) {
		assert.False(t, shortener.SameOrigin(origin, "http://evil.example/x"))
		assert.False(t, shortener.SameOrigin(origin, "https://mysite.com/x"), "scheme must match")
		assert.False(t, shortener.SameOrigin(origin, "http://mysite.com:8080/x"), "host must match exactly")
	})

	t.Run("urls without scheme or host are rejected", func(t *testing.T) {
		assert.False(t, shortener.SameOrigin(origin, "mysite.com/x"))
		assert.False(t, shortener.SameOrigin(origin, "foo"))
	})
}

func TestNormalizePath(t *testing.T) {
	t.Run("relative paths pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "/already/relative?x=1", shortener.NormalizePath("/already/relative?x=1"))
		assert.Equal(t, "/", shortener.NormalizePath("/"))
	})

	t.Run("absolute urls reduce to path plus query", func(t *testing.T) {
		assert.Equal(t, "/abc?x=1", shortener.NormalizePath("http://mysite.com/abc?x=1"))
		assert.Equal(t, "/abc", shortener.NormalizePath("http://mysite.com/abc"))
	})

	t.Run("empty path defaults to root", func(t *testing.T) {
		assert.Equal(t, "/", shortener.NormalizePath("http://mysite.com"))
		assert.Equal(t, "/?a=1", shortener.NormalizePath("http://mysite.com?a=1"))
	})

	t.Run("fragments are dropped", func(t *testing.T) {
		assert.Equal(t, "/abc?x=1", shortener.NormalizePath("http://mysite.com/abc?x=1#frag"))
		assert.Equal(t, "/abc", shortener.NormalizePath("http://mysite.com/abc#frag"))
	})
}
