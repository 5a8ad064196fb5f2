package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hyeonlab/pagelink/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadLegalContent(t *testing.T) {
	t.Run("loads english privacy content", func(t *testing.T) {
		content, footer, lang, err := handlers.LoadLegalContent("en", "privacy")

		require.NoError(t, err)
		assert.Equal(t, "en", lang)
		assert.NotEmpty(t, content.Title)
		assert.NotEmpty(t, content.Sections)
		assert.NotEmpty(t, footer)
	})

	t.Run("loads korean terms content", func(t *testing.T) {
		content, _, lang, err := handlers.LoadLegalContent("ko", "terms")

		require.NoError(t, err)
		assert.Equal(t, "ko", lang)
		assert.NotEmpty(t, content.Title)
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		_, _, lang, err := handlers.LoadLegalContent("xx", "privacy")

		require.NoError(t, err)
		assert.Equal(t, "en", lang)
	})

	t.Run("supported language without a content file falls back to english", func(t *testing.T) {
		// French is a supported language but ships no translation yet
		_, _, lang, err := handlers.LoadLegalContent("fr", "terms")

		require.NoError(t, err)
		assert.Equal(t, "en", lang)
	})

	t.Run("unknown page errors", func(t *testing.T) {
		_, _, _, err := handlers.LoadLegalContent("en", "imprint")

		assert.Error(t, err)
	})
}

func newPagesRouter(t *testing.T) *chi.Mux {
	t.Helper()

	pages, err := handlers.NewPagesHandler(zap.NewNop())
	require.NoError(t, err)

	mux := chi.NewMux()
	handlers.RegisterPageRoutes(mux, pages)

	return mux
}

func TestPages(t *testing.T) {
	t.Run("index renders", func(t *testing.T) {
		mux := newPagesRouter(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "shorten-form")
	})

	t.Run("privacy renders in english by default", func(t *testing.T) {
		mux := newPagesRouter(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/privacy", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Privacy Policy")
	})

	t.Run("terms render in korean when requested", func(t *testing.T) {
		mux := newPagesRouter(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terms?lang=ko", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "이용약관")
	})

	t.Run("languages without a translation fall back to english", func(t *testing.T) {
		mux := newPagesRouter(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/privacy?lang=ja", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Privacy Policy")
	})
}
