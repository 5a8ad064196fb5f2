package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hyeonlab/pagelink/internal/ratelimit"
)

// RegisterRoutes registers the shortener API routes with per-endpoint
// rate limit configuration.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	// Writes are limited tightly; shortening is cheap to retry.
	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short link",
		Description:   "Creates a short code for a same-origin URL. Shortening the same path again returns the existing code.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
					{Window: time.Hour, Max: 300},
				},
			},
		},
	}, linkHandler.Shorten)

	// Redirects are high-traffic reads; keep the limit loose.
	huma.Register(api, huma.Operation{
		OperationID: "resolve-short-link",
		Method:      http.MethodGet,
		Path:        "/s/{code}",
		Summary:     "Redirect to stored path",
		Description: "Redirects to the path stored under the short code and refreshes its TTL.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, linkHandler.Redirect)
}
