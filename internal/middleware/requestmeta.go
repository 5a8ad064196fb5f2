package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/hyeonlab/pagelink/internal/handlers"
)

// RequestMeta is a middleware that captures the request origin, client
// IP, user-agent, referrer, and a fresh request id into the context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			RequestID: uuid.NewString(),
			Origin:    requestOrigin(ctx),
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// requestOrigin reconstructs the scheme://host the client used,
// trusting forwarding headers when a proxy sits in front.
func requestOrigin(ctx huma.Context) string {
	scheme := ctx.Header("X-Forwarded-Proto")
	if scheme == "" {
		scheme = ctx.URL().Scheme
	}

	if scheme == "" {
		scheme = "http"
	}

	host := ctx.Header("X-Forwarded-Host")
	if host == "" {
		host = ctx.Host()
	}

	return scheme + "://" + host
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may contain multiple IPs; the first is the client
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.RemoteAddr()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}
