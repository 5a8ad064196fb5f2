package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds per-request metadata captured by middleware: the
// request origin used for same-origin checks, client details for
// analytics, and a request id for log correlation.
type RequestMeta struct {
	RequestID string
	Origin    string // scheme://host of the inbound request
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
