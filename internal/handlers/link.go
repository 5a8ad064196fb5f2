package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hyeonlab/pagelink/internal/analytics"
	"github.com/hyeonlab/pagelink/internal/messaging"
	"github.com/hyeonlab/pagelink/internal/shortener"
	"go.uber.org/zap"
)

// LinkHandler exposes the shortener service over HTTP.
type LinkHandler struct {
	service             *shortener.Service
	publishLinkCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger              *zap.Logger
}

// NewLinkHandler creates a link handler.
func NewLinkHandler(
	service *shortener.Service,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:             service,
		publishLinkCreated:  publishLinkCreated,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

// Shorten creates (or re-finds) a short link for a same-origin URL.
// Returns 201 on a fresh allocation and 200 when the path already had a
// live code.
func (h *LinkHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	meta := RequestMetaFromContext(ctx)

	link, created, err := h.service.CreateShortLink(ctx, meta.Origin, req.Body.URL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrEmptyURL), errors.Is(err, shortener.ErrCrossOrigin):
			return nil, huma.Error400BadRequest(err.Error())
		case errors.Is(err, shortener.ErrCodeSpaceBusy):
			return nil, huma.Error503ServiceUnavailable("could not allocate short code, try again")
		default:
			h.logger.Error("shorten failed",
				zap.String("requestId", meta.RequestID),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	if created {
		event := &analytics.LinkCreatedEvent{
			Code:      link.Code,
			Path:      link.Path,
			CreatedAt: time.Now(),
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
		}

		if err := h.publishLinkCreated(event); err != nil {
			h.logger.Error("failed to publish link created event",
				zap.String("code", link.Code),
				zap.Error(err),
			)
		}
	}

	resp := &ShortenResponse{}
	if created {
		resp.Status = http.StatusCreated
	} else {
		resp.Status = http.StatusOK
	}

	resp.Body.Code = link.Code
	resp.Body.ShortURL = "/s/" + link.Code
	resp.Body.Path = link.Path

	return resp, nil
}

// Redirect resolves a short code to its stored path and answers with a
// 302. Resolving refreshes the link's TTL.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	path, err := h.service.ResolveShortLink(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		return nil, huma.Error500InternalServerError("failed to resolve short link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		Code:       req.Code,
		Path:       path,
		ResolvedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishLinkResolved(event); err != nil {
		h.logger.Error("failed to publish link resolved event",
			zap.String("code", req.Code),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = path

	return resp, nil
}
