package analytics

import (
	"context"

	"go.uber.org/zap"
)

// NoopStore is an analytics.Store that only logs events. Used when no
// database is configured.
type NoopStore struct {
	logger *zap.Logger
}

// NewNoopStore creates a logging no-op analytics store.
func NewNoopStore(logger *zap.Logger) *NoopStore {
	return &NoopStore{logger: logger}
}

func (n *NoopStore) SaveLinkCreated(_ context.Context, event *LinkCreatedEvent) error {
	n.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("path", event.Path),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *NoopStore) SaveLinkResolved(_ context.Context, event *LinkResolvedEvent) error {
	n.logger.Info("link resolved",
		zap.String("code", event.Code),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

var _ Store = (*NoopStore)(nil)
