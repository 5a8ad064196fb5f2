package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/hyeonlab/pagelink/internal/analytics"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNoopStore(t *testing.T) {
	t.Run("accepts created events", func(t *testing.T) {
		s := analytics.NewNoopStore(zap.NewNop())

		err := s.SaveLinkCreated(context.Background(), &analytics.LinkCreatedEvent{
			Code:      "abc123",
			Path:      "/page?a=1",
			CreatedAt: time.Now(),
		})

		assert.NoError(t, err)
	})

	t.Run("accepts resolved events", func(t *testing.T) {
		s := analytics.NewNoopStore(zap.NewNop())

		err := s.SaveLinkResolved(context.Background(), &analytics.LinkResolvedEvent{
			Code:       "abc123",
			Path:       "/page?a=1",
			ResolvedAt: time.Now(),
		})

		assert.NoError(t, err)
	})
}
