// Package container wires the application together with samber/do.
// Each *Package function registers the providers for one concern so the
// server and consumer binaries can compose only what they need.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/hyeonlab/pagelink/internal/analytics"
	"github.com/hyeonlab/pagelink/internal/handlers"
	"github.com/hyeonlab/pagelink/internal/health"
	"github.com/hyeonlab/pagelink/internal/messaging"
	"github.com/hyeonlab/pagelink/internal/middleware"
	"github.com/hyeonlab/pagelink/internal/ratelimit"
	"github.com/hyeonlab/pagelink/internal/shortener"
	"github.com/hyeonlab/pagelink/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options is the configuration surface, populated by humacli from flags
// and environment variables.
type Options struct {
	Port        int    `default:"8888"                       help:"Port to listen on"                            short:"p"`
	RedisURL    string `default:"redis://localhost:6379/0"   help:"Redis connection URL"                         short:"r"`
	PostgresURL string `default:""                           help:"Postgres URL for analytics storage (optional)"`
	CodeLength  int    `default:"8"                          help:"Length of generated short codes"              short:"c"`
	TTLSeconds  int    `default:"604800"                     help:"Short link TTL in seconds"`
	KeyPrefix   string `default:"su:"                        help:"Store key prefix for short links"`
	LogFormat   string `default:"console"                    help:"Log format: console or json"`
}

// TTL returns the configured short link TTL as a duration.
func (o *Options) TTL() time.Duration {
	return time.Duration(o.TTLSeconds) * time.Second
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		opts, err := redis.ParseURL(options.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}

		return redis.NewClient(opts), nil
	})
}

// ShortenerPackage provides the link store, code generator, and service.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Store, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRedisLinkStore(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Generator, error) {
		options := do.MustInvoke[*Options](i)

		return shortener.NewRandomGenerator(options.CodeLength), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		options := do.MustInvoke[*Options](i)
		linkStore := do.MustInvoke[shortener.Store](i)
		generator := do.MustInvoke[shortener.Generator](i)

		return shortener.NewService(linkStore, generator, options.KeyPrefix, options.TTL()), nil
	})
}

// RateLimitPackage provides the redis-backed rate limiter used as the
// default for endpoints without their own limits.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRateLimitRedisStore(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		rlStore := do.MustInvoke[ratelimit.Store](i)

		return ratelimit.NewSlidingWindowLimiter(rlStore, 60, time.Minute), nil
	})
}

// PublisherGroupPackage provides the analytics event publishers over
// redis streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkResolvedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkResolvedEvent](group.Publisher(), analytics.TopicLinkResolved), nil
	})
}

// AnalyticsStorePackage provides the analytics event store: Postgres
// when a URL is configured, otherwise a logging noop.
func AnalyticsStorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.PostgresURL == "" {
			logger.Info("no postgres url configured, analytics events will only be logged")

			return analytics.NewNoopStore(logger), nil
		}

		pool, err := pgxpool.New(context.Background(), options.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return analytics.NewPostgresStore(pool), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers for the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	AnalyticsStorePackage(injector)

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[analytics.Store](i)

		opts, err := redis.ParseURL(options.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}

		// The subscriber gets its own client; watermill closes it with
		// the subscriber.
		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        redis.NewClient(opts),
				ConsumerGroup: "analytics",
			},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)

		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicLinkCreated,
			func(ctx context.Context, event *analytics.LinkCreatedEvent) error {
				return eventStore.SaveLinkCreated(ctx, event)
			},
			logger,
		))

		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicLinkResolved,
			func(ctx context.Context, event *analytics.LinkResolvedEvent) error {
				return eventStore.SaveLinkResolved(ctx, event)
			},
			logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the chi router and huma API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.LinkHandler, error) {
		service := do.MustInvoke[*shortener.Service](i)
		logger := do.MustInvoke[*zap.Logger](i)
		publishCreated := do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i)
		publishResolved := do.MustInvoke[messaging.Publish[analytics.LinkResolvedEvent]](i)

		return handlers.NewLinkHandler(service, publishCreated, publishResolved, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*redis.Client](i)
		limiter := do.MustInvoke[ratelimit.Limiter](i)
		rlStore := do.MustInvoke[ratelimit.Store](i)
		linkHandler := do.MustInvoke[*handlers.LinkHandler](i)

		api := humachi.New(router, huma.DefaultConfig("pagelink", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, limiter, rlStore, logger),
		)

		handlers.RegisterRoutes(api, linkHandler)
		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(client)))

		pagesHandler, err := handlers.NewPagesHandler(logger)
		if err != nil {
			return nil, err
		}

		handlers.RegisterPageRoutes(router, pagesHandler)

		return api, nil
	})
}
