// Package app wires the storefront's dependency graph and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ricciar/grape-ceramics/internal/cache"
	"github.com/Ricciar/grape-ceramics/internal/cart"
	"github.com/Ricciar/grape-ceramics/internal/config"
	"github.com/Ricciar/grape-ceramics/internal/event"
	handler "github.com/Ricciar/grape-ceramics/internal/handler/http"
	"github.com/Ricciar/grape-ceramics/internal/service"
	"github.com/Ricciar/grape-ceramics/internal/upstream/woocommerce"
	"github.com/Ricciar/grape-ceramics/internal/upstream/wordpress"
	"github.com/Ricciar/grape-ceramics/pkg/health"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
	pkgkafka "github.com/Ricciar/grape-ceramics/pkg/kafka"
	"github.com/Ricciar/grape-ceramics/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	warmer          *service.Warmer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   1.0,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	healthHandler := health.NewHandler()

	// Response cache backend.
	var (
		store cache.Store
		rdb   *redis.Client
	)
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		store = cache.NewRedis(rdb, cfg.CacheTTL)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	default:
		store = cache.NewMemory(cfg.CacheTTL)
	}

	// Optional Kafka producer.
	var (
		producer      *pkgkafka.Producer
		eventProducer *event.Producer
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = event.NewProducer(producer, logger)
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Upstream clients.
	wooClient := woocommerce.NewClient(woocommerce.Config{
		BaseURL:        cfg.WooBaseURL,
		ConsumerKey:    cfg.WooConsumerKey,
		ConsumerSecret: cfg.WooConsumerSecret,
		Timeout:        cfg.UpstreamTimeout,
	}, logger)
	wpClient := wordpress.NewClient(wordpress.Config{
		BaseURL: cfg.WPBaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, logger)

	// Build the dependency graph.
	catalogService := service.NewCatalogService(wooClient, store, logger)
	orderService := service.NewOrderService(wooClient, eventProducer, cfg.StoreBaseURL, logger)
	pageService := service.NewPageService(wpClient, store, logger)
	cartStore := cart.NewStore()

	var warmer *service.Warmer
	if cfg.PrewarmEnabled {
		warmer = service.NewWarmer(catalogService, pageService, cfg.PrewarmSlugs, cfg.PrewarmInterval, logger)
	}

	responder := httputil.NewResponder(logger, cfg.Development())

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:    serviceName,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
		PprofCIDRs:     cfg.PprofCIDRs,
		RequestTimeout: cfg.RequestTimeout,
	}, handler.RouterDeps{
		Products:  handler.NewProductHandler(catalogService, responder),
		Orders:    handler.NewOrderHandler(orderService, cartStore, responder),
		Pages:     handler.NewPageHandler(pageService, responder),
		Carts:     handler.NewCartHandler(cartStore, catalogService, eventProducer, responder),
		Health:    healthHandler,
		Logger:    logger,
		Responder: responder,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		warmer:          warmer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	if a.warmer != nil {
		go a.warmer.Run(ctx)
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
