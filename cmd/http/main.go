package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rafaelleal24/cart/internal/adapters/catalog"
	"github.com/rafaelleal24/cart/internal/adapters/config"
	"github.com/rafaelleal24/cart/internal/adapters/http"
	"github.com/rafaelleal24/cart/internal/adapters/http/controllers"
	"github.com/rafaelleal24/cart/internal/adapters/http/middleware"
	"github.com/rafaelleal24/cart/internal/adapters/memory"
	"github.com/rafaelleal24/cart/internal/adapters/metrics"
	"github.com/rafaelleal24/cart/internal/adapters/mongo"
	"github.com/rafaelleal24/cart/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/cart/internal/adapters/redis"
	"github.com/rafaelleal24/cart/internal/core/logger"
	"github.com/rafaelleal24/cart/internal/core/port"
	"github.com/rafaelleal24/cart/internal/core/service"
)

// @title       Cart API
// @version     1.0
// @description Shopping cart state backed by a durable snapshot and a remote stock service

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

type storage struct {
	snapshots   port.SnapshotPort
	rateLimiter middleware.RateLimiter
	checker     controllers.HealthChecker
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Cart.StorageDriver {
	case config.StorageRedis:
		client, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "Connected to Redis", nil)
		return &storage{
			snapshots:   redis.NewSnapshotStore(client, "cart"),
			rateLimiter: redis.NewRateLimiter(client),
			checker:     controllers.HealthChecker{Name: "redis", Check: client.Ping},
			close:       func() { _ = client.Close() },
		}, nil
	case config.StorageMongo:
		client, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})
		return &storage{
			snapshots: mongo.NewSnapshotStore(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection),
			checker: controllers.HealthChecker{Name: "mongodb", Check: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}},
			close: func() { _ = mongo.Disconnect(client) },
		}, nil
	case config.StorageMemory:
		logger.Warn(ctx, "Using in-memory cart storage, the cart will not survive a restart", nil)
		return &storage{
			snapshots: memory.NewSnapshotStore(),
			checker:   controllers.HealthChecker{Name: "memory", Check: func(context.Context) error { return nil }},
			close:     func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Cart.StorageDriver)
	}
}

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		Production:        cfg.Logger.IsProduction,
		JSON:              cfg.Logger.JSON,
		Level:             logger.LogLevel(strings.ToUpper(cfg.Logger.Level)),
	}); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to open cart storage", err, map[string]any{"driver": string(cfg.Cart.StorageDriver)})
	}
	defer store.close()

	checkers := []controllers.HealthChecker{store.checker}

	// broker is optional; without it events stay in process
	var broker port.BrokerPort
	var downstream []port.NotifierPort
	if cfg.RabbitMQ.Enabled {
		adapter, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
		if err != nil {
			logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
		}
		defer adapter.Close()
		logger.Info(ctx, "Connected to RabbitMQ", map[string]any{"exchange": cfg.RabbitMQ.Exchange.Name})

		broker = adapter
		downstream = append(downstream, rabbitmq.NewNotifier(adapter))
		checkers = append(checkers, controllers.HealthChecker{
			Name:  "rabbitmq",
			Check: func(context.Context) error { return adapter.HealthCheck() },
		})
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	operationMetrics := metrics.NewMetrics(registry)

	cartService, err := service.NewCartService(
		ctx,
		catalog.NewClient(cfg.Catalog),
		store.snapshots,
		broker,
		operationMetrics,
		cfg.Cart.StorageKey,
	)
	if err != nil {
		logger.Fatal(ctx, "Failed to restore cart", err, map[string]any{"storage_key": cfg.Cart.StorageKey})
	}
	logger.Info(ctx, "Cart restored", map[string]any{"items": len(cartService.Cart())})

	hub := service.NewNotificationHub(downstream...)
	cart := service.NewNotifyingCart(cartService, hub)

	router := http.NewRouter(
		cfg.HTTP,
		controllers.NewHealthController(checkers),
		controllers.NewCartController(cart, hub),
		store.rateLimiter,
		operationMetrics.Handler(),
	)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	if err := router.ListenAndServe(ctx); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
