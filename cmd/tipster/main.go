package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/betpilot/tipster/adapters/theoddsapi"
	"github.com/betpilot/tipster/internal/cache"
	"github.com/betpilot/tipster/internal/config"
	"github.com/betpilot/tipster/internal/metrics"
	"github.com/betpilot/tipster/internal/ratelimit"
	"github.com/betpilot/tipster/internal/refresher"
	"github.com/betpilot/tipster/internal/server"
	"github.com/betpilot/tipster/internal/sports"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Sports catalog, optionally replaced from a YAML file.
	catalog := sports.NewCatalog()
	if cfg.SportsFile != "" {
		catalog, err = sports.LoadCatalog(cfg.SportsFile)
		if err != nil {
			logger.Fatal("failed to load sports file", zap.String("path", cfg.SportsFile), zap.Error(err))
		}
		logger.Info("loaded sports catalog from file", zap.String("path", cfg.SportsFile))
	}

	// Durable cache backend is a constructor-time choice: Postgres when a
	// DSN is configured, Redis when an address is, otherwise memory-only for
	// the process lifetime. An unreachable backend degrades the same way.
	durable, healthFn := selectDurableStore(ctx, cfg, logger)
	store := cache.New(durable, logger)
	if store.Durable() {
		logger.Info("cache using durable backend")
	} else {
		logger.Warn("cache running in-process only; entries are lost on restart")
	}

	adapter := theoddsapi.NewClient(cfg.OddsAPIKey,
		theoddsapi.WithLogger(logger),
		theoddsapi.WithRegionOverrides(catalog.RegionOverrides()),
		theoddsapi.WithSuggestions(catalog.Suggestions),
	)

	// Periodic sweep keeps expired rows from piling up between reads.
	sweepStop := startSweeper(ctx, store, cfg.SweepInterval, logger)

	warm := refresher.New(adapter, store, catalog, logger, cfg.WarmInterval, 0, cfg.CacheTTL)
	if cfg.WarmInterval > 0 {
		logger.Info("cache warming enabled", zap.Duration("interval", cfg.WarmInterval))
	}
	warm.Start(ctx)

	metricsSrv := metrics.StartServer(cfg.MetricsPort, healthFn)
	logger.Info("metrics server listening", zap.String("port", cfg.MetricsPort))

	srv := server.New(server.Params{
		Provider:          adapter,
		Cache:             store,
		Catalog:           catalog,
		Limiter:           ratelimit.New(cfg.RateLimitPerMinute, time.Minute),
		Logger:            logger,
		ValueBetThreshold: cfg.ValueBetThreshold,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.HTTPPort)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("api server failed", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	warm.Stop()
	close(sweepStop)
	_ = metricsSrv.Shutdown(shutdownCtx)

	logger.Info("stopped")
}

// newLogger builds the service logger: production JSON by default,
// development encoding locally, service/env as standard fields.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Env == "local" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build(zap.Fields(
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
	))
}

// selectDurableStore picks the durable cache backend from configuration.
// Connection failures are logged and absorbed; the cache falls back to
// memory-only with no later upgrade attempts.
func selectDurableStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (cache.Store, metrics.HealthFunc) {
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err == nil {
			err = db.PingContext(ctx)
		}
		if err != nil {
			logger.Warn("postgres unavailable, cache falling back to memory", zap.Error(err))
			return nil, nil
		}

		store := cache.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Warn("postgres schema setup failed, cache falling back to memory", zap.Error(err))
			return nil, nil
		}
		logger.Info("connected to postgres cache store")
		return store, func(ctx context.Context) error { return db.PingContext(ctx) }
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, cache falling back to memory", zap.Error(err))
			return nil, nil
		}
		logger.Info("connected to redis cache store")
		return cache.NewRedisStore(client, "cache"), func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	return nil, nil
}

// startSweeper runs SweepExpired on a fixed interval until stopped.
func startSweeper(ctx context.Context, store *cache.Cache, interval time.Duration, logger *zap.Logger) chan struct{} {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := store.SweepExpired(ctx); removed > 0 {
					logger.Info("swept expired cache entries", zap.Int("removed", removed))
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return stop
}
