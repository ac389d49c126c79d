package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"aurex-showroom/internal/catalog"
	"aurex-showroom/internal/config"
	"aurex-showroom/internal/database"
	"aurex-showroom/internal/glbcache"
	"aurex-showroom/internal/logging"
	"aurex-showroom/internal/preorder"
	"aurex-showroom/internal/server"
	"aurex-showroom/internal/telemetry"
	"aurex-showroom/vehicle"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(config.GetString("logLevel"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error().Err(err).Msg("showroom stopped")
		os.Exit(1)
	}
	log.Info().Msg("Shut down successfully")
}

func run(ctx context.Context, log zerolog.Logger) error {
	sr := config.Showroom()
	model, err := vehicle.Lookup(sr.Model)
	if err != nil {
		return err
	}
	finish, ok := catalog.Lookup(sr.DefaultVariant)
	if !ok {
		return fmt.Errorf("unknown default variant %q", sr.DefaultVariant)
	}

	db := database.NewManager(config.DB(), logging.Component(log, "database"))
	if err := db.Connect(); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	if err := db.Setup(&preorder.Preorder{}); err != nil {
		return err
	}

	metrics, err := telemetry.New()
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	cache, closeCache, err := newCache(ctx, config.Cache(), logging.Component(log, "glbcache"))
	if err != nil {
		return err
	}
	defer closeCache()

	srv := server.New(server.Options{
		Store:   preorder.NewGormStore(db.DB),
		Cache:   cache,
		Metrics: metrics,
		Model:   model,
		Color:   finish.Color,
		FPS:     sr.FPS,
		Health: func(ctx context.Context) error {
			return db.SqlDB.PingContext(ctx)
		},
		Logger: logging.Component(log, "http"),
	})

	httpServer := &http.Server{
		Addr:              config.GetString("http.addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", httpServer.Addr).
			Str("model", model.Name()).
			Str("variant", finish.Name).
			Bool("sqlite", db.UsingSqlite).
			Msg("Showroom listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		exitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(exitCtx); err != nil {
			return fmt.Errorf("clean shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newCache returns the Redis cache when configured and reachable, the
// in-memory cache otherwise.
func newCache(ctx context.Context, cfg config.CacheConfig, log zerolog.Logger) (glbcache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().Dur("ttl", cfg.TTL).Msg("Using in-memory GLB cache")
		return glbcache.NewMemory(cfg.TTL), func() {}, nil
	}
	r := glbcache.NewRedis(cfg.RedisAddr, cfg.TTL)
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, using in-memory GLB cache")
		return glbcache.NewMemory(cfg.TTL), func() {}, nil
	}
	log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.TTL).Msg("Using Redis GLB cache")
	return r, func() { _ = r.Close() }, nil
}
