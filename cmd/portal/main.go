// Command portal runs the municipal tourism site: the public pages and the
// staff dashboard, both rendered over the upstream tourism API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/backend"
	"github.com/lakbayan/tourism-portal/internal/cache"
	"github.com/lakbayan/tourism-portal/internal/catalog"
	"github.com/lakbayan/tourism-portal/internal/config"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/portal"
)

const (
	readyTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("portal exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := backend.New(cfg.BackendURL, cfg.APIToken)
	if err != nil {
		return err
	}
	log.Info("waiting for upstream", "url", cfg.BackendURL)
	if err := client.WaitReady(ctx, readyTimeout); err != nil {
		return err
	}

	var store cache.Store
	if cfg.RedisAddr != "" {
		redis := cache.NewRedisStore(cfg.RedisAddr)
		if err := redis.Ping(ctx); err != nil {
			return err
		}
		store = redis
		log.Info("cache store ready", "store", "redis", "addr", cfg.RedisAddr)
	} else {
		store = cache.NewMemoryStore()
		log.Info("cache store ready", "store", "memory")
	}

	notify := portal.Notifier{}
	services := portal.Services{
		Destinations:         newService[domain.Destination](domain.KindDestinations, client, store, cfg.CacheTTL, notify, log),
		Accommodations:       newService[domain.Accommodation](domain.KindAccommodations, client, store, cfg.CacheTTL, notify, log),
		Restaurants:          newService[domain.Restaurant](domain.KindRestaurants, client, store, cfg.CacheTTL, notify, log),
		LandTransportations:  newService[domain.Transportation](domain.KindLandTransportations, client, store, cfg.CacheTTL, notify, log),
		WaterTransportations: newService[domain.Transportation](domain.KindWaterTransportations, client, store, cfg.CacheTTL, notify, log),
		Histories:            newService[domain.History](domain.KindHistories, client, store, cfg.CacheTTL, notify, log),
		Users:                newService[domain.User](domain.KindUsers, client, store, cfg.CacheTTL, notify, log),
		Ratings:              newService[domain.Rating](domain.KindRatings, client, store, cfg.CacheTTL, notify, log),
	}

	provider := auth.NewProvider(client)
	server, err := portal.New(log, provider, services, client, cfg.CORSOrigins)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("portal listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newService assembles the cache channel and catalog service for one kind.
func newService[T domain.Record[T]](kind domain.Kind, client *backend.Client, store cache.Store, ttl time.Duration, notify catalog.Notifier, log *slog.Logger) *catalog.Service[T] {
	channel := cache.NewChannel[T](kind, store, ttl, log)
	return catalog.New[T](kind, backend.NewResource[T](client, kind), channel, notify, log)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
