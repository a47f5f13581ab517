package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/peakhub/storefront/app/navigation"
	"github.com/peakhub/storefront/app/server"
	"github.com/peakhub/storefront/app/session"
	"github.com/peakhub/storefront/config"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/metrics"
	"github.com/peakhub/storefront/models"
	"github.com/peakhub/storefront/state"
	"github.com/peakhub/storefront/storage"
	"github.com/peakhub/storefront/storage/pgslot"
	"github.com/peakhub/storefront/storage/redisslot"
	"github.com/peakhub/storefront/telemetry"
)

const serviceName = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Storefront stopped")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	catalog, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}

	store, closeStore, err := openCartStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info().Str("backend", cfg.CartStore).Msg("Cart store ready")

	preloader := state.NewPreloader(cfg.StartupDelay)
	defer preloader.Stop()

	m := metrics.New()
	sessions := session.NewRegistry(func(ctx context.Context, id string) (*state.App, error) {
		appLog := log.With().Str("session", id).Logger()
		return state.LoadApp(ctx,
			state.WithCartStore(state.NewCartStore(store, session.SlotKey(id), appLog)),
			state.WithPreloader(preloader),
			state.WithObserver(m),
			state.WithLogger(appLog),
		)
	}, log, session.WithIdleTimeout(cfg.SessionIdleTimeout))
	go sessions.Run(ctx, time.Minute)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: server.NewHandler(server.Deps{
			Catalog:     catalog,
			Sessions:    sessions,
			Metrics:     m,
			Preloader:   preloader,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCatalog serves the built-in catalog unless DATABASE_URL points at postgres,
// in which case the catalog tables are migrated and seeded on first start.
func openCatalog(cfg config.Config, log zerolog.Logger) (navigation.Catalog, error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("Serving built-in catalog")
		return models.NewStaticCatalog(), nil
	}

	db, err := models.OpenDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := models.Migrate(db); err != nil {
		return nil, err
	}
	if err := models.Seed(db); err != nil {
		return nil, err
	}
	log.Info().Msg("Serving catalog from postgres")
	return models.NewGormCatalog(db), nil
}

func openCartStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	nop := func() {}
	switch cfg.CartStore {
	case config.CartStoreMemory:
		return storage.NewMemoryStore(), nop, nil
	case config.CartStoreRedis:
		client, err := redisslot.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nop, err
		}
		return redisslot.New(client), func() { client.Close() }, nil
	case config.CartStorePostgres:
		db, err := pgslot.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nop, err
		}
		store := pgslot.New(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nop, err
		}
		return store, func() { db.Close() }, nil
	default:
		store, err := storage.NewFileStore(cfg.CartDir)
		if err != nil {
			return nil, nop, err
		}
		return store, nop, nil
	}
}
