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

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/veloria/accountd/internal/accounts"
	"github.com/veloria/accountd/internal/app"
	"github.com/veloria/accountd/internal/events"
	"github.com/veloria/accountd/internal/observability"
	"github.com/veloria/accountd/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var (
		repo     accounts.Repository
		recorder events.Recorder = events.NopRecorder{}
	)
	switch cfg.StoreBackend {
	case app.BackendPostgres:
		pool, dbErr := db.New(ctx, cfg.PGDSN)
		if dbErr != nil {
			logger.Error("connect postgres", slog.Any("error", dbErr))
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.Migrate(cfg.PGDSN); err != nil {
			logger.Error("apply migrations", slog.Any("error", err))
			os.Exit(1)
		}

		repo = accounts.NewPGRepository(pool)
		pgRecorder := events.NewPGRecorder(pool, logger, cfg.EventBuffer, metrics.EventDropped)
		defer pgRecorder.Close()
		recorder = pgRecorder
	default:
		repo = accounts.NewMemoryRepository()
	}

	service := accounts.NewService(repo, accounts.NewBcryptHasher(), recorder)
	handler := accounts.NewHandler(logger, service)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AccountsHandler: handler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("backend", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
