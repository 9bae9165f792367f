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

	"github.com/gin-gonic/gin"

	"github.com/mmynk/tasklist/internal/api"
	"github.com/mmynk/tasklist/internal/auth"
	"github.com/mmynk/tasklist/internal/config"
	"github.com/mmynk/tasklist/internal/middleware"
	"github.com/mmynk/tasklist/internal/service"
	"github.com/mmynk/tasklist/internal/storage"
	"github.com/mmynk/tasklist/internal/storage/postgres"
	"github.com/mmynk/tasklist/internal/storage/sqlite"
	"github.com/mmynk/tasklist/pkg/logging"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logging.Setup()
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	logger := slog.Default()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := api.NewRouter(api.Config{
		Auth:        service.NewAuthService(authenticator, issuer, store, logger),
		Tasks:       service.NewTaskService(store, logger),
		Logger:      logger,
		Metrics:     middleware.NewMetrics(),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Server) (storage.Store, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return postgres.New(cfg.DatabaseURL)
	}
	return sqlite.New(cfg.DBPath)
}
