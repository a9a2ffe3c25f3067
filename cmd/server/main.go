package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/event-hotels-api/internal/auth"
	"github.com/gdg-garage/event-hotels-api/internal/config"
	"github.com/gdg-garage/event-hotels-api/internal/database"
	"github.com/gdg-garage/event-hotels-api/internal/handlers"
	"github.com/gdg-garage/event-hotels-api/internal/repository"
	"github.com/gdg-garage/event-hotels-api/internal/service"
	"github.com/gdg-garage/event-hotels-api/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {
	// Load Configuration
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("starting event hotels api", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, version)
	if err != nil {
		log.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}

	// Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("failed to init storage", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Seed {
		if err := database.Seed(db); err != nil {
			log.Error("failed to seed database", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("database seeded")
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db, log)
	hotelService := service.NewHotelService(repository.NewHotelRepository(db))
	hotelHandler := handlers.NewHotelHandler(hotelService, log)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, log, authHandler, hotelHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("starting server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("application stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to flush traces", slog.Any("error", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(log)
	return log
}
