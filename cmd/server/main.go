package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/waymark/internal/adapters/file"
	"github.com/samirrijal/waymark/internal/adapters/http"
	natsadapter "github.com/samirrijal/waymark/internal/adapters/nats"
	"github.com/samirrijal/waymark/internal/adapters/postgres"
	"github.com/samirrijal/waymark/internal/adapters/valkey"
	"github.com/samirrijal/waymark/internal/core/ports"
	"github.com/samirrijal/waymark/internal/core/usecases"
	"github.com/samirrijal/waymark/internal/pkg/config"
	"github.com/samirrijal/waymark/internal/pkg/logging"
	"github.com/samirrijal/waymark/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("waymark-server")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Feature dataset: loaded once at startup, immutable afterwards
	var source ports.FeatureSource
	var db *postgres.DB
	switch cfg.Features.Source {
	case "postgres":
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		source = postgres.NewFeatureRepo(db)
	default:
		source = file.NewSource(cfg.Features.Path)
	}

	features, err := source.LoadFeatures(ctx)
	if err != nil {
		log.Fatalf("load features: %v", err)
	}
	slog.Info("feature dataset loaded", "source", cfg.Features.Source, "count", len(features))

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for the notes WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Use cases
	store := usecases.NewFeatureStore(features)
	board := usecases.NewNoteBoard()

	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	var events ports.EventPublisher
	if publisher != nil {
		events = publisher
	}
	guide := usecases.NewGuideService(store, board, cacheSvc, events)

	deps := &http.Dependencies{
		Guide: guide,
		NATS:  natsConn,
		DB:    db,
		Cache: cache,
	}

	// Fiber. StreamRequestBody lets the route recorder consume points as
	// the client uploads them instead of buffering the whole body.
	app := fiber.New(fiber.Config{
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:         8 * 1024 * 1024,
		StreamRequestBody: true,
		AppName:           "Waymark Guide",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("guide server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
