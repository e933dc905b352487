package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/catalog-sync/internal/core/catalog"
	corecfg "github.com/aevon-lab/catalog-sync/internal/core/config"
	"github.com/aevon-lab/catalog-sync/internal/core/storage"
	"github.com/aevon-lab/catalog-sync/internal/core/storage/memory"
	"github.com/aevon-lab/catalog-sync/internal/core/storage/postgres"
	"github.com/aevon-lab/catalog-sync/internal/feed"
	"github.com/aevon-lab/catalog-sync/internal/ingestion"
	"github.com/aevon-lab/catalog-sync/internal/migrations"
	"github.com/aevon-lab/catalog-sync/internal/projection"
	"github.com/aevon-lab/catalog-sync/internal/reconcile"
	"github.com/aevon-lab/catalog-sync/internal/server"
)

// catalogStore is what the rest of main needs from a storage backend.
type catalogStore interface {
	storage.CatalogStore
	storage.SummaryReader
	server.HealthChecker
}

func main() {
	configPath := flag.String("config", "catalogsync.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	if _, err := os.Stat(*configPath); err != nil {
		slog.Info("Config file not found, using defaults and environment", "path", *configPath)
		*configPath = ""
	}
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database_type", cfg.Database.Type,
		"feed_url", cfg.Feed.URL,
		"sync_enabled", cfg.Sync.Enabled,
		"sync_interval", cfg.Sync.Interval,
	)

	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 3. Initialize Projection (search API)
	projectionSvc := projection.NewService(store)

	// 4. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	projectionSvc.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Initialize Sync (feed → catalog)
	if cfg.Feed.URL != "" {
		source := feed.NewHTTPSource(cfg.Feed.URL, cfg.Feed.TimeoutDuration(), cfg.Feed.MaxBodySizeMB)
		engine := reconcile.NewEngine(store, catalog.DiffOptions{BackfillSummaries: cfg.Sync.BackfillSummaries})
		cycle := reconcile.NewCycle(ingestion.NewService(source, nil), engine)
		scheduler := reconcile.NewScheduler(cfg.Sync.IntervalDuration(), cfg.Sync.CycleTimeoutDuration(), cycle)
		scheduler.RegisterRoutes(srv.Engine)

		if cfg.Sync.Enabled {
			go func() {
				if err := scheduler.Start(ctx); err != nil {
					slog.Error("Scheduler stopped with error", "error", err)
				}
			}()
		} else {
			slog.Info("Sync scheduler disabled by config; POST /v1/sync still available")
		}
	} else {
		slog.Info("No feed.url configured, sync disabled")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func openStore(cfg corecfg.DatabaseConfig) (catalogStore, func(), error) {
	if cfg.Type == corecfg.DatabaseMemory {
		slog.Warn("Using in-memory storage; catalog is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.OpenDB(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	adapter, err := postgres.NewAdapterWithDB(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return adapter, func() {
		if err := adapter.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
