package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/JonMunkholm/FoodShare/internal/config"
	"github.com/JonMunkholm/FoodShare/internal/core"
	_ "github.com/JonMunkholm/FoodShare/internal/core/reports" // Register all reports
	_ "github.com/JonMunkholm/FoodShare/internal/core/tables"  // Register all tables
	"github.com/JonMunkholm/FoodShare/internal/logging"
	"github.com/JonMunkholm/FoodShare/internal/metrics"
	"github.com/JonMunkholm/FoodShare/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	slog.Info("catalog registered",
		"tables", len(core.Tables()),
		"reports", core.ReportCount(),
	)

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec = metrics.New(cfg.Metrics.Runtime)
	}

	// Load the dataset once; it is immutable for the life of the process
	ctx := context.Background()
	ds, err := loadDataset(ctx, cfg, rec)
	if err != nil {
		slog.Error("failed to load dataset", "error", err, "detail", core.FormatUserError(err))
		os.Exit(1)
	}

	service, err := core.NewService(ds, core.Options{
		CacheViews: cfg.Data.CacheViews,
		Metrics:    rec,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	// Resolve the views up front so join integrity problems surface at startup
	if cfg.Data.CacheViews {
		lwp, detail, err := service.Views()
		if err != nil {
			slog.Error("failed to resolve views", "error", err, "detail", core.FormatUserError(err))
			os.Exit(1)
		}
		slog.Info("views resolved",
			core.ViewListingsWithProvider, lwp.Len(),
			core.ViewClaimsDetail, detail.Len(),
		)
	}

	server := web.NewServer(service, rec, cfg.Server, cfg.Metrics)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadDataset reads the four tables from Postgres when DATABASE_URL is set,
// otherwise from the CSV files under DATA_DIR.
func loadDataset(ctx context.Context, cfg *config.Config, rec *metrics.Recorder) (*core.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
	defer cancel()

	var (
		src    core.Source
		source string
	)
	if cfg.Database.UseDatabase() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		// The dataset is read once, so the pool is not needed afterwards
		defer pool.Close()

		src = core.NewPostgresSource(pool, cfg.Database.Schema)
		source = "postgres"
	} else {
		src = core.NewCSVSource(cfg.Data.Paths())
		source = "csv"
		slog.Info("reading csv files", "dir", cfg.Data.Dir)
	}

	start := time.Now()
	ds, err := core.Load(ctx, src)
	if err != nil {
		rec.DatasetLoad(source, time.Since(start), err, nil)
		return nil, err
	}
	rec.DatasetLoad(source, time.Since(start), nil, ds.RowCounts())

	slog.Info("dataset ready", "source", source, "dataset_id", ds.ID)
	return ds, nil
}

// connect opens and verifies a pgx pool from cfg.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	// Apply pool configuration from config
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return pool, nil
}
