package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/banchee-erp/banchee-erp/internal/app"
	"github.com/banchee-erp/banchee-erp/internal/auth"
	"github.com/banchee-erp/banchee-erp/internal/backup"
	"github.com/banchee-erp/banchee-erp/internal/cashbook/export"
	"github.com/banchee-erp/banchee-erp/internal/observability"
	"github.com/banchee-erp/banchee-erp/internal/platform/cache"
	"github.com/banchee-erp/banchee-erp/internal/platform/db"
	"github.com/banchee-erp/banchee-erp/internal/settings"
	"github.com/banchee-erp/banchee-erp/internal/transactions"
	"github.com/banchee-erp/banchee-erp/jobs"
	"github.com/banchee-erp/banchee-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// degrade to uncached operation rather than refusing to start
		logger.Warn("redis unavailable", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, redisClient, cfg.SessionTTL)
	authHandler := auth.NewHandler(logger, authService)

	settingsRepo := settings.NewRepository(dbpool, settings.Settings{
		SchoolName:     cfg.SchoolName,
		FinanceOfficer: cfg.FinanceOfficer,
		Auditor:        cfg.Auditor,
		Director:       cfg.Director,
	})
	settingsHandler := settings.NewHandler(logger, settingsRepo)

	gotenberg := report.NewClient(cfg.GotenbergURL)
	if err := gotenberg.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}
	pdfExporter := export.NewPDFExporter(gotenberg)

	metrics := observability.NewMetrics()

	txRepo := transactions.NewRepository(dbpool)
	txService := transactions.NewService(txRepo)
	txHandler := transactions.NewHandler(logger, txService, settingsRepo, pdfExporter, redisClient, metrics)

	backupService := backup.NewService(txRepo, settingsRepo)
	backupHandler := backup.NewHandler(logger, backupService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		TransactionsHandler: txHandler,
		SettingsHandler:     settingsHandler,
		BackupHandler:       backupHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
