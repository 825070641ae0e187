package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/banchee-erp/banchee-erp/internal/app"
	"github.com/banchee-erp/banchee-erp/internal/backup"
	"github.com/banchee-erp/banchee-erp/internal/cashbook/export"
	"github.com/banchee-erp/banchee-erp/internal/platform/cache"
	"github.com/banchee-erp/banchee-erp/internal/platform/db"
	"github.com/banchee-erp/banchee-erp/internal/settings"
	"github.com/banchee-erp/banchee-erp/internal/transactions"
	"github.com/banchee-erp/banchee-erp/jobs"
	"github.com/banchee-erp/banchee-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	settingsRepo := settings.NewRepository(pool, settings.Settings{
		SchoolName:     cfg.SchoolName,
		FinanceOfficer: cfg.FinanceOfficer,
		Auditor:        cfg.Auditor,
		Director:       cfg.Director,
	})

	txRepo := transactions.NewRepository(pool)
	txService := transactions.NewService(txRepo)

	gotenberg := report.NewClient(cfg.GotenbergURL)
	pdfExporter := export.NewPDFExporter(gotenberg)
	txHandler := transactions.NewHandler(logger, txService, settingsRepo, pdfExporter, redisClient, nil)

	warmupJob := jobs.NewReportWarmupJob(txHandler, logger, nil)

	backupService := backup.NewService(txRepo, settingsRepo)
	snapshotJob := jobs.NewBackupSnapshotJob(backupService, cfg.BackupDir, cfg.BackupKeep, logger, nil)

	warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskBackupSnapshot, Handler: snapshotJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 2 * * *", Task: jobs.NewBackupSnapshotTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
