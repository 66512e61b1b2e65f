package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/propertymasters/propertymasters/internal/app"
	"github.com/propertymasters/propertymasters/internal/platform/db"
	"github.com/propertymasters/propertymasters/internal/savedsearch"
	"github.com/propertymasters/propertymasters/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}

	client := jobs.NewClient(redisOpts)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	notifier := &jobs.EmailNotifier{Client: client}
	savedSearchService := savedsearch.NewService(savedsearch.NewRepository(pool), notifier, logger)
	scanJob := jobs.NewSavedSearchScanJob(savedSearchService, logger)

	mailer := &jobs.SMTPMailer{
		Addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		From: cfg.SMTPFrom,
	}
	emailJob := &jobs.SendEmailJob{Mailer: mailer, Logger: logger}

	dailyTask, err := jobs.NewSavedSearchScanTask(savedsearch.FrequencyDaily)
	if err != nil {
		logger.Error("build daily scan task", slog.Any("error", err))
		os.Exit(1)
	}
	weeklyTask, err := jobs.NewSavedSearchScanTask(savedsearch.FrequencyWeekly)
	if err != nil {
		logger.Error("build weekly scan task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSavedSearchScan, Handler: scanJob.Handle},
			{Type: jobs.TaskTypeSendEmail, Handler: emailJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SavedSearchDailyCron, Task: dailyTask},
			{Spec: cfg.SavedSearchWeeklyCron, Task: weeklyTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
