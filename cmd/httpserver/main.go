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

	"phonebook/contact"
	"phonebook/httpserver"
	"phonebook/pkg/config"
	"phonebook/pkg/logger"
	"phonebook/pkg/metrics"
	"phonebook/pkg/sentry"
	"phonebook/storage"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		return 1
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		slog.Error("Cannot create logger", "error", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Errorw("Cannot init sentry", "error", err)
		return 1
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Errorw("Cannot open storage", "driver", cfg.Storage.Driver, "error", err)
		return 1
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	uc := contact.NewUsecase(repo,
		contact.WithLogger(log),
		contact.WithMetrics(metrics.New(reg)),
	)
	if err := uc.Open(ctx); err != nil {
		log.Warnw("starting with an empty phone book", "error", err)
	}

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithBookService(uc),
		httpserver.WithGatherer(reg),
	)
	if err != nil {
		log.Errorw("Cannot create server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case serveErr = <-errCh:
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := multierr.Combine(serveErr, server.Shutdown(shutdownCtx), closeRepo()); err != nil {
		log.Errorw("server stopped with error", "error", err)
		return 1
	}
	return 0
}
