package main

import (
	"context"
	"log/slog"
	"os"

	"phonebook/console"
	"phonebook/contact"
	"phonebook/pkg/config"
	"phonebook/pkg/logger"
	"phonebook/pkg/sentry"
	"phonebook/storage"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/multierr"
)

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		return 1
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		slog.Error("cannot create logger", "error", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Errorw("cannot init sentry", "error", err)
		return 1
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx := context.Background()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Errorw("cannot open storage", "driver", cfg.Storage.Driver, "error", err)
		return 1
	}

	uc := contact.NewUsecase(repo, contact.WithLogger(log))
	shell := console.New(uc, os.Stdin, os.Stdout, console.WithLogger(log))

	if err := multierr.Combine(shell.Run(ctx), closeRepo()); err != nil {
		log.Errorw("phone book stopped with error", "error", err)
		return 1
	}
	return 0
}
