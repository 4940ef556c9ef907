package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"phonebook/pkg/config"
	"phonebook/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back the phone book schema")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	opts := postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		logger.Error("cannot connecting to db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	dir := migrate.Up
	if *down {
		dir = migrate.Down
	}

	total, err := postgres.Migrate(db, dir)
	if err != nil {
		logger.Error("cannot execute migration", "error", err)
		os.Exit(1)
	}

	logger.Info("applied migrations", "total", total, "down", *down)
}
