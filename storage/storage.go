// Package storage opens the book repository selected by configuration.
package storage

import (
	"context"
	"fmt"
	"strconv"

	"phonebook/contact"
	"phonebook/dynamodb"
	"phonebook/filestore"
	"phonebook/pkg/config"
	"phonebook/postgres"
)

// Open returns the repository for cfg.Storage.Driver and a function releasing
// whatever it holds.
func Open(ctx context.Context, cfg *config.Config) (contact.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case "", config.DriverFile:
		return filestore.NewBookRepository(cfg.Storage.DataFile), noop, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("storage: postgres handle: %w", err)
		}
		return postgres.NewBookRepository(db), sqlDB.Close, nil

	case config.DriverDynamoDB:
		repo, err := dynamodb.Open(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
			Table:        cfg.DynamoDB.Table,
			BookKey:      cfg.DynamoDB.BookKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open dynamodb: %w", err)
		}
		return repo, noop, nil
	}

	return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Storage.Driver)
}
