package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Options configures the connection and the item that holds the book.
type Options struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string

	Table string
	// BookKey is the id of the book item. Empty means DefaultKey.
	BookKey string
}

func (opts Options) credentials() (aws.CredentialsProvider, error) {
	if opts.AccessKey == "" && opts.SecretKey == "" && opts.SessionToken == "" {
		return nil, nil
	}
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, errors.New("dynamodb: access key and secret key must be set together")
	}
	return credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken), nil
}

func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("dynamodb: region is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	provider, err := opts.credentials()
	if err != nil {
		return nil, err
	}
	if provider != nil {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(provider))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// Open connects and returns the repository of the configured book item.
func Open(ctx context.Context, opts Options) (*BookRepository, error) {
	if err := validateTable(opts.Table); err != nil {
		return nil, err
	}
	client, err := NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewBookRepository(client, opts.Table, opts.BookKey), nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}
