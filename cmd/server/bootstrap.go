package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"daybook/internal/config"
	"daybook/internal/repository"
	"daybook/internal/repository/mongodb"
	"daybook/internal/repository/sqlite"
	"daybook/internal/storage"
)

func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(parsed)
	return logger, nil
}

// openStore connects the configured database and prepares its schema.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverMongo:
		store, err = mongodb.Connect(ctx, cfg.Database.URI, cfg.Database.Name)
	case config.DriverSQLite:
		store, err = sqlite.NewStore(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init %s store: %w", cfg.Database.Driver, err)
	}
	return store, nil
}

// buildStorage returns nil when no bucket is configured; uploads are then disabled.
func buildStorage(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("no storage bucket configured, profile picture uploads disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
