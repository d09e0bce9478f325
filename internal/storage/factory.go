package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/config"
)

func NewFileRepositories(catalogFile, plansFile string, logger internal.Logger) (CatalogRepository, PlanRepository, io.Closer, error) {
	storage, err := NewFileStorage(catalogFile, plansFile, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewPostgresRepositories(ctx context.Context, dsn string, logger internal.Logger) (CatalogRepository, PlanRepository, io.Closer, error) {
	storage, err := NewPostgresStorage(ctx, dsn, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewSQLiteRepositories(ctx context.Context, path string, logger internal.Logger) (CatalogRepository, PlanRepository, io.Closer, error) {
	storage, err := NewSQLiteStorage(ctx, path, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewMongoRepositories(ctx context.Context, uri, database string, logger internal.Logger) (CatalogRepository, PlanRepository, io.Closer, error) {
	storage, err := NewMongoStorage(ctx, uri, database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

// NewRepositories opens the backend named by cfg.StorageBackend. With
// CatalogSource "s3" the catalog is read from S3 and the backend only stores
// generated plans.
func NewRepositories(ctx context.Context, cfg *config.Config, logger internal.Logger) (CatalogRepository, PlanRepository, io.Closer, error) {
	var (
		catalog CatalogRepository
		plans   PlanRepository
		closer  io.Closer
		err     error
	)
	switch cfg.StorageBackend {
	case "file":
		catalog, plans, closer, err = NewFileRepositories(cfg.CatalogFile, cfg.PlansFile, logger)
	case "postgres":
		catalog, plans, closer, err = NewPostgresRepositories(ctx, cfg.PostgresDSN, logger)
	case "sqlite":
		catalog, plans, closer, err = NewSQLiteRepositories(ctx, cfg.SQLitePath, logger)
	case "mongo":
		catalog, plans, closer, err = NewMongoRepositories(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	default:
		return nil, nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.CatalogSource == "s3" {
		s3Catalog, err := NewS3Catalog(ctx, cfg.S3Bucket, cfg.S3Key, logger)
		if err != nil {
			_ = closer.Close()
			return nil, nil, nil, err
		}
		catalog = s3Catalog
	}
	return catalog, plans, closer, nil
}
