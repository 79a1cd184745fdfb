package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sagarc03/docshelf"
	"github.com/sagarc03/docshelf/config"
	"github.com/sagarc03/docshelf/filesystem"
	"github.com/sagarc03/docshelf/miniostore"
	"github.com/sagarc03/docshelf/s3store"
	"github.com/sagarc03/docshelf/userbackend"
)

// openBackend builds the object backend selected by cfg.Driver. The returned
// function releases resources held by the backend.
func openBackend(ctx context.Context, cfg config.StorageConfig) (docshelf.ObjectBackend, func(), error) {
	driver, err := docshelf.ParseStorageDriver(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	switch driver {
	case docshelf.DriverS3:
		store, err := s3store.New(ctx, s3store.Config{
			Region:       cfg.Region,
			Endpoint:     cfg.Endpoint,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			UsePathStyle: cfg.UsePathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create s3 backend: %w", err)
		}
		return store, func() {}, nil

	case docshelf.DriverMinio:
		store, err := miniostore.New(miniostore.Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create minio backend: %w", err)
		}
		return store, func() {}, nil

	case docshelf.DriverFilesystem:
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create storage directory: %w", err)
		}

		root, err := os.OpenRoot(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.NewFileStorage(root), func() { _ = root.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver: %s", driver)
}

// openDocumentStore wires the configured backend into a DocumentStore.
func openDocumentStore(ctx context.Context, cfg *config.Config) (*docshelf.DocumentStore, func(), error) {
	backend, closeBackend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	store, err := docshelf.NewDocumentStore(backend, cfg.Storage.Bucket)
	if err != nil {
		closeBackend()
		return nil, nil, fmt.Errorf("create document store: %w", err)
	}

	return store, closeBackend, nil
}

func newAuthenticator(cfg *config.Config) (*docshelf.Authenticator, error) {
	users, err := userbackend.NewCredentialStore(cfg.Auth.Users)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	auth, err := docshelf.NewAuthenticator(users, cfg.Auth.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("create authenticator: %w", err)
	}
	return auth, nil
}
