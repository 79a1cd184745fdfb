// Package miniostore provides a MinIO backend for docshelf using minio-go.
package miniostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sagarc03/docshelf"
)

// Config holds the connection settings for a MinIO server.
type Config struct {
	Endpoint  string // "host:port" or "http(s)://host:port"
	Region    string
	AccessKey string
	SecretKey string
}

// Store implements docshelf.ObjectBackend on MinIO.
type Store struct {
	client *minio.Client
	region string
}

// New creates a Store for the server at cfg.Endpoint. No request is made
// until the first operation.
func New(cfg Config) (*Store, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials: %w", docshelf.ErrInvalidInput)
	}

	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("minio endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Store{client: client, region: cfg.Region}, nil
}

// normaliseEndpoint accepts "minio:9000" as well as "http://minio:9000" or
// "https://minio:9000" and reports whether TLS should be used.
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, errors.New("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, errors.New("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, errors.New("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}

func (s *Store) ListBuckets(ctx context.Context) ([]string, error) {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("minio list buckets: %w", err)
	}

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names, nil
}

// CreateBucket creates the bucket. A bucket that already belongs to the
// caller is not an error.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return fmt.Errorf("minio create bucket: %w", err)
	}
	return nil
}

func (s *Store) PutObject(ctx context.Context, bucket, key string, content io.Reader, size int64, contentType string) (string, error) {
	if size < 0 {
		size = -1
	}

	info, err := s.client.PutObject(ctx, bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put object: %w", mapError(err))
	}

	return fmt.Sprintf("s3://%s/%s", info.Bucket, info.Key), nil
}

// GetObject opens the object for reading. The object is stat'ed first so a
// missing key is reported here rather than on the first Read.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get object: %w", mapError(err))
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("minio stat object: %w", mapError(err))
	}

	return obj, nil
}

func (s *Store) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete object: %w", mapError(err))
	}
	return nil
}

func (s *Store) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	keys := []string{}
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio list objects: %w", mapError(obj.Err))
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// mapError translates missing-key and missing-bucket responses to
// docshelf.ErrNotFound.
func mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %w", docshelf.ErrNotFound, err)
	}
	return err
}
