package docshelf

import (
	"context"
	"fmt"
	"io"
)

// PDFContentType is the content type documents are stored and served with.
const PDFContentType = "application/pdf"

// ObjectBackend performs raw operations against an object store. Keys are
// full object keys; namespacing is the caller's concern.
//
// Implementations must return ErrNotFound (wrapped or not) when GetObject or
// DeleteObject target a key that does not exist, where the backend can tell.
type ObjectBackend interface {
	// ListBuckets returns the names of all buckets visible to the credentials.
	ListBuckets(ctx context.Context) ([]string, error)

	// CreateBucket creates a bucket with the given name.
	CreateBucket(ctx context.Context, bucket string) error

	// PutObject stores content under key and returns a location identifier.
	// size is -1 when unknown.
	PutObject(ctx context.Context, bucket, key string, content io.Reader, size int64, contentType string) (string, error)

	// GetObject opens the object for reading. The caller closes the reader.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, bucket, key string) error

	// ListKeys returns the keys in the bucket. prefix is a hint; backends may
	// return keys outside it.
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// CredentialStore resolves the password a user signs in with.
type CredentialStore interface {
	// Lookup returns the password for username, or an error wrapping
	// ErrUnauthorized if the user is unknown.
	Lookup(username string) (string, error)
}

// StorageDriver selects the ObjectBackend implementation.
type StorageDriver string

const (
	DriverS3         StorageDriver = "s3"
	DriverMinio      StorageDriver = "minio"
	DriverFilesystem StorageDriver = "filesystem"
)

func (d StorageDriver) IsValid() bool {
	switch d {
	case DriverS3, DriverMinio, DriverFilesystem:
		return true
	default:
		return false
	}
}

func ParseStorageDriver(s string) (StorageDriver, error) {
	driver := StorageDriver(s)
	if !driver.IsValid() {
		return "", fmt.Errorf("invalid storage driver: %s (valid drivers: s3, minio, filesystem)", s)
	}
	return driver, nil
}
