package docshelf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// DocumentStore keeps users' documents in one bucket of an ObjectBackend,
// each under the "<user>/" key prefix.
//
// All methods return explicit errors; callers decide whether to degrade.
type DocumentStore struct {
	backend ObjectBackend
	bucket  string
}

// NewDocumentStore creates a DocumentStore for bucket on backend.
func NewDocumentStore(backend ObjectBackend, bucket string) (*DocumentStore, error) {
	if backend == nil {
		return nil, errors.New("new document store: backend is nil")
	}
	if !IsValidBucketName(bucket) {
		return nil, fmt.Errorf("new document store: invalid bucket name %q: %w", bucket, ErrInvalidInput)
	}
	return &DocumentStore{backend: backend, bucket: bucket}, nil
}

// Bucket returns the bucket name.
func (s *DocumentStore) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket if it does not exist yet. It reports whether
// the bucket exists once the call returns; a false result always comes with
// an error describing why.
//
// It is idempotent and meant to run once at startup.
func (s *DocumentStore) EnsureBucket(ctx context.Context) (bool, error) {
	buckets, err := s.backend.ListBuckets(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure bucket: list buckets: %w", err)
	}

	if slices.Contains(buckets, s.bucket) {
		slog.Info("bucket already exists", "bucket", s.bucket)
		return true, nil
	}

	if err := s.backend.CreateBucket(ctx, s.bucket); err != nil {
		return false, fmt.Errorf("ensure bucket: create %s: %w", s.bucket, err)
	}

	slog.Info("bucket created", "bucket", s.bucket)
	return true, nil
}

// Put uploads content as user's document filename, replacing any previous
// version. size is -1 when unknown. It returns the backend's location of the
// stored object.
func (s *DocumentStore) Put(ctx context.Context, user, filename string, content io.Reader, size int64) (string, error) {
	key, err := s.key(user, filename)
	if err != nil {
		return "", fmt.Errorf("put: %w", err)
	}

	location, err := s.backend.PutObject(ctx, s.bucket, key, content, size, PDFContentType)
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return location, nil
}

// Get opens user's document filename. The caller must close the returned
// reader. Returns ErrNotFound if the document does not exist.
func (s *DocumentStore) Get(ctx context.Context, user, filename string) (io.ReadCloser, error) {
	key, err := s.key(user, filename)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	body, err := s.backend.GetObject(ctx, s.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return body, nil
}

// Delete removes user's document filename.
func (s *DocumentStore) Delete(ctx context.Context, user, filename string) error {
	key, err := s.key(user, filename)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := s.backend.DeleteObject(ctx, s.bucket, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// List returns the filenames of user's documents in lexical order. The result
// is never nil. Keys below the user's prefix that are not valid filenames,
// such as nested "user/dir/x.pdf" objects written out of band, are left out.
// A failure to list the bucket is returned as an error rather than an empty
// list.
func (s *DocumentStore) List(ctx context.Context, user string) ([]string, error) {
	if !IsValidUsername(user) {
		return nil, fmt.Errorf("list: invalid user %q: %w", user, ErrInvalidInput)
	}

	prefix := UserPrefix(user)

	keys, err := s.backend.ListKeys(ctx, s.bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || !IsValidFilename(name) {
			continue
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}

func (s *DocumentStore) key(user, filename string) (string, error) {
	if !IsValidUsername(user) {
		return "", fmt.Errorf("invalid user %q: %w", user, ErrInvalidInput)
	}
	if !IsValidFilename(filename) {
		return "", fmt.Errorf("invalid filename %q: %w", filename, ErrInvalidInput)
	}
	return NamespacedKey(user, filename), nil
}
