// Package filesystem provides a local directory backend for docshelf.
// Each bucket is a directory below the root and each object a file below its
// bucket. Writes are atomic (temp file, then rename).
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sagarc03/docshelf"
)

// tmpDir holds in-flight writes. It is hidden from ListBuckets.
const tmpDir = ".tmp"

// Store provides file system object storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// ListBuckets returns the names of the bucket directories below the root.
func (s *Store) ListBuckets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	buckets := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			buckets = append(buckets, e.Name())
		}
	}

	return buckets, nil
}

// CreateBucket creates the bucket directory. Creating an existing bucket is
// not an error.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.root.Mkdir(bucket, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// GetObject opens an object for reading. Returns docshelf.ErrNotFound if the
// object does not exist.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(path.Join(bucket, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, docshelf.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// PutObject atomically writes content to bucket/key using a temp file and
// rename, creating intermediate directories as needed. The bucket must exist.
// size and contentType are not used by this backend.
func (s *Store) PutObject(ctx context.Context, bucket, key string, content io.Reader, _ int64, _ string) (string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	if _, err := s.root.Stat(bucket); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("bucket %s: %w", bucket, docshelf.ErrNotFound)
		}
		return "", fmt.Errorf("stat bucket: %w", err)
	}

	if err := s.root.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create temp directory: %w", err)
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return "", fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !success {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := io.Copy(t, &ctxReader{ctx: ctx, r: content}); err != nil {
		return "", fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return "", fmt.Errorf("could not sync written file: %w", err)
	}

	objectPath := path.Join(bucket, key)

	destDir := path.Dir(objectPath)
	if destDir != bucket {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return "", fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	if renameErr := s.root.Rename(tmpFile, objectPath); renameErr != nil {
		return "", fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return "file://" + path.Join(s.root.Name(), objectPath), nil
}

// DeleteObject removes an object. Returns docshelf.ErrNotFound if it does
// not exist.
func (s *Store) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.root.Remove(path.Join(bucket, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return docshelf.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// ListKeys recursively walks the bucket directory and returns every object
// key, using "/" as separator. Only the subtree matching prefix is walked.
func (s *Store) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.root.Stat(bucket); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("bucket %s: %w", bucket, docshelf.ErrNotFound)
		}
		return nil, fmt.Errorf("stat bucket: %w", err)
	}

	start := bucket
	if dir := path.Dir(prefix); prefix != "" && dir != "." {
		start = path.Join(bucket, dir)
	}

	keys := []string{}

	err := s.walkDir(ctx, bucket, start, &keys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && start != bucket {
			return keys, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	keys = slices.DeleteFunc(keys, func(k string) bool {
		return !strings.HasPrefix(k, prefix)
	})

	return keys, nil
}

func (s *Store) walkDir(ctx context.Context, bucket, dir string, keys *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := path.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, bucket, entryPath, keys); err != nil {
				return err
			}
			continue
		}

		key := strings.TrimPrefix(entryPath, bucket+"/")
		*keys = append(*keys, key)
	}

	return nil
}

func tmpFileName() string {
	return path.Join(tmpDir, fmt.Sprintf(".t%s", uuid.New().String()))
}
