package http

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// scratchArea stages downloads on local disk below dir, one subdirectory per
// user. Every staged file has a unique name, so concurrent downloads of the
// same document never collide.
type scratchArea struct {
	dir string
}

// stage copies content into a new scratch file for user and returns it
// positioned at the start. The caller must pass it to release.
func (s scratchArea) stage(user string, content io.Reader) (*os.File, error) {
	userDir := filepath.Join(s.dir, user)
	if err := os.MkdirAll(userDir, 0o750); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	f, err := os.Create(filepath.Join(userDir, "dl-"+uuid.NewString()+".pdf"))
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		s.release(f)
		return nil, fmt.Errorf("write scratch file: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		s.release(f)
		return nil, fmt.Errorf("rewind scratch file: %w", err)
	}

	return f, nil
}

// release closes and removes a staged file.
func (s scratchArea) release(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("failed to close scratch file", "file", f.Name(), "err", err)
	}
	if err := os.Remove(f.Name()); err != nil {
		slog.Warn("failed to remove scratch file", "file", f.Name(), "err", err)
	}
}
