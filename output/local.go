package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrInvalidName is returned for names that are empty or would escape the
// output directory.
var ErrInvalidName = errors.New("invalid output name")

// LocalDir writes documents into a directory on disk.
type LocalDir struct {
	Dir string
}

// NewLocalDir returns a LocalDir rooted at dir.
func NewLocalDir(dir string) *LocalDir {
	return &LocalDir{Dir: dir}
}

// Path returns the on-disk path for name.
func (l *LocalDir) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.Dir, name), nil
}

// Save writes b to a temporary file next to the target and renames it into
// place, so the target is either the complete document or untouched.
func (l *LocalDir) Save(ctx context.Context, name string, b []byte) (string, error) {
	path, err := l.Path(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(l.Dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(b); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	slog.Info("Saved document", "file", path, "bytes", len(b))
	return path, nil
}

// Remove deletes a saved document. A missing file is not an error.
func (l *LocalDir) Remove(ctx context.Context, name string) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	slog.Info("Removed document", "file", path)
	return nil
}

// Open opens a previously saved document for reading.
func (l *LocalDir) Open(name string) (io.ReadSeekCloser, os.FileInfo, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}
