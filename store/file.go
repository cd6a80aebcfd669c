package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Store = (*fileStore)(nil)

// fileStore is the capacity-limited fallback: a single JSON file written
// atomically via a temp file and rename.
type fileStore struct {
	path  string
	limit int64
}

func openFile(path string, limit int64) (*fileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory: %w", err)
	}
	return &fileStore{path: path, limit: limit}, nil
}

func (s *fileStore) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", s.path, err)
	}
	return blob, nil
}

func (s *fileStore) Save(_ context.Context, blob []byte) error {
	if s.limit > 0 && int64(len(blob)) > s.limit {
		return fmt.Errorf("document size %d exceeds fallback capacity %d bytes", len(blob), s.limit)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fortress-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not close %q: %w", tmp.Name(), err)
	}
	// Rename is atomic on POSIX filesystems: the previous content stays
	// intact unless the whole write succeeded.
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace %q: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *fileStore) Kind() Kind { return Fallback }

func (s *fileStore) Close() error { return nil }
