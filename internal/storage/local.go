package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Store writes data under a generated name. The caller never controls the
// filename, so path traversal through user input is impossible.
func (s *LocalStore) Store(_ context.Context, data []byte, ext string) (string, error) {
	ext = strings.TrimPrefix(ext, ".")
	name := uuid.NewString()
	if ext != "" {
		name = name + "." + ext
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	// Only names we generated are accepted back.
	if name != filepath.Base(name) {
		return errors.New("invalid file name")
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
