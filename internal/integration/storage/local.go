// Package storage implements image storage backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fabrie/backend/internal/application/adapter"
)

// localImageStorage writes images below a media root served under baseURL.
type localImageStorage struct {
	root    string
	baseURL string
}

// NewLocalImageStorage creates a filesystem backed image storage.
func NewLocalImageStorage(root, baseURL string) adapter.ImageStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &localImageStorage{
		root:    root,
		baseURL: baseURL,
	}
}

func (s *localImageStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Save writes data under key, creating parent directories as needed.
func (s *localImageStorage) Save(_ context.Context, key, _ string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// Delete removes the file stored under key.
func (s *localImageStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL returns the public URL of key.
func (s *localImageStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + strings.TrimPrefix(key, "/")
}
