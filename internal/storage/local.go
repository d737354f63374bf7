package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps uploads on the local filesystem. It is the default in
// development and in tests.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: cfg.BasePath, baseURL: cfg.BaseURL}, nil
}

func (s *LocalStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) URL(path string) string {
	if s.baseURL == "" {
		return fmt.Sprintf("/files/%s", path)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, path)
}
