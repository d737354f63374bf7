package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts where uploaded payment screenshots and guide covers end
// up. Paths are forward-slash relative keys like "screenshots/<id>/<file>".
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL a client can fetch the object from.
	URL(path string) string
}

type Config struct {
	Type      string // local or s3 (covers any S3-compatible endpoint, R2 included)
	BasePath  string // local only
	BaseURL   string // public URL base
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // set for R2 or a custom S3 endpoint
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
