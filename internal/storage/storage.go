package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/templui/goalnote/internal/config"
)

// Storage defines the interface for file storage operations.
// Paths are relative, slash separated, and never start with a slash.
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// URL returns the URL clients use to fetch the file
	URL(ctx context.Context, path string) string
}

// New creates the storage backend selected by STORAGE_DRIVER
func New(c *config.Config) (Storage, error) {
	switch c.StorageDriver {
	case "", "local":
		slog.Info("initializing local storage", "root", c.MediaRoot, "url", c.MediaURL)
		return NewLocalStorage(c.MediaRoot, c.MediaURL)
	case "s3":
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
