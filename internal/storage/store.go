package storage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/config"
)

// Kind separates the two blob namespaces.
type Kind string

const (
	KindArchive Kind = "archives"
	KindImage   Kind = "images"
)

// Store abstracts where project blobs live. Keys are opaque to callers;
// the same key must round-trip through Open and Delete.
type Store interface {
	// Save writes the blob and returns its storage key and size in bytes.
	Save(ctx context.Context, kind Kind, name string, r io.Reader) (key string, size int64, err error)
	// Open streams a previously saved blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// OpenNamed streams a blob addressed by its bare filename inside a
	// namespace, as the image-serving endpoint addresses it.
	OpenNamed(ctx context.Context, kind Kind, name string) (io.ReadCloser, error)
	// Delete removes a blob. Missing blobs are not an error.
	Delete(ctx context.Context, key string) error
}

// New selects the configured backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendS3:
		return newS3Store(ctx, cfg, logger)
	case config.StorageBackendLocal, "":
		return newLocalStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// HumanSize renders a byte count the way the catalog displays it.
func HumanSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
