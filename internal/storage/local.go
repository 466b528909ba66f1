package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/config"
)

// localStore writes blobs under the configured upload directories,
// prefixing each file with a uuid to avoid collisions.
type localStore struct {
	archiveDir string
	imageDir   string
	logger     *zap.Logger
}

func newLocalStore(cfg config.StorageConfig, logger *zap.Logger) (*localStore, error) {
	for _, dir := range []string{cfg.ArchiveDir, cfg.ImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	logger.Info("local storage ready",
		zap.String("archives", cfg.ArchiveDir),
		zap.String("images", cfg.ImageDir))
	return &localStore{archiveDir: cfg.ArchiveDir, imageDir: cfg.ImageDir, logger: logger}, nil
}

func (s *localStore) dirFor(kind Kind) string {
	if kind == KindImage {
		return s.imageDir
	}
	return s.archiveDir
}

func (s *localStore) Save(_ context.Context, kind Kind, name string, r io.Reader) (string, int64, error) {
	filename := uuid.NewString() + "_" + sanitizeFilename(name)
	path := filepath.Join(s.dirFor(kind), filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, r)
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

func (s *localStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(key)
}

func (s *localStore) OpenNamed(_ context.Context, kind Kind, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dirFor(kind), filepath.Base(name)))
}

func (s *localStore) Delete(_ context.Context, key string) error {
	err := os.Remove(key)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// sanitizeFilename strips path separators and other surprises from a
// client-provided filename before it touches the filesystem.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	// filepath.Base maps "" to "." and dots pass the filter above
	switch out := b.String(); out {
	case "", ".", "..":
		return "file"
	default:
		return out
	}
}
