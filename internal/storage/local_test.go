package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/config"
)

func newTestStore(t *testing.T) *localStore {
	t.Helper()
	root := t.TempDir()
	store, err := newLocalStore(config.StorageConfig{
		ArchiveDir: filepath.Join(root, "archives"),
		ImageDir:   filepath.Join(root, "images"),
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, size, err := store.Save(ctx, KindArchive, "projet.zip", strings.NewReader("zip-bytes"))
	require.NoError(t, err)
	require.EqualValues(t, 9, size)
	require.True(t, strings.HasSuffix(key, "_projet.zip"))

	r, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "zip-bytes", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	require.Error(t, err)

	// deleting a missing blob is not an error
	require.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreOpenNamed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, _, err := store.Save(ctx, KindImage, "capture.png", strings.NewReader("png"))
	require.NoError(t, err)

	r, err := store.OpenNamed(ctx, KindImage, filepath.Base(key))
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "png", string(body))

	// path traversal in the name stays confined to the namespace
	archiveKey, _, err := store.Save(ctx, KindArchive, "projet.zip", strings.NewReader("zip"))
	require.NoError(t, err)
	_, err = store.OpenNamed(ctx, KindImage, "../archives/"+filepath.Base(archiveKey))
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "projet.zip", sanitizeFilename("projet.zip"))
	require.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	require.Equal(t, "mon_projet.zip", sanitizeFilename("mon projet.zip"))
	require.Equal(t, "file", sanitizeFilename(""))
	require.Equal(t, "file", sanitizeFilename("."))
	require.Equal(t, "file", sanitizeFilename(".."))
}

func TestHumanSize(t *testing.T) {
	require.Equal(t, "1.0 MB", HumanSize(1024*1024))
	require.Equal(t, "2.5 MB", HumanSize(2621440))
	require.Equal(t, "0.0 MB", HumanSize(0))
}
