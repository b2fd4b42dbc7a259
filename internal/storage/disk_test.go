package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
)

func TestDiskStoreUpload(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/media")

	url, err := store.Upload([]byte("hello"), "task_files")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/task_files/"), "unexpected url %q", url)

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(root, "task_files", name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDiskStoreUploadFailureIsUploadError(t *testing.T) {
	root := t.TempDir()
	// A regular file where the folder should go makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(root, "task_files"), []byte("x"), 0o644))

	store := NewDiskStore(root, "/media")
	_, err := store.Upload([]byte("data"), "task_files")

	var up *apperrors.UploadError
	assert.ErrorAs(t, err, &up)
}
