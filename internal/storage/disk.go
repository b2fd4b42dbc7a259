package storage

import (
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
)

// DiskStore is a BlobStore backed by a local directory served at a base URL.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: baseURL}
}

func (s *DiskStore) Upload(data []byte, folder string) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &apperrors.UploadError{Err: err}
	}

	name := uuid.New().String()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", &apperrors.UploadError{Err: err}
	}

	return s.baseURL + "/" + path.Join(folder, name), nil
}
