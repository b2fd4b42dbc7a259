// Package storage abstracts the blob store that holds uploaded task files.
// The rest of the system only sees opaque URLs.
package storage

// FileBlob is an uploaded file's raw content plus its original name.
type FileBlob struct {
	Name string
	Data []byte
}

// BlobStore stores file bytes under a folder and returns a retrievable URL.
// Implementations fail with *apperrors.UploadError.
type BlobStore interface {
	Upload(data []byte, folder string) (string, error)
}
