package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/config"
	"github.com/tasknest/tasknest-backend/internal/database"
	"github.com/tasknest/tasknest-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fakeBlobStore records uploads and can be told to fail after a number of
// successful ones.
type fakeBlobStore struct {
	uploads   []string
	failAfter int // -1 never fails
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{failAfter: -1}
}

func (f *fakeBlobStore) Upload(data []byte, folder string) (string, error) {
	if f.failAfter >= 0 && len(f.uploads) >= f.failAfter {
		return "", &apperrors.UploadError{Err: errors.New("blob store unavailable")}
	}
	url := fmt.Sprintf("https://blobs.test/%s/%d", folder, len(f.uploads))
	f.uploads = append(f.uploads, url)
	return url, nil
}
