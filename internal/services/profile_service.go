package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/models"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) List() ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.Preload("User").Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) Get(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Touch bumps the profile's updated_at. Profiles expose no writable fields
// beyond timestamp bookkeeping; the denormalized user fields are read-only.
func (s *ProfileService) Touch(profile *models.Profile) (*models.Profile, error) {
	if err := s.db.Model(profile).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		return nil, err
	}
	return s.Get(profile.ID)
}
