package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// SeedDefaults ensures the default category names exist. Idempotent: rerunning
// never duplicates (name is unique) and never errors on existing rows.
func (s *CategoryService) SeedDefaults() error {
	seeded := 0
	for _, name := range models.DefaultCategories {
		var existing models.Category
		err := s.db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category := models.Category{ID: uuid.New(), Name: name}
		if err := s.db.Create(&category).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded default categories", "new", seeded, "total", len(models.DefaultCategories))
	}
	return nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
