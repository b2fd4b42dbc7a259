package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies the self-service account fields. Uniqueness violations are
// collected into a ValidationError. The permission check (self only) happens
// in the handler.
func (s *UserService) Update(user *models.User, req *dto.UpdateUserRequest) (*models.User, error) {
	v := apperrors.NewValidation()

	if req.Username != nil && *req.Username != user.Username {
		if *req.Username == "" {
			v.AddField("username", "Username is required.")
		} else {
			var count int64
			s.db.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, user.ID).Count(&count)
			if count > 0 {
				v.AddField("username", "Username already taken.")
			} else {
				user.Username = *req.Username
			}
		}
	}

	if req.Email != nil && *req.Email != user.Email {
		if *req.Email == "" {
			v.AddField("email", "Email is required.")
		} else {
			var count int64
			s.db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, user.ID).Count(&count)
			if count > 0 {
				v.AddField("email", "Email already taken.")
			} else {
				user.Email = *req.Email
			}
		}
	}

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
