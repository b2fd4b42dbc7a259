package dto

import (
	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/models"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

// UpdateUserRequest carries the self-service account fields. Pointers
// distinguish omitted fields from explicit values.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// ProfileResponse denormalizes the owning user's name and email. Read-only:
// profile updates only touch bookkeeping timestamps.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		UserName:  p.User.Username,
		UserEmail: p.User.Email,
		CreatedAt: p.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: p.UpdatedAt.UTC().Format(timestampLayout),
	}
}
