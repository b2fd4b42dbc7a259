package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/middleware"
	"github.com/tasknest/tasknest-backend/internal/permissions"
	"github.com/tasknest/tasknest-backend/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	policy         permissions.Policy
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		policy:         permissions.OwnerOrReadOnly{},
	}
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.profileService.List()
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.NewProfileResponse(&profiles[i]))
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile ID")
	}

	profile, err := h.profileService.Get(profileID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewProfileResponse(profile))
}

// Update only bumps bookkeeping timestamps: the denormalized user fields are
// read-only and any values sent for them are ignored.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile ID")
	}

	profile, err := h.profileService.Get(profileID)
	if err != nil {
		return respondError(c, err)
	}

	if !h.policy.Allows(actorID, permissions.ActionWrite, profile) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You may only modify your own profile",
		})
	}

	updated, err := h.profileService.Touch(profile)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewProfileResponse(updated))
}
