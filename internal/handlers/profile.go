package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/phaseGateTwo/cms-backend/internal/middleware"
	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/services"
)

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// View handles GET /api/profile
func (h *ProfileHandler) View(c *fiber.Ctx) error {
	user, err := h.profiles.GetProfile(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.JSON(user)
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.profiles.UpdateProfile(middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.JSON(user)
}
