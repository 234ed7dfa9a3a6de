package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/services"
)

// AuthHandler handles the phone verification and OTP confirmation endpoints
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Verify handles POST /api/auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req models.VerifyUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number is required",
		})
	}

	resp, err := h.auth.Verify(req.PhoneNumber)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.PhoneNumber == "" || req.FullName == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number, full name and email are required",
		})
	}

	resp, err := h.auth.Signup(req.PhoneNumber, req.FullName, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// ConfirmSignup handles POST /api/auth/signup/confirm
func (h *AuthHandler) ConfirmSignup(c *fiber.Ctx) error {
	req, ok := parseOTPValidation(c)
	if !ok {
		return nil
	}

	token, err := h.auth.ConfirmSignup(req.PhoneNumber, req.OTP)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.SendString(token)
}

// ConfirmLogin handles POST /api/auth/login/confirm
func (h *AuthHandler) ConfirmLogin(c *fiber.Ctx) error {
	req, ok := parseOTPValidation(c)
	if !ok {
		return nil
	}

	token, err := h.auth.ConfirmLogin(req.PhoneNumber, req.OTP)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.SendString(token)
}

// parseOTPValidation parses the shared confirm payload. On failure the 400
// response has already been written and ok is false.
func parseOTPValidation(c *fiber.Ctx) (*models.OTPValidationRequest, bool) {
	var req models.OTPValidationRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
		return nil, false
	}
	if req.PhoneNumber == "" || req.OTP == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number and OTP are required",
		})
		return nil, false
	}
	return &req, true
}

// internalError logs the detail and answers with a generic 500 body.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong",
	})
}
