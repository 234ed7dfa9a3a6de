package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/phaseGateTwo/cms-backend/internal/middleware"
	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/services"
)

// ContactHandler handles the address-book endpoints
type ContactHandler struct {
	contacts *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Add handles POST /api/contacts
func (h *ContactHandler) Add(c *fiber.Ctx) error {
	var req models.AddContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.FullName == "" || req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Full name and phone are required",
		})
	}

	contact, err := h.contacts.AddContact(middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateContact) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// List handles GET /api/contacts
func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contacts.ListContacts(middleware.UserID(c))
	if err != nil {
		return internalError(c, err)
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}
	return c.JSON(fiber.Map{"contacts": contacts})
}

// Get handles GET /api/contacts/:id
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.contacts.GetContact(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(contact)
}

// Edit handles PUT /api/contacts/:id
func (h *ContactHandler) Edit(c *fiber.Ctx) error {
	var req models.EditContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contact, err := h.contacts.EditContact(middleware.UserID(c), c.Params("id"), &req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(contact)
}

// Delete handles DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.contacts.DeleteContact(middleware.UserID(c), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}

func (h *ContactHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrContactAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return internalError(c, err)
	}
}
