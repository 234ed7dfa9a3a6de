package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// ContactService manages a user's address book. Every operation is scoped
// to the owning user.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a new contact service
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// AddContact creates a contact for userID. A second contact with the same
// phone for the same owner is rejected.
func (s *ContactService) AddContact(userID string, req *models.AddContactRequest) (*models.Contact, error) {
	_, err := s.store.GetContactByPhoneAndUser(req.Phone, userID)
	if err == nil {
		return nil, ErrDuplicateContact
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("contact lookup: %w", err)
	}

	contact := &models.Contact{
		ContactID: uuid.NewString(),
		UserID:    userID,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	saved, err := s.store.CreateContact(contact)
	if err != nil {
		// A concurrent add for the same phone can get past the lookup
		// above; the store's uniqueness check is the backstop.
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return saved, nil
}

// GetContact returns one of userID's contacts by ID.
func (s *ContactService) GetContact(userID, contactID string) (*models.Contact, error) {
	contact, err := s.store.GetContactByIDAndUser(contactID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("contact lookup: %w", err)
	}
	return contact, nil
}

// ListContacts returns all of userID's contacts.
func (s *ContactService) ListContacts(userID string) ([]*models.Contact, error) {
	return s.store.GetContactsByUser(userID)
}

// EditContact applies the non-empty fields of req to a contact. Editing a
// contact owned by someone else is denied, not hidden as a miss.
func (s *ContactService) EditContact(userID, contactID string, req *models.EditContactRequest) (*models.Contact, error) {
	contact, err := s.store.GetContactByID(contactID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("contact lookup: %w", err)
	}
	if contact.UserID != userID {
		return nil, ErrContactAccessDenied
	}

	if req.FullName != "" {
		contact.FullName = req.FullName
	}
	if req.Phone != "" {
		contact.Phone = req.Phone
	}
	if req.Email != "" {
		contact.Email = req.Email
	}

	if err := s.store.UpdateContact(contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// DeleteContact removes one of userID's contacts.
func (s *ContactService) DeleteContact(userID, contactID string) error {
	if _, err := s.GetContact(userID, contactID); err != nil {
		return err
	}
	return s.store.DeleteContact(contactID)
}
