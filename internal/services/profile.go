package services

import (
	"errors"
	"fmt"

	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// ProfileService exposes the authenticated user's own profile.
type ProfileService struct {
	store storage.Store
}

// NewProfileService creates a new profile service
func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{store: store}
}

// GetProfile returns the profile for userID.
func (s *ProfileService) GetProfile(userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of req to the profile.
func (s *ProfileService) UpdateProfile(userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
