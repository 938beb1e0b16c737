package services

import (
	"fmt"

	"shopdb/internal/models"
	"shopdb/internal/repositories"
)

// UserService handles business logic for profiles and addresses.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUser retrieves a user with profile and addresses.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// DeleteUser removes a user. Profile, addresses and role assignments
// cascade with the row.
func (s *UserService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

// SaveProfile creates or updates the user's profile. Each user has at
// most one profile row; repeated saves update in place.
func (s *UserService) SaveProfile(profile *models.Profile) error {
	if profile.UserID == 0 {
		return fmt.Errorf("profile requires a user ID")
	}
	return s.userRepo.UpsertProfile(profile)
}

// GetProfile retrieves the user's profile.
func (s *UserService) GetProfile(userID uint) (*models.Profile, error) {
	return s.userRepo.GetProfile(userID)
}

// AddAddress adds an address for a user.
func (s *UserService) AddAddress(address *models.Address) error {
	if address.UserID == 0 {
		return fmt.Errorf("address requires a user ID")
	}
	if address.Type == "" {
		address.Type = models.AddressTypeBilling
	}
	return s.userRepo.CreateAddress(address)
}

// ListAddresses retrieves all of a user's addresses.
func (s *UserService) ListAddresses(userID uint) ([]models.Address, error) {
	return s.userRepo.ListAddresses(userID)
}

// RemoveAddress deletes one of the user's addresses.
func (s *UserService) RemoveAddress(id, userID uint) error {
	return s.userRepo.DeleteAddress(id, userID)
}
