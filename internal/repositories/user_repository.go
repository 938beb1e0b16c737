package repositories

import (
	"time"

	"shopdb/internal/models"
)

// UserRepository defines the interface for user service data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Delete(id uint) error
	UpdateLastLogin(id uint, at time.Time) error

	UpsertProfile(profile *models.Profile) error
	GetProfile(userID uint) (*models.Profile, error)

	CreateAddress(address *models.Address) error
	ListAddresses(userID uint) ([]models.Address, error)
	DeleteAddress(id, userID uint) error

	CreateRole(role *models.Role) error
	CreatePermission(permission *models.Permission) error
	AssignRole(userID, roleID uint) error
	GrantPermission(roleID, permissionID uint) error
	GetUserRoles(userID uint) ([]models.Role, error)
}
