package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopdb/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID, with profile and addresses preloaded.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").Preload("Addresses").First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Delete deletes a user. The schema cascades the delete to profiles,
// addresses and role assignments.
func (r *GORMUserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for deletion", id)
	}
	return nil
}

// UpdateLastLogin stamps the user's last_login column.
func (r *GORMUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at)
	if res.Error != nil {
		return fmt.Errorf("failed to update last login for user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for last login update", id)
	}
	return nil
}

// UpsertProfile creates or replaces the user's single profile row.
func (r *GORMUserRepository) UpsertProfile(profile *models.Profile) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"avatar_url", "date_of_birth", "gender", "bio", "preferences", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", profile.UserID, err)
	}
	return nil
}

// GetProfile retrieves the profile belonging to a user.
func (r *GORMUserRepository) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile for user %d not found", userID)
		}
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// CreateAddress creates a new address for a user. If the address is flagged
// default, any previous default of the same type is cleared first.
func (r *GORMUserRepository) CreateAddress(address *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&models.Address{}).
				Where("user_id = ? AND type = ? AND is_default = ?", address.UserID, address.Type, true).
				Update("is_default", false).Error
			if err != nil {
				return fmt.Errorf("failed to clear default %s address for user %d: %w", address.Type, address.UserID, err)
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
}

// ListAddresses retrieves all addresses for a user.
func (r *GORMUserRepository) ListAddresses(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses for user %d: %w", userID, err)
	}
	return addresses, nil
}

// DeleteAddress deletes one of the user's addresses.
func (r *GORMUserRepository) DeleteAddress(id, userID uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Address{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %d not found for user %d", id, userID)
	}
	return nil
}

// CreateRole creates a new role.
func (r *GORMUserRepository) CreateRole(role *models.Role) error {
	if err := r.db.Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// CreatePermission creates a new permission.
func (r *GORMUserRepository) CreatePermission(permission *models.Permission) error {
	if err := r.db.Create(permission).Error; err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}
	return nil
}

// AssignRole links a role to a user. The user/role pair is unique.
func (r *GORMUserRepository) AssignRole(userID, roleID uint) error {
	assignment := models.UserRole{UserID: userID, RoleID: roleID}
	if err := r.db.Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}

// GrantPermission links a permission to a role. The role/permission pair is unique.
func (r *GORMUserRepository) GrantPermission(roleID, permissionID uint) error {
	grant := models.RolePermission{RoleID: roleID, PermissionID: permissionID}
	if err := r.db.Create(&grant).Error; err != nil {
		return fmt.Errorf("failed to grant permission %d to role %d: %w", permissionID, roleID, err)
	}
	return nil
}

// GetUserRoles retrieves all roles assigned to a user.
func (r *GORMUserRepository) GetUserRoles(userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user %d: %w", userID, err)
	}
	return roles, nil
}
