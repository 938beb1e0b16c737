package models

import (
	"time"

	"gorm.io/datatypes"
)

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
)

// User represents an account in the user service database.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Username     *string    `json:"username" gorm:"uniqueIndex;size:50" validate:"omitempty,min=3,max=50"`
	PhoneNumber  *string    `json:"phone_number" gorm:"uniqueIndex;size:20"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	IsVerified   bool       `json:"is_verified" gorm:"not null;default:false"`
	DateJoined   time.Time  `json:"date_joined" gorm:"not null"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Profile   *Profile  `json:"profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Addresses []Address `json:"addresses,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Profile holds the optional per-user profile. At most one row per user.
type Profile struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	AvatarURL   *string        `json:"avatar_url" gorm:"size:255"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	Gender      *string        `json:"gender" gorm:"size:20"`
	Bio         *string        `json:"bio" gorm:"type:text"`
	Preferences datatypes.JSON `json:"preferences" gorm:"type:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Address is one of a user's saved addresses, tagged billing or shipping.
type Address struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	UserID        uint        `json:"user_id" gorm:"index;not null"`
	Type          AddressType `json:"type" gorm:"size:20;not null;default:billing" validate:"required,oneof=billing shipping"`
	StreetAddress string      `json:"street_address" gorm:"size:255;not null" validate:"required,max=255"`
	Apartment     *string     `json:"apartment" gorm:"size:100"`
	City          string      `json:"city" gorm:"size:100;not null" validate:"required,max=100"`
	State         string      `json:"state" gorm:"size:100;not null" validate:"required,max=100"`
	PostalCode    string      `json:"postal_code" gorm:"size:20;not null" validate:"required,max=20"`
	Country       string      `json:"country" gorm:"size:100;not null" validate:"required,max=100"`
	IsDefault     bool        `json:"is_default" gorm:"not null;default:false"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Role is a named set of permissions.
type Role struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:50;not null" validate:"required,max=50"`
	Description *string   `json:"description" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Permission is a single named capability.
type Permission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null" validate:"required,max=100"`
	Description *string   `json:"description" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserRole links users to roles. The pair is unique.
type UserRole struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:uniq_user_role;not null"`
	RoleID    uint      `json:"role_id" gorm:"uniqueIndex:uniq_user_role;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Role Role `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// RolePermission links roles to permissions. The pair is unique.
type RolePermission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RoleID       uint      `json:"role_id" gorm:"uniqueIndex:uniq_role_permission;not null"`
	PermissionID uint      `json:"permission_id" gorm:"uniqueIndex:uniq_role_permission;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Role       Role       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Permission Permission `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
