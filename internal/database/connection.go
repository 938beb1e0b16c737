package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopdb/internal/models"
)

// Connect opens a GORM connection for one service database.
func Connect(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite":
		// For SQLite the DSN is the file path.
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dbType, err)
	}

	return db, nil
}

// MigrateUserSchema creates the user service tables. Assumes a fresh database.
func MigrateUserSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Profile{},
		&models.Address{},
		&models.UserRole{},
		&models.RolePermission{},
	)
}

// MigrateProductSchema creates the product service tables. Assumes a fresh database.
func MigrateProductSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Inventory{},
		&models.Review{},
	)
}

// MigrateOrderSchema creates the order service tables. Assumes a fresh database.
func MigrateOrderSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Shipping{},
	)
}

// MigrateNotificationSchema creates the notification service tables.
// Unlike the other schemas this one drops and recreates, so it can be
// re-applied to a non-empty database.
func MigrateNotificationSchema(db *gorm.DB) error {
	if err := db.Migrator().DropTable(
		&models.UserNotificationPreference{},
		&models.DeliveryLog{},
		&models.Notification{},
		&models.NotificationTemplate{},
	); err != nil {
		return fmt.Errorf("failed to drop notification tables: %w", err)
	}
	return db.AutoMigrate(
		&models.NotificationTemplate{},
		&models.Notification{},
		&models.DeliveryLog{},
		&models.UserNotificationPreference{},
	)
}

// Close closes the underlying connection of a GORM database handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MustClose closes a handle and logs instead of failing; used on shutdown paths.
func MustClose(db *gorm.DB, name string) {
	if err := Close(db); err != nil {
		log.Printf("Error closing %s database: %v", name, err)
	}
}
