package repositories

import (
	"time"

	"shopdb/internal/models"
)

// NotificationRepository defines the interface for notification service data access.
type NotificationRepository interface {
	CreateTemplate(template *models.NotificationTemplate) error
	GetTemplateByID(id uint) (*models.NotificationTemplate, error)
	ListTemplates(notificationType models.NotificationType) ([]models.NotificationTemplate, error)

	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListByUser(userID uint) ([]models.Notification, error)
	UpdateStatus(id uint, status models.NotificationStatus, at time.Time) error

	// AddDeliveryLog assigns the attempt count itself, atomically with the
	// insert.
	AddDeliveryLog(deliveryLog *models.DeliveryLog) error

	GetPreference(userID uint, notificationType models.NotificationType) (*models.UserNotificationPreference, error)
	UpsertPreference(preference *models.UserNotificationPreference) error
}
