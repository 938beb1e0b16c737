package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopdb/internal/models"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// CreateTemplate creates a new notification template.
func (r *GORMNotificationRepository) CreateTemplate(template *models.NotificationTemplate) error {
	if err := r.db.Create(template).Error; err != nil {
		return fmt.Errorf("failed to create notification template: %w", err)
	}
	return nil
}

// GetTemplateByID retrieves a template by its ID.
func (r *GORMNotificationRepository) GetTemplateByID(id uint) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("template with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get template by ID %d: %w", id, err)
	}
	return &template, nil
}

// ListTemplates retrieves the active templates for one channel.
func (r *GORMNotificationRepository) ListTemplates(notificationType models.NotificationType) ([]models.NotificationTemplate, error) {
	var templates []models.NotificationTemplate
	err := r.db.Where("type = ? AND is_active = ?", notificationType, true).Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s templates: %w", notificationType, err)
	}
	return templates, nil
}

// Create creates a new notification row.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification with its delivery logs preloaded.
func (r *GORMNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Preload("DeliveryLogs").First(&notification, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("notification with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get notification by ID %d: %w", id, err)
	}
	return &notification, nil
}

// ListByUser retrieves all notifications for a user, newest first.
func (r *GORMNotificationRepository) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %d: %w", userID, err)
	}
	return notifications, nil
}

// UpdateStatus transitions a notification and stamps the matching timestamp
// column (sent_at for SENT, read_at for READ).
func (r *GORMNotificationRepository) UpdateStatus(id uint, status models.NotificationStatus, at time.Time) error {
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.NotificationStatusSent, models.NotificationStatusDelivered:
		updates["sent_at"] = at
	case models.NotificationStatusRead:
		updates["read_at"] = at
	}
	res := r.db.Model(&models.Notification{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for notification %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification with ID %d not found for status update", id)
	}
	return nil
}

// AddDeliveryLog appends one provider delivery attempt, assigning the next
// attempt_count for the notification. Count and insert share a transaction
// so concurrent attempts cannot record the same count.
func (r *GORMNotificationRepository) AddDeliveryLog(deliveryLog *models.DeliveryLog) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DeliveryLog{}).
			Where("notification_id = ?", deliveryLog.NotificationID).
			Count(&count).Error; err != nil {
			return err
		}
		deliveryLog.AttemptCount = int(count) + 1
		return tx.Create(deliveryLog).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create delivery log for notification %d: %w", deliveryLog.NotificationID, err)
	}
	return nil
}

// GetPreference retrieves a user's settings for one channel.
func (r *GORMNotificationRepository) GetPreference(userID uint, notificationType models.NotificationType) (*models.UserNotificationPreference, error) {
	var preference models.UserNotificationPreference
	err := r.db.First(&preference, "user_id = ? AND notification_type = ?", userID, notificationType).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("preference for user %d and type %s not found", userID, notificationType)
		}
		return nil, fmt.Errorf("failed to get preference for user %d: %w", userID, err)
	}
	return &preference, nil
}

// UpsertPreference creates or replaces the per-user, per-channel settings row.
func (r *GORMNotificationRepository) UpsertPreference(preference *models.UserNotificationPreference) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "notification_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_enabled", "frequency", "preferences", "updated_at",
		}),
	}).Create(preference).Error
	if err != nil {
		return fmt.Errorf("failed to upsert preference for user %d: %w", preference.UserID, err)
	}
	return nil
}
