package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shopdb/internal/models"
	"shopdb/internal/repositories"
)

// ErrNotificationSuppressed is returned when a user's preferences disable
// the requested channel (opt-out or NEVER frequency).
var ErrNotificationSuppressed = errors.New("notification suppressed by user preferences")

// NotificationService handles business logic for templates, notifications
// and delivery logging.
type NotificationService struct {
	repo      repositories.NotificationRepository
	publisher EventPublisher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateTemplate creates a reusable message template.
func (s *NotificationService) CreateTemplate(template *models.NotificationTemplate) error {
	if template.Language == "" {
		template.Language = "en"
	}
	template.IsActive = true
	return s.repo.CreateTemplate(template)
}

// RenderTemplate substitutes {{name}} placeholders in the template content
// with values from data. Every variable the template declares must be
// present in data.
func (s *NotificationService) RenderTemplate(template *models.NotificationTemplate, data map[string]string) (string, error) {
	var declared []string
	if len(template.Variables) > 0 {
		if err := json.Unmarshal(template.Variables, &declared); err != nil {
			return "", fmt.Errorf("template %d has malformed variables: %w", template.ID, err)
		}
	}

	content := template.Content
	for _, name := range declared {
		value, ok := data[name]
		if !ok {
			return "", fmt.Errorf("missing value for template variable %q", name)
		}
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content, nil
}

// SendFromTemplate renders a template and creates a PENDING notification for
// the user, honoring the user's channel preferences.
func (s *NotificationService) SendFromTemplate(userID, templateID uint, data map[string]string, priority models.NotificationPriority) (*models.Notification, error) {
	template, err := s.repo.GetTemplateByID(templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, fmt.Errorf("template %d is inactive", templateID)
	}

	if suppressed, err := s.isSuppressed(userID, template.Type); err != nil {
		return nil, err
	} else if suppressed {
		return nil, ErrNotificationSuppressed
	}

	content, err := s.RenderTemplate(template, data)
	if err != nil {
		return nil, err
	}

	if priority == "" {
		priority = models.NotificationPriorityNormal
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template data: %w", err)
	}

	notification := &models.Notification{
		UserID:     userID,
		TemplateID: &template.ID,
		Type:       template.Type,
		Priority:   priority,
		Subject:    template.Subject,
		Content:    content,
		Data:       payload,
		Status:     models.NotificationStatusPending,
	}

	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}

	s.publishEvent("notification.dispatched", map[string]interface{}{
		"notification_id": notification.ID,
		"user_id":         notification.UserID,
		"type":            notification.Type,
		"priority":        notification.Priority,
	})

	return notification, nil
}

// Send creates a PENDING notification without a template, honoring the
// user's channel preferences.
func (s *NotificationService) Send(notification *models.Notification) error {
	if suppressed, err := s.isSuppressed(notification.UserID, notification.Type); err != nil {
		return err
	} else if suppressed {
		return ErrNotificationSuppressed
	}

	if notification.Priority == "" {
		notification.Priority = models.NotificationPriorityNormal
	}
	notification.Status = models.NotificationStatusPending

	if err := s.repo.Create(notification); err != nil {
		return err
	}

	s.publishEvent("notification.dispatched", map[string]interface{}{
		"notification_id": notification.ID,
		"user_id":         notification.UserID,
		"type":            notification.Type,
		"priority":        notification.Priority,
	})

	return nil
}

// RecordDeliveryAttempt appends a delivery log entry and rolls the
// notification status forward to match the provider outcome. The repository
// assigns the incrementing attempt count.
func (s *NotificationService) RecordDeliveryAttempt(notificationID uint, provider string, status models.DeliveryStatus, providerMessageID, errorMessage *string) (*models.DeliveryLog, error) {
	if _, err := s.repo.GetByID(notificationID); err != nil {
		return nil, err
	}

	deliveryLog := &models.DeliveryLog{
		NotificationID:    notificationID,
		Provider:          provider,
		ProviderMessageID: providerMessageID,
		Status:            status,
		ErrorMessage:      errorMessage,
	}

	now := time.Now()
	var notificationStatus models.NotificationStatus
	switch status {
	case models.DeliveryStatusSent:
		notificationStatus = models.NotificationStatusSent
	case models.DeliveryStatusDelivered:
		deliveryLog.DeliveredAt = &now
		notificationStatus = models.NotificationStatusDelivered
	default:
		notificationStatus = models.NotificationStatusFailed
	}

	if err := s.repo.AddDeliveryLog(deliveryLog); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(notificationID, notificationStatus, now); err != nil {
		return nil, err
	}

	return deliveryLog, nil
}

// MarkRead marks a notification read and stamps read_at.
func (s *NotificationService) MarkRead(notificationID uint) error {
	return s.repo.UpdateStatus(notificationID, models.NotificationStatusRead, time.Now())
}

// ListForUser retrieves a user's notifications.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	return s.repo.ListByUser(userID)
}

// SetPreference stores a user's opt-in settings for one channel.
func (s *NotificationService) SetPreference(preference *models.UserNotificationPreference) error {
	if preference.Frequency == "" {
		preference.Frequency = models.FrequencyImmediate
	}
	return s.repo.UpsertPreference(preference)
}

// isSuppressed reports whether the user has opted out of the channel.
// Users with no stored preference receive everything.
func (s *NotificationService) isSuppressed(userID uint, notificationType models.NotificationType) (bool, error) {
	preference, err := s.repo.GetPreference(userID, notificationType)
	if err != nil {
		// No stored preference: default to enabled.
		if strings.Contains(err.Error(), "not found") {
			return false, nil
		}
		return false, err
	}
	return !preference.IsEnabled || preference.Frequency == models.FrequencyNever, nil
}

func (s *NotificationService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
