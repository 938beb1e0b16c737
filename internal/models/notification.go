package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType is the delivery channel of a notification.
type NotificationType string

const (
	NotificationTypeEmail NotificationType = "EMAIL"
	NotificationTypeSMS   NotificationType = "SMS"
	NotificationTypePush  NotificationType = "PUSH"
	NotificationTypeInApp NotificationType = "IN_APP"
)

// NotificationPriority orders dispatch urgency.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityNormal NotificationPriority = "NORMAL"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
	NotificationPriorityUrgent NotificationPriority = "URGENT"
)

// NotificationStatus is the lifecycle state of a notification.
type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "PENDING"
	NotificationStatusSent      NotificationStatus = "SENT"
	NotificationStatusDelivered NotificationStatus = "DELIVERED"
	NotificationStatusFailed    NotificationStatus = "FAILED"
	NotificationStatusRead      NotificationStatus = "READ"
)

// DeliveryStatus is the provider-reported outcome of one delivery attempt.
type DeliveryStatus string

const (
	DeliveryStatusSent      DeliveryStatus = "SENT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
	DeliveryStatusBounced   DeliveryStatus = "BOUNCED"
	DeliveryStatusComplaint DeliveryStatus = "COMPLAINT"
)

// NotificationFrequency controls how often a user receives a notification type.
type NotificationFrequency string

const (
	FrequencyImmediate NotificationFrequency = "IMMEDIATE"
	FrequencyDaily     NotificationFrequency = "DAILY"
	FrequencyWeekly    NotificationFrequency = "WEEKLY"
	FrequencyMonthly   NotificationFrequency = "MONTHLY"
	FrequencyNever     NotificationFrequency = "NEVER"
)

// NotificationTemplate is a reusable message body. Variables lists the
// placeholder names the content expects.
type NotificationTemplate struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Name      string           `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Type      NotificationType `json:"type" gorm:"size:20;not null" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	Subject   *string          `json:"subject" gorm:"size:255"`
	Content   string           `json:"content" gorm:"type:text;not null" validate:"required"`
	Variables datatypes.JSON   `json:"variables" gorm:"type:json"`
	IsActive  bool             `json:"is_active" gorm:"not null;default:true"`
	Language  string           `json:"language" gorm:"size:10;not null;default:en"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Notification is one dispatch attempt toward a user. UserID references the
// user service's users table and carries no foreign key here.
type Notification struct {
	ID          uint                 `json:"id" gorm:"primaryKey"`
	UserID      uint                 `json:"user_id" gorm:"index;not null" validate:"required"`
	TemplateID  *uint                `json:"template_id"`
	Type        NotificationType     `json:"type" gorm:"size:20;not null" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	Priority    NotificationPriority `json:"priority" gorm:"size:20;not null;default:NORMAL"`
	Subject     *string              `json:"subject" gorm:"size:255"`
	Content     string               `json:"content" gorm:"type:text;not null" validate:"required"`
	Data        datatypes.JSON       `json:"data" gorm:"type:json"`
	Status      NotificationStatus   `json:"status" gorm:"size:20;not null;default:PENDING"`
	ScheduledAt *time.Time           `json:"scheduled_at"`
	SentAt      *time.Time           `json:"sent_at"`
	ReadAt      *time.Time           `json:"read_at"`
	ExpiresAt   *time.Time           `json:"expires_at"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Template     *NotificationTemplate `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	DeliveryLogs []DeliveryLog         `json:"delivery_logs,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// DeliveryLog records one provider delivery attempt, including the raw
// provider response payload. Rows are append-only: created_at only.
type DeliveryLog struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	NotificationID    uint           `json:"notification_id" gorm:"index;not null"`
	Provider          string         `json:"provider" gorm:"size:50;not null"`
	ProviderMessageID *string        `json:"provider_message_id" gorm:"size:255"`
	Status            DeliveryStatus `json:"status" gorm:"size:20;not null"`
	ErrorMessage      *string        `json:"error_message" gorm:"type:text"`
	AttemptCount      int            `json:"attempt_count" gorm:"not null;default:1"`
	DeliveredAt       *time.Time     `json:"delivered_at"`
	Metadata          datatypes.JSON `json:"metadata" gorm:"type:json"`
	CreatedAt         time.Time      `json:"created_at"`
}

// UserNotificationPreference stores a user's opt-in settings for one channel.
// The user_id + notification_type pair is unique.
type UserNotificationPreference struct {
	ID               uint                  `json:"id" gorm:"primaryKey"`
	UserID           uint                  `json:"user_id" gorm:"uniqueIndex:uniq_user_notification_type;not null" validate:"required"`
	NotificationType NotificationType      `json:"notification_type" gorm:"size:20;uniqueIndex:uniq_user_notification_type;not null" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	IsEnabled        bool                  `json:"is_enabled" gorm:"not null;default:true"`
	Frequency        NotificationFrequency `json:"frequency" gorm:"size:20;not null;default:IMMEDIATE"`
	Preferences      datatypes.JSON        `json:"preferences" gorm:"type:json"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TableName keeps the original table name for templates.
func (NotificationTemplate) TableName() string {
	return "notification_templates"
}
