package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopdb/internal/models"
	"shopdb/internal/services"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service  *services.NotificationService
	validate *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	templateRoutes := router.Group("/notification-templates")
	templateRoutes.Post("/", h.HandleCreateTemplate)

	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", h.HandleListNotifications)
	notificationRoutes.Post("/", h.HandleSendNotification)
	notificationRoutes.Post("/from-template", h.HandleSendFromTemplate)
	notificationRoutes.Post("/:id/delivery-attempts", h.HandleRecordDeliveryAttempt)
	notificationRoutes.Patch("/:id/read", h.HandleMarkRead)

	preferenceRoutes := router.Group("/notification-preferences")
	preferenceRoutes.Put("/", h.HandleSetPreference)
}

// HandleCreateTemplate creates a new notification template.
func (h *NotificationHandler) HandleCreateTemplate(c *fiber.Ctx) error {
	var template models.NotificationTemplate
	if err := c.BodyParser(&template); err != nil {
		log.Printf("Error parsing template request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(template); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateTemplate(&template); err != nil {
		log.Printf("Error creating notification template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create template",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// HandleListNotifications retrieves the authenticated user's notifications.
func (h *NotificationHandler) HandleListNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	notifications, err := h.service.ListForUser(userID)
	if err != nil {
		log.Printf("Error listing notifications for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(notifications)
}

// HandleSendNotification creates and queues a notification.
func (h *NotificationHandler) HandleSendNotification(c *fiber.Ctx) error {
	var notification models.Notification
	if err := c.BodyParser(&notification); err != nil {
		log.Printf("Error parsing notification request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(notification); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.Send(&notification); err != nil {
		log.Printf("Error sending notification: %v", err)
		if errors.Is(err, services.ErrNotificationSuppressed) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Notification suppressed by user preferences",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send notification",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

// SendFromTemplateRequest represents the request body for template-based sends.
type SendFromTemplateRequest struct {
	UserID     uint                        `json:"user_id" validate:"required"`
	TemplateID uint                        `json:"template_id" validate:"required"`
	Data       map[string]string           `json:"data"`
	Priority   models.NotificationPriority `json:"priority"`
}

// HandleSendFromTemplate renders a template and queues the resulting notification.
func (h *NotificationHandler) HandleSendFromTemplate(c *fiber.Ctx) error {
	var req SendFromTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing template send request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	notification, err := h.service.SendFromTemplate(req.UserID, req.TemplateID, req.Data, req.Priority)
	if err != nil {
		log.Printf("Error sending templated notification: %v", err)
		if errors.Is(err, services.ErrNotificationSuppressed) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Notification suppressed by user preferences",
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Template not found",
			})
		}
		if strings.Contains(err.Error(), "missing value") || strings.Contains(err.Error(), "not active") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not render template",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send notification",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

// DeliveryAttemptRequest represents the request body for delivery attempts.
type DeliveryAttemptRequest struct {
	Provider          string                `json:"provider" validate:"required"`
	Status            models.DeliveryStatus `json:"status" validate:"required,oneof=SENT DELIVERED FAILED BOUNCED COMPLAINT"`
	ProviderMessageID *string               `json:"provider_message_id"`
	ErrorMessage      *string               `json:"error_message"`
}

// HandleRecordDeliveryAttempt appends a delivery log entry to a notification.
func (h *NotificationHandler) HandleRecordDeliveryAttempt(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ID parameter",
		})
	}

	var req DeliveryAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delivery attempt request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	entry, err := h.service.RecordDeliveryAttempt(id, req.Provider, req.Status, req.ProviderMessageID, req.ErrorMessage)
	if err != nil {
		log.Printf("Error recording delivery attempt for notification %d: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record delivery attempt",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleMarkRead marks a notification as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ID parameter",
		})
	}

	if err := h.service.MarkRead(id); err != nil {
		log.Printf("Error marking notification %d read: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not mark notification read",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}

// HandleSetPreference creates or updates a per-channel preference for the
// authenticated user.
func (h *NotificationHandler) HandleSetPreference(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var preference models.UserNotificationPreference
	if err := c.BodyParser(&preference); err != nil {
		log.Printf("Error parsing preference request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	preference.UserID = userID

	if err := h.validate.Struct(preference); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.SetPreference(&preference); err != nil {
		log.Printf("Error setting preference for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save preference",
			"error":   err.Error(),
		})
	}
	return c.JSON(preference)
}
