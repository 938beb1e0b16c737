package repositories

import (
	"time"

	"shopdb/internal/models"
)

// OrderRepository defines the interface for order service data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	ListByUser(userID uint) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus, deliveredAt *time.Time) error

	AddPayment(payment *models.Payment) error
	UpdatePaymentStatus(paymentID uint, status models.PaymentStatus, processedAt *time.Time) error

	AddShipping(shipping *models.Shipping) error
	UpdateShippingStatus(shippingID uint, status models.ShippingStatus, deliveredAt *time.Time) error
}
