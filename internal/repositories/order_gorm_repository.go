package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopdb/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates an order together with its items in one transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with items, payments and shipments preloaded.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Payments").Preload("Shippings").First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByOrderNumber retrieves an order by its public order number.
func (r *GORMOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %s not found", orderNumber)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderNumber, err)
	}
	return &order, nil
}

// ListByUser retrieves all orders placed by a user, newest first.
func (r *GORMOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus sets the order status and, when provided, the delivery timestamp.
func (r *GORMOrderRepository) UpdateStatus(id uint, status models.OrderStatus, deliveredAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if deliveredAt != nil {
		updates["delivered_at"] = deliveredAt
	}
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	return nil
}

// AddPayment attaches a payment attempt to an order.
func (r *GORMOrderRepository) AddPayment(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment for order %d: %w", payment.OrderID, err)
	}
	return nil
}

// UpdatePaymentStatus sets a payment's status and optional processing timestamp.
func (r *GORMOrderRepository) UpdatePaymentStatus(paymentID uint, status models.PaymentStatus, processedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if processedAt != nil {
		updates["processed_at"] = processedAt
	}
	res := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for payment %d: %w", paymentID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment with ID %d not found for status update", paymentID)
	}
	return nil
}

// AddShipping attaches a shipment to an order.
func (r *GORMOrderRepository) AddShipping(shipping *models.Shipping) error {
	if err := r.db.Create(shipping).Error; err != nil {
		return fmt.Errorf("failed to create shipping for order %d: %w", shipping.OrderID, err)
	}
	return nil
}

// UpdateShippingStatus sets a shipment's status and optional delivery timestamp.
func (r *GORMOrderRepository) UpdateShippingStatus(shippingID uint, status models.ShippingStatus, deliveredAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if deliveredAt != nil {
		updates["actual_delivery_date"] = deliveredAt
	}
	res := r.db.Model(&models.Shipping{}).Where("id = ?", shippingID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for shipping %d: %w", shippingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipping with ID %d not found for status update", shippingID)
	}
	return nil
}
