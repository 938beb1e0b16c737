package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"shopdb/internal/models"
	"shopdb/internal/repositories"
)

// orderTransitions is the allowed status graph for orders.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {models.OrderStatusRefunded},
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID uint  `json:"product_id" validate:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	UserID          uint               `json:"user_id" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	BillingAddress  datatypes.JSON     `json:"billing_address" validate:"required"`
	ShippingAddress datatypes.JSON     `json:"shipping_address" validate:"required"`
	TaxAmount       float64            `json:"tax_amount"`
	ShippingAmount  float64            `json:"shipping_amount"`
	DiscountAmount  float64            `json:"discount_amount"`
	Currency        string             `json:"currency"`
	Notes           *string            `json:"notes"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderByNumber retrieves a single order by its public order number.
func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(orderNumber)
}

// ListOrdersForUser retrieves all orders placed by a user.
func (s *OrderService) ListOrdersForUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// CreateOrder places a new order. Product name, SKU and unit price are read
// from the product catalog and copied into the order items as an immutable
// snapshot; later catalog changes never alter a placed order.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order requires at least one item")
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %d must be positive", itemReq.ProductID)
		}

		product, err := s.productRepo.GetByID(itemReq.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d not found: %w", itemReq.ProductID, err)
		}

		name := product.Name
		sku := product.SKU
		unitPrice := product.Price
		var attributes datatypes.JSON

		if itemReq.VariantID != nil {
			variant, err := s.productRepo.GetVariantByID(*itemReq.VariantID)
			if err != nil {
				return nil, fmt.Errorf("variant %d not found: %w", *itemReq.VariantID, err)
			}
			if variant.ProductID != product.ID {
				return nil, fmt.Errorf("variant %d does not belong to product %d", variant.ID, product.ID)
			}
			name = fmt.Sprintf("%s - %s", product.Name, variant.Name)
			sku = variant.SKU
			unitPrice = variant.Price
			attributes = variant.Attributes
		}

		totalPrice := unitPrice * float64(itemReq.Quantity)
		subtotal += totalPrice

		items = append(items, models.OrderItem{
			ProductID:   itemReq.ProductID,
			VariantID:   itemReq.VariantID,
			ProductName: name,
			ProductSKU:  sku,
			Quantity:    itemReq.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
			Attributes:  attributes,
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          req.UserID,
		Status:          models.OrderStatusPending,
		Subtotal:        subtotal,
		TaxAmount:       req.TaxAmount,
		ShippingAmount:  req.ShippingAmount,
		DiscountAmount:  req.DiscountAmount,
		TotalAmount:     subtotal + req.TaxAmount + req.ShippingAmount - req.DiscountAmount,
		Currency:        currency,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total":        order.TotalAmount,
		"currency":     order.Currency,
	})

	return order, nil
}

// UpdateOrderStatus transitions an order along the allowed status graph.
// Reaching DELIVERED stamps delivered_at.
func (s *OrderService) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	if !transitionAllowed(order.Status, status) {
		return fmt.Errorf("invalid order status transition: %s -> %s", order.Status, status)
	}

	var deliveredAt *time.Time
	if status == models.OrderStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orderRepo.UpdateStatus(id, status, deliveredAt); err != nil {
		return fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}

	s.publishEvent("order.status_changed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"from":         order.Status,
		"to":           status,
	})

	return nil
}

// RecordPayment attaches a payment attempt to an order.
func (s *OrderService) RecordPayment(payment *models.Payment) error {
	if _, err := s.orderRepo.GetByID(payment.OrderID); err != nil {
		return fmt.Errorf("cannot record payment: %w", err)
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	if payment.TransactionID == nil {
		txID := uuid.New().String()
		payment.TransactionID = &txID
	}
	return s.orderRepo.AddPayment(payment)
}

// CompletePayment marks a payment completed and stamps processed_at.
func (s *OrderService) CompletePayment(paymentID uint) error {
	now := time.Now()
	return s.orderRepo.UpdatePaymentStatus(paymentID, models.PaymentStatusCompleted, &now)
}

// RecordShipping attaches a shipment to an order.
func (s *OrderService) RecordShipping(shipping *models.Shipping) error {
	if _, err := s.orderRepo.GetByID(shipping.OrderID); err != nil {
		return fmt.Errorf("cannot record shipping: %w", err)
	}
	if shipping.Status == "" {
		shipping.Status = models.ShippingStatusPending
	}
	return s.orderRepo.AddShipping(shipping)
}

// UpdateShippingStatus moves a shipment through its lifecycle; DELIVERED
// stamps the actual delivery date.
func (s *OrderService) UpdateShippingStatus(shippingID uint, status models.ShippingStatus) error {
	var deliveredAt *time.Time
	if status == models.ShippingStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}
	return s.orderRepo.UpdateShippingStatus(shippingID, status, deliveredAt)
}

func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
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

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// generateOrderNumber builds the public order number, e.g. ORD-20240115-3F2A9B1C.
func generateOrderNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), fragment)
}
