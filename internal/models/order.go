package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

// PaymentStatus is the lifecycle state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

// ShippingStatus is the lifecycle state of a shipment.
type ShippingStatus string

const (
	ShippingStatusPending        ShippingStatus = "PENDING"
	ShippingStatusShipped        ShippingStatus = "SHIPPED"
	ShippingStatusInTransit      ShippingStatus = "IN_TRANSIT"
	ShippingStatusOutForDelivery ShippingStatus = "OUT_FOR_DELIVERY"
	ShippingStatusDelivered      ShippingStatus = "DELIVERED"
	ShippingStatusFailed         ShippingStatus = "FAILED"
	ShippingStatusReturned       ShippingStatus = "RETURNED"
)

// Order is a customer order in the order service database.
// UserID references the user service's users table and is deliberately
// stored as a plain integer with no foreign key; cross-service consistency
// is handled by event choreography, not the schema.
type Order struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	OrderNumber           string         `json:"order_number" gorm:"uniqueIndex;size:50;not null"`
	UserID                uint           `json:"user_id" gorm:"index;not null" validate:"required"`
	Status                OrderStatus    `json:"status" gorm:"size:20;not null"`
	TotalAmount           float64        `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Subtotal              float64        `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxAmount             float64        `json:"tax_amount" gorm:"type:decimal(10,2);not null;default:0"`
	ShippingAmount        float64        `json:"shipping_amount" gorm:"type:decimal(10,2);not null;default:0"`
	DiscountAmount        float64        `json:"discount_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Currency              string         `json:"currency" gorm:"size:3;not null;default:USD"`
	BillingAddress        datatypes.JSON `json:"billing_address" gorm:"type:json;not null"`
	ShippingAddress       datatypes.JSON `json:"shipping_address" gorm:"type:json;not null"`
	Notes                 *string        `json:"notes" gorm:"type:text"`
	TrackingNumber        *string        `json:"tracking_number" gorm:"size:255"`
	EstimatedDeliveryDate *time.Time     `json:"estimated_delivery_date"`
	DeliveredAt           *time.Time     `json:"delivered_at"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	Items     []OrderItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Payments  []Payment   `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Shippings []Shipping  `json:"shippings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem is a line on an order. ProductName, ProductSKU and UnitPrice are
// an immutable snapshot of the product at order time; product data lives in
// another service and may change after the order is placed.
type OrderItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderID     uint           `json:"order_id" gorm:"index;not null"`
	ProductID   uint           `json:"product_id" gorm:"not null" validate:"required"`
	VariantID   *uint          `json:"variant_id"`
	ProductName string         `json:"product_name" gorm:"size:255;not null"`
	ProductSKU  *string        `json:"product_sku" gorm:"size:100"`
	Quantity    int            `json:"quantity" gorm:"not null" validate:"required,gt=0"`
	UnitPrice   float64        `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice  float64        `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Attributes  datatypes.JSON `json:"attributes" gorm:"type:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Payment is one payment attempt against an order.
type Payment struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderID         uint           `json:"order_id" gorm:"index;not null"`
	PaymentMethod   string         `json:"payment_method" gorm:"size:50;not null" validate:"required,max=50"`
	PaymentProvider *string        `json:"payment_provider" gorm:"size:50"`
	TransactionID   *string        `json:"transaction_id" gorm:"uniqueIndex;size:255"`
	Amount          float64        `json:"amount" gorm:"type:decimal(10,2);not null" validate:"required,gt=0"`
	Currency        string         `json:"currency" gorm:"size:3;not null;default:USD"`
	Status          PaymentStatus  `json:"status" gorm:"size:20;not null"`
	PaymentData     datatypes.JSON `json:"payment_data" gorm:"type:json"`
	ProcessedAt     *time.Time     `json:"processed_at"`
	RefundedAt      *time.Time     `json:"refunded_at"`
	RefundAmount    *float64       `json:"refund_amount" gorm:"type:decimal(10,2)"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Shipping is one shipment for an order.
type Shipping struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	OrderID               uint           `json:"order_id" gorm:"index;not null"`
	Carrier               *string        `json:"carrier" gorm:"size:100"`
	ServiceType           *string        `json:"service_type" gorm:"size:100"`
	TrackingNumber        *string        `json:"tracking_number" gorm:"uniqueIndex;size:255"`
	Status                ShippingStatus `json:"status" gorm:"size:20;not null"`
	ShippingCost          float64        `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	EstimatedDeliveryDate *time.Time     `json:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time     `json:"actual_delivery_date"`
	ShippingAddress       datatypes.JSON `json:"shipping_address" gorm:"type:json;not null"`
	Weight                *float64       `json:"weight" gorm:"type:decimal(8,3)"`
	Dimensions            datatypes.JSON `json:"dimensions" gorm:"type:json"`
	ShippingLabelURL      *string        `json:"shipping_label_url" gorm:"size:512"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// TableName keeps the singular form used by the original schema.
func (Shipping) TableName() string {
	return "shipping"
}
