package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category is a node in the self-referencing category tree.
// Deleting a parent detaches its children (parent_id set to NULL).
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	ParentID    *uint     `json:"parent_id"`
	ImageURL    *string   `json:"image_url" gorm:"size:512"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Parent   *Category  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// Product belongs to exactly one category.
type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:255;not null" validate:"required,min=3,max=255"`
	Slug            string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description     *string        `json:"description" gorm:"type:text"`
	SKU             *string        `json:"sku" gorm:"uniqueIndex;size:100"`
	CategoryID      uint           `json:"category_id" gorm:"not null" validate:"required"`
	Brand           *string        `json:"brand" gorm:"size:255"`
	Price           float64        `json:"price" gorm:"type:decimal(10,2);not null" validate:"required,gt=0"`
	ComparePrice    *float64       `json:"compare_price" gorm:"type:decimal(10,2)"`
	CostPrice       *float64       `json:"cost_price" gorm:"type:decimal(10,2)"`
	Weight          *float64       `json:"weight" gorm:"type:decimal(8,3)"`
	Dimensions      datatypes.JSON `json:"dimensions" gorm:"type:json"`
	Images          datatypes.JSON `json:"images" gorm:"type:json"`
	Attributes      datatypes.JSON `json:"attributes" gorm:"type:json"`
	Tags            datatypes.JSON `json:"tags" gorm:"type:json"`
	MetaTitle       *string        `json:"meta_title" gorm:"size:255"`
	MetaDescription *string        `json:"meta_description" gorm:"type:text"`
	IsActive        bool           `json:"is_active" gorm:"not null;default:true"`
	IsFeatured      bool           `json:"is_featured" gorm:"not null;default:false"`
	TrackInventory  bool           `json:"track_inventory" gorm:"not null;default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Category Category         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `json:"variants,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ProductVariant is a sellable variation of a product (size, color, ...).
type ProductVariant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ProductID    uint           `json:"product_id" gorm:"index;not null" validate:"required"`
	Name         string         `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	SKU          *string        `json:"sku" gorm:"uniqueIndex;size:100"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null" validate:"required,gt=0"`
	ComparePrice *float64       `json:"compare_price" gorm:"type:decimal(10,2)"`
	CostPrice    *float64       `json:"cost_price" gorm:"type:decimal(10,2)"`
	Weight       *float64       `json:"weight" gorm:"type:decimal(8,3)"`
	Attributes   datatypes.JSON `json:"attributes" gorm:"type:json"`
	Images       datatypes.JSON `json:"images" gorm:"type:json"`
	IsActive     bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Inventory tracks stock for a product or a variant, never both.
// The check constraint requires exactly one of ProductID/VariantID to be set.
type Inventory struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ProductID         *uint     `json:"product_id" gorm:"check:inventory_product_or_variant,(product_id IS NOT NULL AND variant_id IS NULL) OR (product_id IS NULL AND variant_id IS NOT NULL)"`
	VariantID         *uint     `json:"variant_id"`
	Quantity          int       `json:"quantity" gorm:"not null;default:0" validate:"gte=0"`
	ReservedQuantity  int       `json:"reserved_quantity" gorm:"not null;default:0" validate:"gte=0"`
	ReorderLevel      *int      `json:"reorder_level" gorm:"default:0"`
	WarehouseLocation *string   `json:"warehouse_location" gorm:"size:255"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Product *Product        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Variant *ProductVariant `json:"-" gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

// Available returns the quantity not held by reservations.
func (i *Inventory) Available() int {
	return i.Quantity - i.ReservedQuantity
}

// Review is a customer review of a product. The user_id references the user
// service's users table and is deliberately not a foreign key here.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"index;not null" validate:"required"`
	UserID       uint      `json:"user_id" gorm:"not null" validate:"required"`
	Rating       int       `json:"rating" gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5" validate:"required,min=1,max=5"`
	Title        *string   `json:"title" gorm:"size:255"`
	Content      *string   `json:"content" gorm:"type:text"`
	HelpfulCount int       `json:"helpful_count" gorm:"not null;default:0"`
	IsVerified   bool      `json:"is_verified" gorm:"not null;default:false"`
	IsApproved   bool      `json:"is_approved" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName keeps the plural form used by the original schema.
func (Inventory) TableName() string {
	return "inventories"
}
