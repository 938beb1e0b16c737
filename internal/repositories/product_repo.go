package repositories

import (
	"shopdb/internal/models"
)

// ProductRepository defines the interface for product service data access.
type ProductRepository interface {
	CreateCategory(category *models.Category) error
	GetCategoryBySlug(slug string) (*models.Category, error)
	ListCategories() ([]models.Category, error)

	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error

	CreateVariant(variant *models.ProductVariant) error
	GetVariantByID(id uint) (*models.ProductVariant, error)

	UpsertInventory(inventory *models.Inventory) error
	GetInventoryForProduct(productID uint) (*models.Inventory, error)
	GetInventoryForVariant(variantID uint) (*models.Inventory, error)
	AdjustQuantity(inventoryID uint, delta int) error
	Reserve(inventoryID uint, quantity int) error
	Release(inventoryID uint, quantity int) error

	CreateReview(review *models.Review) error
	ListReviews(productID uint) ([]models.Review, error)
}
