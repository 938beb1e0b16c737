package services

import (
	"fmt"
	"strings"
	"unicode"

	"shopdb/internal/models"
	"shopdb/internal/repositories"
)

// ProductService handles business logic related to the product catalog
// and its inventory.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product, deriving the slug from the name
// when none is supplied.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}

// CreateCategory creates a new category, deriving the slug from the name
// when none is supplied.
func (s *ProductService) CreateCategory(category *models.Category) error {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return s.repo.CreateCategory(category)
}

// GetCategoryBySlug retrieves a category and its children.
func (s *ProductService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.repo.GetCategoryBySlug(slug)
}

// ListCategories retrieves all categories.
func (s *ProductService) ListCategories() ([]models.Category, error) {
	return s.repo.ListCategories()
}

// CreateVariant creates a new variant for a product.
func (s *ProductService) CreateVariant(variant *models.ProductVariant) error {
	if _, err := s.repo.GetByID(variant.ProductID); err != nil {
		return fmt.Errorf("cannot create variant: %w", err)
	}
	return s.repo.CreateVariant(variant)
}

// SetStock creates or updates the inventory record for a product or a
// variant. Exactly one of productID/variantID must be set; the schema's
// check constraint enforces the same rule at the database level.
func (s *ProductService) SetStock(productID, variantID *uint, quantity int, warehouseLocation *string) (*models.Inventory, error) {
	if (productID == nil) == (variantID == nil) {
		return nil, fmt.Errorf("inventory must reference exactly one of product or variant")
	}

	var inventory *models.Inventory
	var err error
	if productID != nil {
		inventory, err = s.repo.GetInventoryForProduct(*productID)
	} else {
		inventory, err = s.repo.GetInventoryForVariant(*variantID)
	}
	if err != nil {
		inventory = &models.Inventory{
			ProductID: productID,
			VariantID: variantID,
		}
	}

	inventory.Quantity = quantity
	if warehouseLocation != nil {
		inventory.WarehouseLocation = warehouseLocation
	}

	if err := s.repo.UpsertInventory(inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// AdjustStock changes on-hand stock by delta.
func (s *ProductService) AdjustStock(inventoryID uint, delta int) error {
	return s.repo.AdjustQuantity(inventoryID, delta)
}

// ReserveStock holds quantity for a pending order.
func (s *ProductService) ReserveStock(inventoryID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive")
	}
	return s.repo.Reserve(inventoryID, quantity)
}

// ReleaseStock returns reserved quantity to available stock.
func (s *ProductService) ReleaseStock(inventoryID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("release quantity must be positive")
	}
	return s.repo.Release(inventoryID, quantity)
}

// NeedsReorder reports whether available stock has fallen to or below the
// inventory's reorder level.
func (s *ProductService) NeedsReorder(inventory *models.Inventory) bool {
	if inventory.ReorderLevel == nil {
		return false
	}
	return inventory.Available() <= *inventory.ReorderLevel
}

// AddReview creates a customer review for a product.
func (s *ProductService) AddReview(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", review.Rating)
	}
	return s.repo.CreateReview(review)
}

// ListReviews retrieves all reviews for a product.
func (s *ProductService) ListReviews(productID uint) ([]models.Review, error) {
	return s.repo.ListReviews(productID)
}

// Slugify lowercases a name and collapses runs of non-alphanumeric
// characters into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
