package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"shopdb/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// CreateCategory creates a new category.
func (r *GORMProductRepository) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategoryBySlug retrieves a category by slug, with its children preloaded.
func (r *GORMProductRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Preload("Children").First(&category, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category with slug %s not found", slug)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// ListCategories retrieves all categories ordered for tree assembly.
func (r *GORMProductRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order, id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, with variants preloaded.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Variants").First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID. Variants, inventories and reviews
// cascade with it.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion", id)
	}
	return nil
}

// CreateVariant creates a new product variant.
func (r *GORMProductRepository) CreateVariant(variant *models.ProductVariant) error {
	if err := r.db.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create product variant: %w", err)
	}
	return nil
}

// GetVariantByID retrieves a product variant by its ID.
func (r *GORMProductRepository) GetVariantByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("variant with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get variant by ID %d: %w", id, err)
	}
	return &variant, nil
}

// UpsertInventory creates or updates the stock record for a product or variant.
// The schema enforces that exactly one of ProductID/VariantID is set.
func (r *GORMProductRepository) UpsertInventory(inventory *models.Inventory) error {
	if inventory.ID != 0 {
		if err := r.db.Save(inventory).Error; err != nil {
			return fmt.Errorf("failed to update inventory %d: %w", inventory.ID, err)
		}
		return nil
	}
	if err := r.db.Create(inventory).Error; err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}
	return nil
}

// GetInventoryForProduct retrieves the inventory row tracking a whole product.
func (r *GORMProductRepository) GetInventoryForProduct(productID uint) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.First(&inventory, "product_id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("inventory for product %d not found", productID)
		}
		return nil, fmt.Errorf("failed to get inventory for product %d: %w", productID, err)
	}
	return &inventory, nil
}

// GetInventoryForVariant retrieves the inventory row tracking a variant.
func (r *GORMProductRepository) GetInventoryForVariant(variantID uint) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.First(&inventory, "variant_id = ?", variantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("inventory for variant %d not found", variantID)
		}
		return nil, fmt.Errorf("failed to get inventory for variant %d: %w", variantID, err)
	}
	return &inventory, nil
}

// AdjustQuantity changes on-hand stock by delta within a transaction.
// The resulting quantity must not go negative.
func (r *GORMProductRepository) AdjustQuantity(inventoryID uint, delta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inventory models.Inventory
		if err := tx.First(&inventory, inventoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("inventory with ID %d not found", inventoryID)
			}
			return fmt.Errorf("failed to load inventory %d: %w", inventoryID, err)
		}
		next := inventory.Quantity + delta
		if next < 0 {
			return fmt.Errorf("inventory %d cannot go below zero (current: %d, delta: %d)", inventoryID, inventory.Quantity, delta)
		}
		if err := tx.Model(&inventory).Update("quantity", next).Error; err != nil {
			return fmt.Errorf("failed to adjust inventory %d: %w", inventoryID, err)
		}
		return nil
	})
}

// Reserve holds quantity for a pending order. Fails when available stock
// (quantity - reserved) is insufficient.
func (r *GORMProductRepository) Reserve(inventoryID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inventory models.Inventory
		if err := tx.First(&inventory, inventoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("inventory with ID %d not found", inventoryID)
			}
			return fmt.Errorf("failed to load inventory %d: %w", inventoryID, err)
		}
		if inventory.Available() < quantity {
			return fmt.Errorf("insufficient stock for inventory %d (requested: %d, available: %d)", inventoryID, quantity, inventory.Available())
		}
		err := tx.Model(&inventory).Update("reserved_quantity", inventory.ReservedQuantity+quantity).Error
		if err != nil {
			return fmt.Errorf("failed to reserve %d units of inventory %d: %w", quantity, inventoryID, err)
		}
		return nil
	})
}

// Release returns previously reserved quantity to available stock.
func (r *GORMProductRepository) Release(inventoryID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inventory models.Inventory
		if err := tx.First(&inventory, inventoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("inventory with ID %d not found", inventoryID)
			}
			return fmt.Errorf("failed to load inventory %d: %w", inventoryID, err)
		}
		next := inventory.ReservedQuantity - quantity
		if next < 0 {
			next = 0
		}
		if err := tx.Model(&inventory).Update("reserved_quantity", next).Error; err != nil {
			return fmt.Errorf("failed to release %d units of inventory %d: %w", quantity, inventoryID, err)
		}
		return nil
	})
}

// CreateReview creates a new product review.
func (r *GORMProductRepository) CreateReview(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListReviews retrieves all reviews for a product, newest first.
func (r *GORMProductRepository) ListReviews(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Order("id DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}
