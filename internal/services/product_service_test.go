package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopdb/internal/models"
	"shopdb/internal/services"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Running Shoes":        "running-shoes",
		"  Running   Shoes  ":  "running-shoes",
		"Café & Croissant 2x!": "café-croissant-2x",
		"already-a-slug":       "already-a-slug",
		"":                     "",
	}
	for input, want := range cases {
		assert.Equal(t, want, services.Slugify(input), "Slugify(%q)", input)
	}
}

func TestProductService_CreateProductDerivesSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	product := &models.Product{Name: "Trail Runner 5", CategoryID: 1, Price: 99.90}
	mockRepo.On("Create", product).Return(nil).Once()

	err := productService.CreateProduct(product)
	assert.NoError(t, err)
	assert.Equal(t, "trail-runner-5", product.Slug)
	mockRepo.AssertExpectations(t)

	// An explicit slug is kept as is.
	withSlug := &models.Product{Name: "Trail Runner 5", Slug: "custom-slug", CategoryID: 1, Price: 99.90}
	mockRepo.On("Create", withSlug).Return(nil).Once()
	err = productService.CreateProduct(withSlug)
	assert.NoError(t, err)
	assert.Equal(t, "custom-slug", withSlug.Slug)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateVariantRequiresExistingProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	variant := &models.ProductVariant{ProductID: 99, Name: "Size 42", Price: 10}
	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product with id 99 not found")).Once()

	err := productService.CreateVariant(variant)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot create variant")
	mockRepo.AssertNotCalled(t, "CreateVariant", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SetStockRequiresExactlyOneOwner(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	_, err := productService.SetStock(nil, nil, 10, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of product or variant")

	_, err = productService.SetStock(uintPtr(1), uintPtr(2), 10, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of product or variant")

	mockRepo.AssertNotCalled(t, "UpsertInventory", mock.Anything)
}

func TestProductService_SetStockCreatesWhenMissing(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	mockRepo.On("GetInventoryForProduct", uint(7)).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("UpsertInventory", mock.AnythingOfType("*models.Inventory")).Return(nil).Once()

	inventory, err := productService.SetStock(uintPtr(7), nil, 25, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), *inventory.ProductID)
	assert.Nil(t, inventory.VariantID)
	assert.Equal(t, 25, inventory.Quantity)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SetStockUpdatesExisting(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	existing := &models.Inventory{ID: 3, VariantID: uintPtr(11), Quantity: 5}
	mockRepo.On("GetInventoryForVariant", uint(11)).Return(existing, nil).Once()
	mockRepo.On("UpsertInventory", existing).Return(nil).Once()

	location := "A-14"
	inventory, err := productService.SetStock(nil, uintPtr(11), 40, &location)
	assert.NoError(t, err)
	assert.Equal(t, 40, inventory.Quantity)
	assert.Equal(t, "A-14", *inventory.WarehouseLocation)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ReserveAndReleaseRejectNonPositiveQuantities(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	assert.Error(t, productService.ReserveStock(1, 0))
	assert.Error(t, productService.ReserveStock(1, -5))
	assert.Error(t, productService.ReleaseStock(1, 0))
	mockRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)

	mockRepo.On("Reserve", uint(1), 5).Return(nil).Once()
	assert.NoError(t, productService.ReserveStock(1, 5))
	mockRepo.AssertExpectations(t)
}

func TestProductService_NeedsReorder(t *testing.T) {
	productService := services.NewProductService(new(MockProductRepository))

	// No reorder level configured means never reorder.
	assert.False(t, productService.NeedsReorder(&models.Inventory{Quantity: 0}))

	// Available (on hand minus reserved) at or below the level triggers.
	inventory := &models.Inventory{Quantity: 10, ReservedQuantity: 6, ReorderLevel: intPtr(5)}
	assert.True(t, productService.NeedsReorder(inventory))

	inventory = &models.Inventory{Quantity: 10, ReservedQuantity: 2, ReorderLevel: intPtr(5)}
	assert.False(t, productService.NeedsReorder(inventory))
}

func TestProductService_AddReviewValidatesRating(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo)

	err := productService.AddReview(&models.Review{ProductID: 1, UserID: 1, Rating: 0})
	assert.Error(t, err)
	err = productService.AddReview(&models.Review{ProductID: 1, UserID: 1, Rating: 6})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreateReview", mock.Anything)

	review := &models.Review{ProductID: 1, UserID: 1, Rating: 4}
	mockRepo.On("CreateReview", review).Return(nil).Once()
	assert.NoError(t, productService.AddReview(review))
	mockRepo.AssertExpectations(t)
}
