package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopdb/internal/database"
	"shopdb/internal/models"
	"shopdb/internal/repositories"
)

func setupInventory(t *testing.T) (*repositories.GORMProductRepository, *models.Inventory, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	db, err := database.Connect("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.MustClose(db, "test") })
	require.NoError(t, database.MigrateProductSchema(db))

	repo := repositories.NewGORMProductRepository(db)

	category := models.Category{Name: "Shoes", Slug: "shoes"}
	require.NoError(t, repo.CreateCategory(&category))
	product := models.Product{Name: "Runner", Slug: "runner", CategoryID: category.ID, Price: 10}
	require.NoError(t, repo.Create(&product))

	inventory := models.Inventory{ProductID: &product.ID, Quantity: 10}
	require.NoError(t, repo.UpsertInventory(&inventory))
	return repo, &inventory, db
}

func TestAdjustQuantityNeverGoesNegative(t *testing.T) {
	repo, inventory, _ := setupInventory(t)

	assert.NoError(t, repo.AdjustQuantity(inventory.ID, -4))

	err := repo.AdjustQuantity(inventory.ID, -7)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot go below zero")

	// The failed adjustment left the quantity untouched.
	current, err := repo.GetInventoryForProduct(*inventory.ProductID)
	assert.NoError(t, err)
	assert.Equal(t, 6, current.Quantity)
}

func TestReserveChecksAvailableNotOnHand(t *testing.T) {
	repo, inventory, _ := setupInventory(t)

	assert.NoError(t, repo.Reserve(inventory.ID, 8))

	// 10 on hand, 8 reserved: only 2 available.
	err := repo.Reserve(inventory.ID, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	current, _ := repo.GetInventoryForProduct(*inventory.ProductID)
	assert.Equal(t, 8, current.ReservedQuantity)
	assert.Equal(t, 2, current.Available())
}

func TestReleaseFloorsReservedAtZero(t *testing.T) {
	repo, inventory, _ := setupInventory(t)

	require.NoError(t, repo.Reserve(inventory.ID, 5))
	assert.NoError(t, repo.Release(inventory.ID, 8))

	current, _ := repo.GetInventoryForProduct(*inventory.ProductID)
	assert.Equal(t, 0, current.ReservedQuantity)
	assert.Equal(t, 10, current.Available())
}

func TestDeleteProductCascadesToDependents(t *testing.T) {
	repo, inventory, db := setupInventory(t)
	productID := *inventory.ProductID

	require.NoError(t, repo.CreateReview(&models.Review{ProductID: productID, UserID: 1, Rating: 4}))
	require.NoError(t, repo.CreateVariant(&models.ProductVariant{ProductID: productID, Name: "Size 42", Price: 10}))

	require.NoError(t, repo.Delete(productID))

	var inventories, reviews, variants int64
	db.Model(&models.Inventory{}).Where("product_id = ?", productID).Count(&inventories)
	db.Model(&models.Review{}).Where("product_id = ?", productID).Count(&reviews)
	db.Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&variants)
	assert.Zero(t, inventories)
	assert.Zero(t, reviews)
	assert.Zero(t, variants)
}

func TestUpsertInventoryUpdatesInPlace(t *testing.T) {
	repo, inventory, _ := setupInventory(t)

	inventory.Quantity = 42
	require.NoError(t, repo.UpsertInventory(inventory))

	current, err := repo.GetInventoryForProduct(*inventory.ProductID)
	assert.NoError(t, err)
	assert.Equal(t, inventory.ID, current.ID, "a second upsert must not create a second row")
	assert.Equal(t, 42, current.Quantity)
}
