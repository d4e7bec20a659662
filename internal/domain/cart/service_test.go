// internal/domain/cart/service_test.go
package cart

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// The quantity and tunch guards run before any database access, so a nil-DB
// service proves the rejection happens without a write.

func TestAddToCartRejectsQuantityBelowOne(t *testing.T) {
	service := NewService(nil, nil)

	for _, quantity := range []int{0, -1, -10} {
		_, err := service.AddToCart(1, &AddToCartRequest{ProductID: 1, Quantity: quantity})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be at least 1")
	}
}

func TestAddToCartRejectsUnknownTunch(t *testing.T) {
	service := NewService(nil, nil)

	_, err := service.AddToCart(1, &AddToCartRequest{ProductID: 1, Quantity: 1, Tunch: "91"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tunch")
}

func TestUpdateCartItemRejectsQuantityBelowOne(t *testing.T) {
	service := NewService(nil, nil)

	for _, quantity := range []int{0, -3} {
		_, err := service.UpdateCartItem(1, 1, &UpdateCartItemRequest{Quantity: quantity})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be at least 1")
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&product.Product{}, &product.ProductImage{}, &size.Size{},
		&Cart{}, &CartItem{},
	))
	require.NoError(t, db.Exec(
		"TRUNCATE cart_items, carts, product_images, products, sizes RESTART IDENTITY CASCADE",
	).Error)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *product.Product {
	t.Helper()
	prod := product.Product{Name: "Silver Chain", Category: "chains", Weight: 12.5, Tunch: "92.5", IsActive: true}
	require.NoError(t, db.Create(&prod).Error)
	return &prod
}

func TestClearCartIsIdempotentAndRetiresCartID(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil)
	prod := seedProduct(t, db)

	resp, err := service.AddToCart(1, &AddToCartRequest{ProductID: prod.ID, Quantity: 2})
	require.NoError(t, err)
	firstCartID := resp.CartID
	require.NotEmpty(t, firstCartID)

	require.NoError(t, service.ClearCart(1))

	cartID, err := service.CurrentCartID(1)
	require.NoError(t, err)
	assert.Empty(t, cartID, "cart identifier must be retired on clear")

	// Clearing an already empty cart is not an error
	require.NoError(t, service.ClearCart(1))

	resp, err = service.AddToCart(1, &AddToCartRequest{ProductID: prod.ID, Quantity: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.CartID)
	assert.NotEqual(t, firstCartID, resp.CartID, "a new staging cycle mints a fresh identifier")
}

func TestUpdateCartItemRejectionLeavesStoredQuantity(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil)
	prod := seedProduct(t, db)

	resp, err := service.AddToCart(1, &AddToCartRequest{ProductID: prod.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	itemID := resp.Items[0].ID

	_, err = service.UpdateCartItem(1, itemID, &UpdateCartItemRequest{Quantity: 0})
	require.Error(t, err)

	resp, err = service.GetCart(1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity, "a rejected update must not touch the stored quantity")
}

func TestGetCartReportsLatestItemMutation(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil)
	prod := seedProduct(t, db)

	resp, err := service.AddToCart(1, &AddToCartRequest{ProductID: prod.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	assert.False(t, resp.UpdatedAt.IsZero())
	assert.False(t, resp.UpdatedAt.Before(resp.Items[0].CreatedAt),
		"cart-level UpdatedAt tracks the latest item mutation")
}
