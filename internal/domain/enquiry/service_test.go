// internal/domain/enquiry/service_test.go
package enquiry

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/cart"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// Batch validation runs before any database access, so a nil-DB service
// proves the rejection happens without a write.

func TestCreateBatchRejectsEmptyBatch(t *testing.T) {
	service := NewService(nil, nil, nil)

	_, err := service.CreateBatch(1, &CreateBatchRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch cannot be empty")
}

func TestCreateBatchRejectsInvalidLines(t *testing.T) {
	service := NewService(nil, nil, nil)

	_, err := service.CreateBatch(1, &CreateBatchRequest{Enquiries: []EnquiryPayload{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 0},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be at least 1")

	_, err = service.CreateBatch(1, &CreateBatchRequest{Enquiries: []EnquiryPayload{
		{ProductID: 1, Quantity: 1, Tunch: "91"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tunch")
}

func TestListForUserRejectsUnknownStatusFilter(t *testing.T) {
	service := NewService(nil, nil, nil)

	_, err := service.ListForUser(1, "", Status("shipped"))
	require.Error(t, err)
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
		&cart.Cart{}, &cart.CartItem{}, &Enquiry{},
	))
	require.NoError(t, db.Exec(
		"TRUNCATE enquiries, cart_items, carts, product_images, products, sizes RESTART IDENTITY CASCADE",
	).Error)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *product.Product {
	t.Helper()
	prod := product.Product{Name: "Silver Chain", Category: "chains", Weight: 12.5, Tunch: "92.5", IsActive: true}
	require.NoError(t, db.Create(&prod).Error)
	return &prod
}

func TestCreateBatchRollsBackOnUnknownProduct(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, nil)
	prod := seedProduct(t, db)

	_, err := service.CreateBatch(1, &CreateBatchRequest{Enquiries: []EnquiryPayload{
		{ProductID: prod.ID, Quantity: 1},
		{ProductID: prod.ID + 999, Quantity: 1},
	}})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&Enquiry{}).Count(&count).Error)
	assert.Zero(t, count, "a failing line must roll back the whole batch")
}

func TestCreateBatchStampsSharedBatchID(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, nil)
	prod := seedProduct(t, db)

	created, err := service.CreateBatch(1, &CreateBatchRequest{Enquiries: []EnquiryPayload{
		{ProductID: prod.ID, Quantity: 1, Tunch: "92.5"},
		{ProductID: prod.ID, Quantity: 2, Tunch: "90"},
	}})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEmpty(t, created[0].CartID)
	assert.Equal(t, created[0].CartID, created[1].CartID)
	for _, e := range created {
		assert.Equal(t, StatusPending, e.Status)
	}
}

func TestCreateFromCartConvertsAndClearsInOneGo(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, nil)
	cartService := cart.NewService(db, nil)
	prod := seedProduct(t, db)

	resp, err := cartService.AddToCart(1, &cart.AddToCartRequest{ProductID: prod.ID, Quantity: 2, Tunch: "92.5"})
	require.NoError(t, err)
	stagedCartID := resp.CartID

	created, err := service.CreateFromCart(1)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, stagedCartID, created[0].CartID, "enquiries carry the originating cart identifier")
	assert.Equal(t, 2, created[0].Quantity)

	cartID, err := cartService.CurrentCartID(1)
	require.NoError(t, err)
	assert.Empty(t, cartID, "conversion retires the cart")

	count, err := cartService.GetItemCount(1)
	require.NoError(t, err)
	assert.Zero(t, count, "conversion clears the cart lines")

	_, err = service.CreateFromCart(1)
	require.Error(t, err, "converting an already converted cart must fail")
}

func TestListForUserMixedFilterThroughService(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, nil)
	prod := seedProduct(t, db)

	created, err := service.CreateBatch(1, &CreateBatchRequest{Enquiries: []EnquiryPayload{
		{ProductID: prod.ID, Quantity: 1},
		{ProductID: prod.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, created, 2)

	// One approval turns the group's overall status to mixed
	_, err = service.UpdateStatus(created[0].ID, StatusApproved)
	require.NoError(t, err)

	groups, err := service.ListForUser(1, "", StatusMixed)
	require.NoError(t, err, "the derived mixed status must be accepted as a filter")
	require.Len(t, groups, 1)
	assert.Equal(t, StatusMixed, groups[0].OverallStatus)

	groups, err = service.ListForUser(1, "", StatusRejected)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
