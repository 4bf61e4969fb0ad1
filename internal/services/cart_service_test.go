package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newCartService builds a CartService on a fresh in-memory database and
// seeds two products.
func newCartService(t *testing.T) (*services.CartService, *gorm.DB, []models.Product) {
	t.Helper()
	db := setupTestDB(t)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	products := []models.Product{
		{Name: "Laptop", Price: 1200.00, Stock: 10},
		{Name: "Mouse", Price: 25.00, Stock: 3},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}
	return services.NewCartService(cartRepo, productRepo), db, products
}

func cartItemCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count cart items: %v", err)
	}
	return count
}

func TestCartService_AddToCart(t *testing.T) {
	service, _, products := newCartService(t)

	item, err := service.AddToCart("user-1", products[0].ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Repeat add increments the existing line instead of replacing it
	item, err = service.AddToCart("user-1", products[0].ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	service, db, products := newCartService(t)

	// Requested quantity exceeds stock: no line is created
	_, err := service.AddToCart("user-1", products[1].ID, 5)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.EqualValues(t, 0, cartItemCount(t, db, "user-1"))

	// The combined quantity is re-validated on repeat adds
	_, err = service.AddToCart("user-1", products[1].ID, 2)
	assert.NoError(t, err)
	_, err = service.AddToCart("user-1", products[1].ID, 2)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity, "failed add must not touch the existing line")
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	service, _, _ := newCartService(t)

	_, err := service.AddToCart("user-1", "no-such-product", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, _, products := newCartService(t)

	item, err := service.AddToCart("user-1", products[0].ID, 2)
	assert.NoError(t, err)

	// Valid update
	err = service.UpdateQuantity("user-1", item.ID, 4)
	assert.NoError(t, err)
	cart, _ := service.GetCart("user-1")
	assert.Equal(t, 4, cart[0].Quantity)

	// Non-positive and above-stock quantities are dropped silently
	assert.NoError(t, service.UpdateQuantity("user-1", item.ID, 0))
	assert.NoError(t, service.UpdateQuantity("user-1", item.ID, -3))
	assert.NoError(t, service.UpdateQuantity("user-1", item.ID, 999))
	cart, _ = service.GetCart("user-1")
	assert.Equal(t, 4, cart[0].Quantity)

	// Unknown line
	err = service.UpdateQuantity("user-1", "no-such-item", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartService_UpdateQuantity_NotOwner(t *testing.T) {
	service, _, products := newCartService(t)

	item, err := service.AddToCart("user-1", products[0].ID, 2)
	assert.NoError(t, err)

	err = service.UpdateQuantity("user-2", item.ID, 1)
	assert.ErrorIs(t, err, models.ErrNotOwner)

	// The true owner's cart is unchanged
	cart, _ := service.GetCart("user-1")
	assert.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	service, db, products := newCartService(t)

	item, err := service.AddToCart("user-1", products[0].ID, 2)
	assert.NoError(t, err)

	// Removal by a non-owner silently leaves the line in place
	assert.NoError(t, service.RemoveItem("user-2", item.ID))
	assert.EqualValues(t, 1, cartItemCount(t, db, "user-1"))

	// Removal by the owner deletes the line
	assert.NoError(t, service.RemoveItem("user-1", item.ID))
	assert.EqualValues(t, 0, cartItemCount(t, db, "user-1"))

	// The same product can be added again afterwards
	_, err = service.AddToCart("user-1", products[0].ID, 1)
	assert.NoError(t, err)
}

func TestCartService_CartTotal(t *testing.T) {
	service, _, products := newCartService(t)

	_, err := service.AddToCart("user-1", products[0].ID, 2) // 2 x 1200.00
	assert.NoError(t, err)
	_, err = service.AddToCart("user-1", products[1].ID, 3) // 3 x 25.00
	assert.NoError(t, err)

	total, err := service.CartTotal("user-1")
	assert.NoError(t, err)
	assert.InDelta(t, 2475.00, total, 0.001)

	// Another user's cart does not leak into the total
	total, err = service.CartTotal("user-2")
	assert.NoError(t, err)
	assert.Zero(t, total)
}
