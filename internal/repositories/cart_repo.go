package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	GetByUserAndProduct(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id string) error
}
