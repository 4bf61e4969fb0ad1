package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created only through the checkout transaction; there is no delete.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
}
