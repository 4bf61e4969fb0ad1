package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for a user's shopping cart. Every
// operation is scoped to the user ID supplied by the caller.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart adds quantity of a product to the user's cart. If a line for
// the product already exists, the quantity is added to it, and the combined
// quantity is validated against current stock.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		if quantity > product.Stock {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, quantity, product.Stock, models.ErrInsufficientStock)
		}
		item = &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
		return item, nil
	}

	newQuantity := item.Quantity + quantity
	if newQuantity > product.Stock {
		return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, newQuantity, product.Stock, models.ErrInsufficientStock)
	}
	item.Quantity = newQuantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the quantity of a cart line. A line owned by another
// user is rejected. Out-of-range quantities (non-positive or above current
// stock) are dropped silently, leaving the line unchanged.
func (s *CartService) UpdateQuantity(userID, itemID string, quantity int) error {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotOwner)
	}
	if quantity <= 0 || item.Product == nil || quantity > item.Product.Stock {
		return nil
	}
	item.Quantity = quantity
	return s.cartRepo.Update(item)
}

// RemoveItem deletes a cart line owned by the user. Lines owned by someone
// else are left untouched without raising an error.
func (s *CartService) RemoveItem(userID, itemID string) error {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return nil
	}
	return s.cartRepo.Delete(itemID)
}

// GetCart returns the user's cart lines with their products loaded.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(userID)
}

// CartTotal returns the sum of live product price times quantity over the
// user's cart lines.
func (s *CartService) CartTotal(userID string) (float64, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, item := range items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total, nil
}
