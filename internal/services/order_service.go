package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderEventPublisher publishes order lifecycle events to a message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// CheckoutRequest carries the shipping and payment details for a checkout.
type CheckoutRequest struct {
	Address        string `json:"address" validate:"required,max=200"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=cash card"`
	CardNumber     string `json:"card_number"`
	CardHolderName string `json:"card_holder_name"`
}

// OrderService handles checkout and order queries. Checkout needs
// cross-entity atomicity (cart, products, orders), so the service runs it
// directly on a GORM transaction rather than through the repositories.
type OrderService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
	mq        OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, mq OrderEventPublisher) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		mq:        mq,
	}
}

// Checkout converts the user's cart into an order in a single all-or-nothing
// transaction: it snapshots each line at the live product price, decrements
// stock, and drains the cart. On any failure the transaction rolls back and
// the cart is left as it was.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
	}

	if req.PaymentMethod == models.PaymentMethodCard {
		cardNumber := strings.ReplaceAll(req.CardNumber, " ", "")
		if len(cardNumber) != 16 {
			return nil, fmt.Errorf("card number must have 16 digits: %w", models.ErrInvalidCard)
		}
		order.CardLastFour = cardNumber[len(cardNumber)-4:]
		order.CardHolderName = req.CardHolderName
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Find(&cartItems, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return models.ErrEmptyCart
		}

		var total float64
		for _, item := range cartItems {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", item.ProductID, models.ErrNotFound)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}

			// Compare-and-decrement: the stock check and the decrement are a
			// single statement, so a concurrent checkout can never drive
			// stock negative. Stock may have changed since add-to-cart.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s (requested: %d, available: %d): %w",
					product.Name, item.Quantity, product.Stock, models.ErrInsufficientStock)
			}

			order.Items = append(order.Items, models.OrderItem{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				Price:       product.Price, // Unit price at the time of order
			})
			total += product.Price * float64(item.Quantity)
		}
		order.TotalAmount = total

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Drain the cart. Hard delete so the (user, product) unique index is
		// free for future carts.
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) ||
			errors.Is(err, models.ErrInsufficientStock) ||
			errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("checkout for user %s: %v: %w", userID, err, models.ErrTransactionFailed)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event. Broker failures are
// logged, never surfaced: the order is already committed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mq == nil {
		log.Println("Event publisher not configured, skipping order.created event")
		return
	}
	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	if err := s.mq.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    true,
		models.OrderStatusDelivered:  true,
		models.OrderStatusCancelled:  true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
