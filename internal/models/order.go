package models

import "gorm.io/gorm"

// Payment methods accepted at checkout.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is an immutable line item of an order. Name and unit price are
// captured at checkout time so order history survives later product edits
// or deletion.
type OrderItem struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string  `json:"order_id" gorm:"type:varchar(36);index;not null"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // Unit price at the time of order
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Order is an immutable snapshot of a checked-out cart. For card payments
// only the last four digits and the holder name are retained.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string      `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount    float64     `json:"total_amount"`
	Address        string      `json:"address"`
	PaymentMethod  string      `json:"payment_method"` // "cash" or "card"
	CardLastFour   string      `json:"card_last_four,omitempty" gorm:"type:varchar(4)"`
	CardHolderName string      `json:"card_holder_name,omitempty"`
	Status         string      `json:"status" gorm:"default:pending"`
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
