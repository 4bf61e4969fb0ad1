package models

import "gorm.io/gorm"

// CartItem is one cart line: a (user, product, quantity) entry. A user has
// at most one line per product; repeat adds increment the quantity.
type CartItem struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string   `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product;not null"`
	ProductID  string   `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product;not null"`
	Quantity   int      `json:"quantity" validate:"gt=0"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"` // lookup only, never mutated through the cart
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
