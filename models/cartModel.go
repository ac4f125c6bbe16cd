package models

import "time"

// CartItem holds one (user, product) line. The product reference is weak:
// the product may be deleted while the line still exists. No soft delete
// here: removed or checked-out lines are gone for real, so the unique index
// stays clean when the user re-adds the same product.
type CartItem struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
}

type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// Quantity carries no required tag: zero is a valid value and removes the
// line.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse joins a cart line with the current catalog record. A
// deleted product renders blank fields and a zero price.
type CartItemResponse struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	ImageUrl  string  `json:"imageUrl"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}
