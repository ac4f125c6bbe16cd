package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type Order struct {
	gorm.Model
	UserID        uint        `json:"userId"`
	Total         float64     `json:"total"`
	Status        string      `json:"status" gorm:"size:20;default:pending"`
	PaymentStatus string      `json:"paymentStatus" gorm:"size:20;default:pending"`
	PaymentRef    string      `json:"paymentRef" gorm:"size:255"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a point-in-time copy of the catalog row. Later catalog edits
// never touch it.
type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"orderId"`
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName" gorm:"size:255"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	CreatedAt     time.Time           `json:"createdAt"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	Items         []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}
