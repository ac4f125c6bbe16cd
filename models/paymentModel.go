package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent is an audit row for every webhook event the processor sends
// us, whether or not it advanced an order.
type PaymentEvent struct {
	gorm.Model
	EventID string         `json:"eventId" gorm:"size:255;index"`
	Type    string         `json:"type" gorm:"size:100"`
	Payload datatypes.JSON `json:"payload"`
}

type CreatePaymentIntentRequest struct {
	OrderID  uint    `json:"orderId" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}
