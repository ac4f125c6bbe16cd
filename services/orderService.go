package services

import (
	"context"
	"errors"

	"github.com/davidwere/sokoni-api/models"
	"gorm.io/gorm"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) ListMine(ctx context.Context, userID uint) ([]models.OrderResponse, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	responses := make([]models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	return responses, nil
}

// GetByID merges "does not exist" and "belongs to someone else" into one
// not-found so order ids cannot be probed across users.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID uint) (models.OrderResponse, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderResponse{}, notFound("order not found")
		}
		return models.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

// MarkPaid moves the order to paid/confirmed exactly once. The guard is a
// conditional UPDATE on payment_status, so two concurrent callers (client
// confirmation and webhook) cannot both win; the loser gets an
// already-paid invalid-state error.
func (s *OrderService) MarkPaid(ctx context.Context, userID, orderID uint, paymentRef string) (models.OrderResponse, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND payment_status = ?", orderID, userID, models.PaymentStatusPending).
		Updates(map[string]any{
			"payment_status": models.PaymentStatusPaid,
			"status":         models.OrderStatusConfirmed,
			"payment_ref":    paymentRef,
		})
	if result.Error != nil {
		return models.OrderResponse{}, result.Error
	}

	if result.RowsAffected == 0 {
		// Nothing transitioned: either the order is not visible to this
		// user, or it was already paid.
		var order models.Order
		err := s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.OrderResponse{}, notFound("order not found")
			}
			return models.OrderResponse{}, err
		}
		return models.OrderResponse{}, invalidState("order already paid")
	}

	return s.GetByID(ctx, userID, orderID)
}

func toOrderResponse(order models.Order) models.OrderResponse {
	items := make([]models.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return models.OrderResponse{
		ID:            order.ID,
		CreatedAt:     order.CreatedAt,
		Total:         order.Total,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
	}
}
