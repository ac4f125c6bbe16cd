package services

import (
	"context"
	"errors"

	"github.com/davidwere/sokoni-api/models"
	"gorm.io/gorm"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's lines joined with the current catalog. Unlike a
// finalized order, name and price here track catalog edits; a deleted
// product renders blank fields.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItemResponse, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return s.joinCatalog(ctx, s.db, items)
}

// AddOrUpdate creates the line or increments an existing one. A resulting
// quantity at or below zero is clamped to 1.
func (s *CartService) AddOrUpdate(ctx context.Context, userID uint, req models.AddToCartRequest) ([]models.CartItemResponse, error) {
	var existing models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&existing).Error

	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if existing.Quantity <= 0 {
			existing.Quantity = 1
		}
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		item := models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: quantity}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// SetQuantity replaces the quantity outright. Zero or less deletes the line.
// A missing line is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, quantity int) ([]models.CartItemResponse, error) {
	var existing models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.GetCart(ctx, userID)
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := s.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return nil, err
		}
	} else {
		existing.Quantity = quantity
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID)
}

// Remove deletes the line if present; removing an absent line is not an
// error.
func (s *CartService) Remove(ctx context.Context, userID, productID uint) ([]models.CartItemResponse, error) {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// Checkout snapshots the cart into a new pending order and clears the cart,
// all inside one transaction. Lines whose product no longer exists are
// dropped from the order without failing the checkout.
func (s *CartService) Checkout(ctx context.Context, userID uint) (models.OrderResponse, error) {
	var response models.OrderResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return invalidState("cart is empty")
		}

		order := models.Order{
			UserID:        userID,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
		}
		for _, item := range items {
			var product models.Product
			err := tx.First(&product, item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
			order.Total += product.Price * float64(item.Quantity)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return models.OrderResponse{}, err
	}
	return response, nil
}

func (s *CartService) joinCatalog(ctx context.Context, db *gorm.DB, items []models.CartItem) ([]models.CartItemResponse, error) {
	responses := make([]models.CartItemResponse, 0, len(items))
	for _, item := range items {
		response := models.CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		var product models.Product
		err := db.WithContext(ctx).First(&product, item.ProductID).Error
		if err == nil {
			response.Name = product.Name
			response.ImageUrl = product.ImageUrl
			response.UnitPrice = product.Price
			response.LineTotal = product.Price * float64(item.Quantity)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		responses = append(responses, response)
	}
	return responses, nil
}
