package services

import (
	"context"
	"errors"

	"github.com/davidwere/sokoni-api/models"
	"gorm.io/gorm"
)

const maxProductNameLength = 255

// CatalogService owns product CRUD. Image hosting is handled upstream: by
// the time a create/update reaches here the caller already holds a hosted
// URL (or none).
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
}

func (s *CatalogService) List(ctx context.Context) ([]models.ProductResponse, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	return responses, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (models.ProductResponse, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductResponse{}, notFound("product not found")
		}
		return models.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *CatalogService) Create(ctx context.Context, input ProductInput, imageURL string) (models.ProductResponse, error) {
	if err := validateProductInput(input); err != nil {
		return models.ProductResponse{}, err
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageUrl:    imageURL,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// Update replaces every mutable field, including the image URL.
func (s *CatalogService) Update(ctx context.Context, id uint, input ProductInput, imageURL string) (models.ProductResponse, error) {
	if err := validateProductInput(input); err != nil {
		return models.ProductResponse{}, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductResponse{}, notFound("product not found")
		}
		return models.ProductResponse{}, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.ImageUrl = imageURL
	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return models.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("product not found")
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return invalidRequest("product name is required")
	}
	if len(input.Name) > maxProductNameLength {
		return invalidRequest("product name is too long")
	}
	if input.Price <= 0 {
		return invalidRequest("product price must be greater than zero")
	}
	return nil
}

func toProductResponse(product models.Product) models.ProductResponse {
	return models.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageUrl:    product.ImageUrl,
	}
}
