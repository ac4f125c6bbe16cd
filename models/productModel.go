package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	ImageUrl    string  `json:"imageUrl" gorm:"size:500"`
}

// ProductForm is the multipart payload for create/update. The image file is
// read separately; the catalog only ever sees the hosted URL.
type ProductForm struct {
	Name        string  `form:"name" binding:"required,max=255"`
	Description string  `form:"description" binding:"max=500"`
	Price       float64 `form:"price" binding:"required,gt=0"`
}

type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageUrl    string  `json:"imageUrl"`
}
