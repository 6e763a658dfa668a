package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductVariant struct {
	gorm.Model
	ProductID  uint   `json:"productId"`
	Label      string `json:"label" binding:"required"`
	PriceCents int64  `json:"priceCents" binding:"required"`
	Stock      int    `json:"stock"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Brand       string           `json:"brand"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	PriceCents  int64            `json:"priceCents" binding:"required"`
	Category    string           `json:"category"`
	Colors      datatypes.JSON   `json:"colors"`
	Archived    bool             `json:"archived"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images      []ProductImage   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
