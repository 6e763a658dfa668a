package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID          uint   `json:"cartId"`
	ProductID       uint   `json:"productId"`
	VariantID       uint   `json:"variantId"`
	ProductName     string `json:"productName"`
	PriceCents      int64  `json:"priceCents"`
	Quantity        int    `json:"quantity"`
	ProductImageUrl string `json:"productImageUrl"`
}

type Cart struct {
	gorm.Model
	UserID uint       `json:"userId"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
