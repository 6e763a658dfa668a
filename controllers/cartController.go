package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
)

func CreateCartItem(ctx *gin.Context) {
	var cartItem models.CartItem
	if err := ctx.ShouldBindJSON(&cartItem); err != nil {
		Log.Warn("Cart bind error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var existingCartItem models.CartItem
	err := initializers.DB.
		Where("cart_id = ? AND product_id = ? AND variant_id = ?", cartItem.CartID, cartItem.ProductID, cartItem.VariantID).
		First(&existingCartItem).Error

	if err == nil {
		existingCartItem.Quantity += cartItem.Quantity

		if err := initializers.DB.Save(&existingCartItem).Error; err != nil {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingCartItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	if err := initializers.DB.Create(&cartItem).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": cartItem.ProductName + " added to cart",
		"id":      cartItem.ID,
	})
}

func GetCart(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var cart models.Cart
	result := initializers.DB.
		Where("user_id = ?", userId).
		Preload("Items").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}
