package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
)

func SubscribeNewsletter(ctx *gin.Context) {
	var subscriber models.NewsletterSubscriber
	if err := ctx.ShouldBindJSON(&subscriber); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.NewsletterSubscriber
	result := initializers.DB.Where("email = ?", subscriber.Email).Find(&existing)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Email already subscribed")
		return
	}

	if err := initializers.DB.Create(&subscriber).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Subscribed to newsletter."})
}

func UnsubscribeNewsletter(ctx *gin.Context) {
	email := ctx.Param("email")

	result := initializers.DB.Unscoped().
		Where("email = ?", email).
		Delete(&models.NewsletterSubscriber{})
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Email not subscribed")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Unsubscribed from newsletter."})
}
