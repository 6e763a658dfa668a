package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
)

type subscribeInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

func GetPushPublicKey(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"publicKey": WebPush.PublicKey()})
}

// SubscribePush upserts by endpoint: re-subscribing from the same browser
// refreshes the keys instead of erroring on the unique index.
func SubscribePush(ctx *gin.Context) {
	var input subscribeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	sub := models.PushSubscription{
		Endpoint: input.Endpoint,
		P256dh:   input.Keys.P256dh,
		Auth:     input.Keys.Auth,
		UserID:   actorID(ctx),
	}

	err := initializers.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "user_id", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true})
}

func UnsubscribePush(ctx *gin.Context) {
	var input struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Unscoped().
		Where("endpoint = ?", input.Endpoint).
		Delete(&models.PushSubscription{})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove subscription")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Subscription not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}
