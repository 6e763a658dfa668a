package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sokoni-store/sokoni-api/services"
)

func GetNotifications(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := Notifier.List(limit, unreadOnly)
	if err != nil {
		Log.Error("Failed to list notifications", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	unreadCount, err := Notifier.UnreadCount()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

func MarkNotificationRead(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse notification id")
		return
	}

	if err := Notifier.MarkRead(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Notification not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}

func MarkAllNotificationsRead(ctx *gin.Context) {
	count, err := Notifier.MarkAllRead()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "count": count})
}

func DeleteNotification(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse notification id")
		return
	}

	if err := Notifier.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Notification not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}
