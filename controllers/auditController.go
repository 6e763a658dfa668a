package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sokoni-store/sokoni-api/models"
	"github.com/sokoni-store/sokoni-api/services"
)

type auditEntryView struct {
	models.AuditLogEntry
	Category string `json:"category"`
}

// Categories are derived on read, never stored.
func decorate(entries []models.AuditLogEntry) []auditEntryView {
	views := make([]auditEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, auditEntryView{
			AuditLogEntry: e,
			Category:      services.CategoryForAction(e.Action),
		})
	}
	return views
}

func GetAuditLog(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	actorId, _ := strconv.Atoi(ctx.DefaultQuery("actorId", "0"))
	entityType := ctx.Query("entityType")

	entries, err := Audit.QueryRecent(limit, entityType, uint(actorId))
	if err != nil {
		Log.Error("Failed to query audit log", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"entries": decorate(entries)})
}

// GetEntityTimeline is the full ordered history of one entity.
func GetEntityTimeline(ctx *gin.Context) {
	entityType := ctx.Param("entityType")
	entityId, err := strconv.Atoi(ctx.Param("entityId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse entity id")
		return
	}

	entries, err := Audit.QueryForEntity(entityType, uint(entityId))
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"timeline": decorate(entries)})
}

func GetAuditStats(ctx *gin.Context) {
	stats, err := Audit.AggregateByActor()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"stats": stats})
}
