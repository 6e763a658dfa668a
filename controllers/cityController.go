package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetCities(ctx *gin.Context) {
	cities, err := Cities.Cities(ctx.Request.Context())
	if err != nil {
		Log.Error("Failed to load shipping cities", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cities": cities})
}

func UpdateCities(ctx *gin.Context) {
	var input struct {
		Cities []string `json:"cities" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := Cities.SetCities(ctx.Request.Context(), input.Cities); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save shipping cities")
		return
	}

	if err := Audit.Record(actorID(ctx), "cities.update", "settings", 0, nil,
		map[string][]string{"cities": input.Cities}, "Shipping city list replaced"); err != nil {
		Log.Warn("Audit write failed for cities update", zap.Error(err))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cities": input.Cities})
}
