package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sokoni-store/sokoni-api/models"
)

// RequireRole gates a route on the role hierarchy
// VIEWER < MANAGER < ADMIN < SUPER_ADMIN. Must run after RequireAuth.
func RequireRole(minRole string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		claims := userClaims.(jwt.MapClaims)
		role, ok := claims["role"].(string)
		if !ok || models.RoleLevel[role] < models.RoleLevel[minRole] {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
			return
		}

		ctx.Next()
	}
}
