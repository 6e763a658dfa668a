package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/store"
)

// RateLimit caps requests per client IP within a rolling window. Counters
// live in the shared store, not process memory, so the limit holds across
// instances. Store errors fail open: limiting is a convenience, not a
// correctness mechanism.
func RateLimit(s store.Store, limit int64, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "ratelimit:" + ctx.ClientIP()
		n, err := s.Incr(ctx.Request.Context(), key, window)
		if err == nil && n > limit {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, slow down."})
			return
		}
		ctx.Next()
	}
}
