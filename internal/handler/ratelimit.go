package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/ratelimit"
)

// RateLimitMiddleware rejects clients that exceed the limiter's window
// with a 429. Mounted on signup and login only.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, model.ErrorResponse{Error: "too many attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
