package middleware

import (
	"net/http"

	"github.com/Adrixx117/Investments/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond rps (with burst) for the whole server.
// A non-positive rps disables the limit.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			util.Error(c, http.StatusTooManyRequests, util.CodeTooMany, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
