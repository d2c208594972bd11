package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"property-marketplace/internal/ratelimit"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	AllowRequest(key string) bool
	GetStats(key string) ratelimit.Stats
}

// RateLimit enforces per-client limits keyed by client IP
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.AllowRequest(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   limiter.GetStats(key),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminAuth requires "Authorization: Bearer <token>". An empty token
// leaves the routes open.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
