package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware returns a middleware that echoes the request origin, the
// way the production answering service scopes CORS per widget origin. The
// stub allows every origin; origin validation belongs to the real service.
func NewCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
