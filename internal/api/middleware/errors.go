// Package middleware provides HTTP middleware for the stub answering API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pfcsearch/widget-runtime/internal/api/dto"
)

// ErrorMiddleware handles panic recovery and error formatting.
type ErrorMiddleware struct{}

// NewErrorMiddleware creates a new ErrorMiddleware.
func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Recovery returns a gin middleware that converts panics into a generic
// detail response, matching the error-body contract the widget parses.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Detail: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// AbortWithDetail writes an error body in the {detail} shape the widget's
// messaging client extracts best-effort.
func AbortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: detail})
}
