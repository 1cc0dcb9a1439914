package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

// SanitizePayload normalizes the decoded payload in place: text cleanup,
// tag normalization, date canonicalization and type coercions. It never
// rejects a request; malformed values survive sanitization untouched and
// fail schema validation instead, where they produce field-level errors.
func SanitizePayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := GetPayload(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Request payload not available", ""))
			return
		}

		setPayload(c, validation.Sanitize(payload))
		c.Next()
	}
}
