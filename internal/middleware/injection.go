package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

// InjectionGuard decodes the cached body and scans every string in it, and
// in the query parameters, against the markup deny-list. It runs before
// sanitization so the scan sees the payload exactly as the client sent it.
// The rejection is deliberately generic; echoing the offending value back
// would hand the payload a second delivery channel.
func InjectionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, ok := GetRawBody(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Request body not available", ""))
			return
		}

		payload, err := validation.DecodeBody(rawBody)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Request body is not valid JSON", ""))
			return
		}

		if validation.ContainsDangerousContent(payload) || validation.ContainsDangerousQuery(c.Request.URL.Query()) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Dangerous content detected in request")
			apiErr := apperrors.NewInjectionDetected()
			c.AbortWithStatusJSON(apiErr.Status, dto.FromAPIError(apiErr))
			return
		}

		setPayload(c, payload)
		c.Next()
	}
}
