package middleware

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// BodyGuard is the outermost stage of the request pipeline. It rejects
// non-JSON content types and oversized bodies before anything reads the
// payload, then caches the raw bytes for the stages behind it.
func BodyGuard(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		mediaType, _, _ := strings.Cut(contentType, ";")
		if strings.TrimSpace(mediaType) != "application/json" {
			apiErr := apperrors.NewUnsupportedContentType()
			c.AbortWithStatusJSON(apiErr.Status, dto.FromAPIError(apiErr))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apiErr := apperrors.NewPayloadTooLarge()
				c.AbortWithStatusJSON(apiErr.Status, dto.FromAPIError(apiErr))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Failed to read request body", ""))
			return
		}

		setRawBody(c, body)
		c.Next()
	}
}
