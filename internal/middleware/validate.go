package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

// ValidateTransactionDraft binds the sanitized payload to a draft for the
// route's kind and runs schema validation. Unlike the business rules behind
// it, this stage accumulates every failure so the client sees the full list
// in one round trip.
func ValidateTransactionDraft(val *validation.Validator, kind domain.TransactionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := GetPayload(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Request payload not available", ""))
			return
		}

		draft, bindErrs := validation.BindDraft(payload, kind)
		if len(bindErrs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(bindErrs))
			return
		}

		if errs := val.ValidateDraft(draft); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
			return
		}

		setDraft(c, draft)
		c.Next()
	}
}
