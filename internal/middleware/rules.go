package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// EvaluateBusinessRules runs the ordered business-rule checks against the
// validated draft. The first failing rule determines the response status;
// rules never accumulate.
func EvaluateBusinessRules(rules portssvc.RuleEvaluator) gin.HandlerFunc {
	return evaluateRules(rules.EvaluateCreate)
}

// EvaluateUpdateRules runs the update subset of the business rules, which
// skips the counting checks the replaced record already counts toward.
func EvaluateUpdateRules(rules portssvc.RuleEvaluator) gin.HandlerFunc {
	return evaluateRules(rules.EvaluateUpdate)
}

func evaluateRules(evaluate func(context.Context, *domain.User, *dto.TransactionDraft) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
			return
		}
		draft, ok := GetDraft(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Validated draft not available", ""))
			return
		}

		if err := evaluate(c.Request.Context(), principal, draft); err != nil {
			if apiErr, ok := apperrors.AsAPIError(err); ok {
				c.AbortWithStatusJSON(apiErr.Status, dto.FromAPIError(apiErr))
				return
			}
			GetLoggerFromCtx(c.Request.Context()).Error("Business rule evaluation failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", ""))
			return
		}

		c.Next()
	}
}
