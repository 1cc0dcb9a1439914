package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

// DraftPipeline assembles the per-route chain for requests that carry a
// transaction draft. The stage order is fixed: transport guards first,
// then the injection scan on the untouched payload, then sanitization,
// then schema validation, and business rules last. Each stage that fails
// writes exactly one response and aborts the chain.
type DraftPipeline struct {
	maxBodyBytes int64
	validator    *validation.Validator
	rules        portssvc.RuleEvaluator
}

// NewDraftPipeline creates the pipeline composer shared by the income and
// expense routes.
func NewDraftPipeline(maxBodyBytes int64, validator *validation.Validator, rules portssvc.RuleEvaluator) *DraftPipeline {
	return &DraftPipeline{
		maxBodyBytes: maxBodyBytes,
		validator:    validator,
		rules:        rules,
	}
}

// ForCreate returns the full chain for creating a transaction of kind.
func (p *DraftPipeline) ForCreate(kind domain.TransactionKind) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		BodyGuard(p.maxBodyBytes),
		InjectionGuard(),
		SanitizePayload(),
		ValidateTransactionDraft(p.validator, kind),
		EvaluateBusinessRules(p.rules),
	}
}

// ForUpdate returns the chain for updating a transaction of kind. Updates
// run the same stages as creates but with the update subset of the
// business rules: the counting checks skip, the stateless ones still run.
func (p *DraftPipeline) ForUpdate(kind domain.TransactionKind) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		BodyGuard(p.maxBodyBytes),
		InjectionGuard(),
		SanitizePayload(),
		ValidateTransactionDraft(p.validator, kind),
		EvaluateUpdateRules(p.rules),
	}
}
