package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
)

// ruleEvaluator runs the business-rule checks that need store state, in a
// fixed order, stopping at the first failure. Schema validation has already
// accumulated its errors by the time a draft reaches this point.
//
// The store reads here are not transactionally isolated: two concurrent
// requests from the same user can both pass the volume, quota and duplicate
// checks before either write lands. The ceilings are best-effort policy,
// not invariants the store enforces.
type ruleEvaluator struct {
	txRepo portsrepo.TransactionPolicyReader
	rules  config.BusinessRules
	now    func() time.Time
}

// NewRuleEvaluator creates the evaluator with its policy constants fixed at
// construction time.
func NewRuleEvaluator(txRepo portsrepo.TransactionPolicyReader, rules config.BusinessRules) portssvc.RuleEvaluator {
	return &ruleEvaluator{txRepo: txRepo, rules: rules, now: time.Now}
}

var _ portssvc.RuleEvaluator = (*ruleEvaluator)(nil)

// EvaluateCreate checks a draft against every business rule. The order is
// load-bearing: a request failing several checks must always report the
// earliest one (account state before volume, volume before amount policy).
func (s *ruleEvaluator) EvaluateCreate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error {
	amount, err := draft.AmountDecimal()
	if err != nil {
		return fmt.Errorf("parsing draft amount: %w", err)
	}
	date, err := draft.DateTime()
	if err != nil {
		return fmt.Errorf("parsing draft date: %w", err)
	}

	if err := s.checkAccountActive(principal); err != nil {
		return err
	}
	if err := s.checkDailyVolume(ctx, principal.UserID, date); err != nil {
		return err
	}
	if err := s.checkAmountCeiling(amount); err != nil {
		return err
	}
	if err := s.checkConsistency(draft.Kind, draft.Category, amount, date); err != nil {
		return err
	}
	if err := s.checkPlanQuota(ctx, principal, len(draft.Tags)); err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, principal.UserID, amount, date, draft.Category); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Business rules passed",
		slog.String("user_id", principal.UserID), slog.String("kind", string(draft.Kind)))
	return nil
}

// EvaluateUpdate checks a draft that replaces an existing record. The
// counting rules (daily volume, plan transaction quota, duplicate) do not
// run: the record being replaced already counts toward each of them, so a
// full re-check would reject the update for the record's own existence.
// The account, amount-ceiling, consistency and tag-limit checks still
// apply, in the same relative order as on create.
func (s *ruleEvaluator) EvaluateUpdate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error {
	amount, err := draft.AmountDecimal()
	if err != nil {
		return fmt.Errorf("parsing draft amount: %w", err)
	}
	date, err := draft.DateTime()
	if err != nil {
		return fmt.Errorf("parsing draft date: %w", err)
	}

	if err := s.checkAccountActive(principal); err != nil {
		return err
	}
	if err := s.checkAmountCeiling(amount); err != nil {
		return err
	}
	if err := s.checkConsistency(draft.Kind, draft.Category, amount, date); err != nil {
		return err
	}
	if err := s.checkTagLimit(principal, len(draft.Tags)); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Update rules passed",
		slog.String("user_id", principal.UserID), slog.String("kind", string(draft.Kind)))
	return nil
}

// checkAccountActive rejects deactivated accounts and, on top of that,
// expires sessions by policy when the last login is too old — even though
// the bearer token itself is still cryptographically valid.
func (s *ruleEvaluator) checkAccountActive(principal *domain.User) error {
	if !principal.IsActive {
		return apperrors.NewAccountInactive()
	}
	if principal.LastLoginAt != nil && s.now().Sub(*principal.LastLoginAt) > s.rules.InactivityThreshold {
		return apperrors.NewSessionExpired()
	}
	return nil
}

// checkDailyVolume caps transactions per calendar day of the draft's date.
func (s *ruleEvaluator) checkDailyVolume(ctx context.Context, userID string, date time.Time) error {
	count, err := s.txRepo.CountTransactionsOnDay(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("counting transactions for day: %w", err)
	}
	if count >= int64(s.rules.DailyTransactionLimit) {
		return apperrors.NewDailyLimitReached()
	}
	return nil
}

// checkAmountCeiling applies the policy maximum, which is stricter than the
// schema validator's technical bound.
func (s *ruleEvaluator) checkAmountCeiling(amount decimal.Decimal) error {
	if amount.GreaterThan(decimal.NewFromFloat(s.rules.MaxTransactionAmount)) {
		return apperrors.NewAmountPolicyExceeded()
	}
	return nil
}

// checkConsistency is the safety net behind the schema layer: positive
// amount, a bounded future date, and the authoritative category check for
// the route's kind.
func (s *ruleEvaluator) checkConsistency(kind domain.TransactionKind, category string, amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return apperrors.NewInconsistentTransaction("amount must be greater than zero")
	}
	if date.After(s.now().Add(s.rules.FutureDateHorizon)) {
		return apperrors.NewInconsistentTransaction("date is too far in the future")
	}
	if !domain.ValidCategory(kind, category) {
		return apperrors.NewInconsistentTransaction(fmt.Sprintf("category is not valid for %s transactions", kind))
	}
	return nil
}

// checkPlanQuota enforces the subscription tier's ceilings.
func (s *ruleEvaluator) checkPlanQuota(ctx context.Context, principal *domain.User, tagCount int) error {
	limits := principal.Plan.Limits()
	if limits.MaxTransactions >= 0 {
		total, err := s.txRepo.CountActiveTransactions(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("counting active transactions: %w", err)
		}
		if total >= limits.MaxTransactions {
			return apperrors.NewPlanQuotaReached()
		}
	}
	return s.checkTagLimit(principal, tagCount)
}

// checkTagLimit enforces the tier's tag ceiling on its own; it needs no
// store state so updates run it too.
func (s *ruleEvaluator) checkTagLimit(principal *domain.User, tagCount int) error {
	limits := principal.Plan.Limits()
	if limits.MaxTags >= 0 && tagCount > limits.MaxTags {
		return apperrors.NewPlanTagLimitExceeded()
	}
	return nil
}

// checkDuplicate rejects a draft identical in amount, calendar day and
// category to an existing active transaction of either kind.
func (s *ruleEvaluator) checkDuplicate(ctx context.Context, userID string, amount decimal.Decimal, date time.Time, category string) error {
	existing, err := s.txRepo.FindDuplicateTransaction(ctx, userID, amount, date, category)
	if err != nil {
		return fmt.Errorf("looking up duplicate transaction: %w", err)
	}
	if existing != nil {
		return apperrors.NewDuplicateTransaction()
	}
	return nil
}
