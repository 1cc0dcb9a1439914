package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/core/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
)

// --- Mock TransactionPolicyReader ---
type MockPolicyReader struct {
	mock.Mock
}

func (m *MockPolicyReader) CountTransactionsOnDay(ctx context.Context, userID string, day time.Time) (int64, error) {
	args := m.Called(ctx, userID, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPolicyReader) CountActiveTransactions(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPolicyReader) FindDuplicateTransaction(ctx context.Context, userID string, amount decimal.Decimal, day time.Time, category string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount, day, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portsrepo.TransactionPolicyReader = (*MockPolicyReader)(nil)

// --- Test Suite ---
type RuleEvaluatorTestSuite struct {
	suite.Suite
	mockRepo  *MockPolicyReader
	evaluator portssvc.RuleEvaluator
	rules     config.BusinessRules
}

func (suite *RuleEvaluatorTestSuite) SetupTest() {
	suite.mockRepo = new(MockPolicyReader)
	suite.rules = config.BusinessRules{
		DailyTransactionLimit: 50,
		MaxTransactionAmount:  1_000_000,
		InactivityThreshold:   90 * 24 * time.Hour,
		FutureDateHorizon:     30 * 24 * time.Hour,
	}
	suite.evaluator = services.NewRuleEvaluator(suite.mockRepo, suite.rules)
}

func (suite *RuleEvaluatorTestSuite) activeUser() *domain.User {
	lastLogin := time.Now().Add(-24 * time.Hour)
	return &domain.User{
		UserID:      "user-1",
		Plan:        domain.PlanFree,
		IsActive:    true,
		LastLoginAt: &lastLogin,
	}
}

func (suite *RuleEvaluatorTestSuite) expenseDraft() *dto.TransactionDraft {
	return &dto.TransactionDraft{
		Kind:          domain.KindExpense,
		Description:   "Groceries",
		Amount:        json.Number("45.50"),
		Category:      "alimentacion",
		Date:          time.Now().UTC().Format(time.RFC3339),
		PaymentMethod: "efectivo",
		Tags:          []string{"food"},
	}
}

// allowAll sets up the repo so every store-backed check passes.
func (suite *RuleEvaluatorTestSuite) allowAll() {
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)
	suite.mockRepo.On("CountActiveTransactions", mock.Anything, "user-1").Return(int64(0), nil)
	suite.mockRepo.On("FindDuplicateTransaction", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
}

func (suite *RuleEvaluatorTestSuite) assertStatus(err error, status int) {
	suite.Require().Error(err)
	apiErr, ok := apperrors.AsAPIError(err)
	suite.Require().True(ok, "expected an APIError, got %v", err)
	suite.Equal(status, apiErr.Status)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_AllRulesPass() {
	suite.allowAll()

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), suite.expenseDraft())

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_InactiveAccountWinsOverEverything() {
	user := suite.activeUser()
	user.IsActive = false

	// No repo expectations: the account check must short-circuit before any
	// store read happens.
	err := suite.evaluator.EvaluateCreate(context.Background(), user, suite.expenseDraft())

	suite.assertStatus(err, 403)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountTransactionsOnDay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_StaleLoginExpiresSession() {
	user := suite.activeUser()
	stale := time.Now().Add(-91 * 24 * time.Hour)
	user.LastLoginAt = &stale

	err := suite.evaluator.EvaluateCreate(context.Background(), user, suite.expenseDraft())

	suite.assertStatus(err, 401)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_NeverLoggedInIsNotStale() {
	user := suite.activeUser()
	user.LastLoginAt = nil
	suite.allowAll()

	err := suite.evaluator.EvaluateCreate(context.Background(), user, suite.expenseDraft())

	suite.NoError(err)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_DailyVolumeLimit() {
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(50), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), suite.expenseDraft())

	suite.assertStatus(err, 429)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountActiveTransactions", mock.Anything, mock.Anything)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_AmountPolicyCeiling() {
	draft := suite.expenseDraft()
	draft.Amount = json.Number("1000001")
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_DateBeyondFutureHorizon() {
	draft := suite.expenseDraft()
	draft.Date = time.Now().Add(31 * 24 * time.Hour).UTC().Format(time.RFC3339)
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_CategoryMustMatchKind() {
	draft := suite.expenseDraft()
	draft.Kind = domain.KindIncome // income draft with an expense category
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_FreePlanTransactionQuota() {
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)
	suite.mockRepo.On("CountActiveTransactions", mock.Anything, "user-1").Return(int64(100), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), suite.expenseDraft())

	suite.assertStatus(err, 429)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_FreePlanTagLimit() {
	draft := suite.expenseDraft()
	draft.Tags = []string{"a", "b", "c", "d", "e", "f"}
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)
	suite.mockRepo.On("CountActiveTransactions", mock.Anything, "user-1").Return(int64(0), nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_UnlimitedPlanSkipsQuotaCount() {
	user := suite.activeUser()
	user.Plan = domain.PlanUnlimited
	draft := suite.expenseDraft()
	draft.Tags = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)
	suite.mockRepo.On("FindDuplicateTransaction", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), user, draft)

	suite.NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountActiveTransactions", mock.Anything, mock.Anything)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateCreate_DuplicateTransaction() {
	suite.mockRepo.On("CountTransactionsOnDay", mock.Anything, "user-1", mock.Anything).Return(int64(0), nil)
	suite.mockRepo.On("CountActiveTransactions", mock.Anything, "user-1").Return(int64(0), nil)
	suite.mockRepo.On("FindDuplicateTransaction", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Transaction{TransactionID: "existing"}, nil)

	err := suite.evaluator.EvaluateCreate(context.Background(), suite.activeUser(), suite.expenseDraft())

	suite.assertStatus(err, 409)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateUpdate_SkipsCountingChecks() {
	// No repo expectations: updates must never hit the store-backed counts,
	// which the record being replaced already counts toward.
	err := suite.evaluator.EvaluateUpdate(context.Background(), suite.activeUser(), suite.expenseDraft())

	suite.NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountTransactionsOnDay", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountActiveTransactions", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDuplicateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateUpdate_AmountPolicyCeilingStillApplies() {
	draft := suite.expenseDraft()
	draft.Amount = json.Number("999999999.99") // passes the schema bound

	err := suite.evaluator.EvaluateUpdate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateUpdate_InactiveAccountRejected() {
	user := suite.activeUser()
	user.IsActive = false

	err := suite.evaluator.EvaluateUpdate(context.Background(), user, suite.expenseDraft())

	suite.assertStatus(err, 403)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateUpdate_CategoryMustMatchKind() {
	draft := suite.expenseDraft()
	draft.Kind = domain.KindIncome

	err := suite.evaluator.EvaluateUpdate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func (suite *RuleEvaluatorTestSuite) TestEvaluateUpdate_TagLimitStillApplies() {
	draft := suite.expenseDraft()
	draft.Tags = []string{"a", "b", "c", "d", "e", "f"}

	err := suite.evaluator.EvaluateUpdate(context.Background(), suite.activeUser(), draft)

	suite.assertStatus(err, 400)
}

func TestRuleEvaluatorTestSuite(t *testing.T) {
	suite.Run(t, new(RuleEvaluatorTestSuite))
}
