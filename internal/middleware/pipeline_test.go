package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/core/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

const testJWTSecret = "pipeline-test-secret"

// --- Mock RuleEvaluator ---
type MockRuleEvaluator struct {
	mock.Mock
}

func (m *MockRuleEvaluator) EvaluateCreate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error {
	args := m.Called(ctx, principal, draft)
	return args.Error(0)
}

func (m *MockRuleEvaluator) EvaluateUpdate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error {
	args := m.Called(ctx, principal, draft)
	return args.Error(0)
}

var _ portssvc.RuleEvaluator = (*MockRuleEvaluator)(nil)

// --- Mock UserSvcFacade (only GetUserByID matters for the pipeline) ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetOwnedProfile(ctx context.Context, res domain.UserProfileResource, principalID string) (*domain.User, error) {
	args := m.Called(ctx, res, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error) {
	args := m.Called(ctx, providerUserID, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) TouchLastLogin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type PipelineTestSuite struct {
	suite.Suite
	mockRules *MockRuleEvaluator
	mockUsers *MockUserService
	token     string
}

func (suite *PipelineTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockRules = new(MockRuleEvaluator)
	suite.mockUsers = new(MockUserService)

	token, err := utils.GenerateJWT("user-1", testJWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *PipelineTestSuite) router(maxBodyBytes int64) *gin.Engine {
	return suite.routerWithRules(maxBodyBytes, suite.mockRules)
}

func (suite *PipelineTestSuite) routerWithRules(maxBodyBytes int64, rules portssvc.RuleEvaluator) *gin.Engine {
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.Use(middleware.StructuredLoggingMiddleware(logger))

	pipeline := middleware.NewDraftPipeline(maxBodyBytes, validation.New(), rules)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret, suite.mockUsers))
	v1.POST("/expenses", append(pipeline.ForCreate(domain.KindExpense), func(c *gin.Context) {
		draft, ok := middleware.GetDraft(c)
		suite.Require().True(ok)
		c.JSON(http.StatusCreated, gin.H{"description": draft.Description})
	})...)
	v1.PUT("/expenses/:id", append(pipeline.ForUpdate(domain.KindExpense), func(c *gin.Context) {
		draft, ok := middleware.GetDraft(c)
		suite.Require().True(ok)
		c.JSON(http.StatusOK, gin.H{"description": draft.Description})
	})...)
	return r
}

func (suite *PipelineTestSuite) allowAuth() {
	suite.mockUsers.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", Plan: domain.PlanFree, IsActive: true}, nil)
}

func (suite *PipelineTestSuite) do(r *gin.Engine, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() string {
	return `{"description":"Groceries","amount":45.50,"category":"alimentacion","date":"` +
		time.Now().UTC().Format("2006-01-02") + `","paymentMethod":"efectivo","tags":["food"]}`
}

func (suite *PipelineTestSuite) TestCreatePassesAllStages() {
	suite.allowAuth()
	suite.mockRules.On("EvaluateCreate", mock.Anything, mock.Anything, mock.MatchedBy(func(draft *dto.TransactionDraft) bool {
		return draft.Kind == domain.KindExpense && draft.Description == "Groceries"
	})).Return(nil).Once()

	w := suite.do(suite.router(1<<20), validBody())

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockRules.AssertExpectations(suite.T())
}

func (suite *PipelineTestSuite) TestMissingTokenStopsBeforePipeline() {
	w := suite.do(suite.router(1<<20), validBody(), func(req *http.Request) {
		req.Header.Del("Authorization")
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRules.AssertNotCalled(suite.T(), "EvaluateCreate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PipelineTestSuite) TestUnsupportedContentType() {
	suite.allowAuth()

	w := suite.do(suite.router(1<<20), validBody(), func(req *http.Request) {
		req.Header.Set("Content-Type", "text/plain")
	})

	suite.Equal(http.StatusUnsupportedMediaType, w.Code)
}

func (suite *PipelineTestSuite) TestOversizedBody() {
	suite.allowAuth()

	w := suite.do(suite.router(16), validBody())

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *PipelineTestSuite) TestMalformedJSON() {
	suite.allowAuth()

	w := suite.do(suite.router(1<<20), `{"description":`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PipelineTestSuite) TestInjectionInBodyIsRejectedWithoutEcho() {
	suite.allowAuth()
	body := `{"description":"<script>alert(1)</script>","amount":45.50,"category":"alimentacion","date":"2025-06-10","paymentMethod":"efectivo"}`

	w := suite.do(suite.router(1<<20), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	// The response must never reflect the offending payload.
	suite.NotContains(w.Body.String(), "<script>")
	suite.NotContains(w.Body.String(), "alert(1)")
	suite.mockRules.AssertNotCalled(suite.T(), "EvaluateCreate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PipelineTestSuite) TestInjectionInQueryIsRejected() {
	suite.allowAuth()

	w := suite.do(suite.router(1<<20), validBody(), func(req *http.Request) {
		req.URL.RawQuery = "note=javascript%3Aalert(1)"
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PipelineTestSuite) TestValidationErrorsAccumulate() {
	suite.allowAuth()
	body := `{"amount":10.123,"category":"alimentacion","date":"` +
		time.Now().UTC().Format("2006-01-02") + `","paymentMethod":"efectivo"}`

	w := suite.do(suite.router(1<<20), body)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Len(resp.Error.ValidationErrors, 2) // missing description and excess decimals
	suite.mockRules.AssertNotCalled(suite.T(), "EvaluateCreate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PipelineTestSuite) TestSanitizerRunsBeforeValidation() {
	suite.allowAuth()
	var captured *dto.TransactionDraft
	suite.mockRules.On("EvaluateCreate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(*dto.TransactionDraft)
		}).Return(nil).Once()

	body := `{"description":"  Groceries & more  ","amount":"45.50","category":" alimentacion ","date":"` +
		time.Now().UTC().Format("2006-01-02") + `","paymentMethod":"efectivo","tags":[" Food ","FOOD"]}`
	w := suite.do(suite.router(1<<20), body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Require().NotNil(captured)
	suite.Equal("Groceries & more", captured.Description)
	suite.Equal("alimentacion", captured.Category)
	suite.Equal([]string{"food"}, captured.Tags)
	suite.Equal("45.50", captured.Amount.String())
}

func (suite *PipelineTestSuite) TestBusinessRuleRejectionUsesRuleStatus() {
	suite.allowAuth()
	suite.mockRules.On("EvaluateCreate", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewDailyLimitReached()).Once()

	w := suite.do(suite.router(1<<20), validBody())

	suite.Equal(http.StatusTooManyRequests, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Error.Message)
}

func (suite *PipelineTestSuite) doPut(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/expenses/txn-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *PipelineTestSuite) TestUpdateRunsUpdateRules() {
	suite.allowAuth()
	suite.mockRules.On("EvaluateUpdate", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	w := suite.doPut(suite.router(1<<20), validBody())

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRules.AssertExpectations(suite.T())
	suite.mockRules.AssertNotCalled(suite.T(), "EvaluateCreate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PipelineTestSuite) TestUpdateEnforcesAmountCeiling() {
	suite.allowAuth()
	// Real evaluator: the schema bound admits 999999999.99, the policy
	// ceiling must still reject it on the update path.
	rules := services.NewRuleEvaluator(nil, config.BusinessRules{
		DailyTransactionLimit: 50,
		MaxTransactionAmount:  1_000_000,
		InactivityThreshold:   90 * 24 * time.Hour,
		FutureDateHorizon:     30 * 24 * time.Hour,
	})

	body := `{"description":"Groceries","amount":999999999.99,"category":"alimentacion","date":"` +
		time.Now().UTC().Format("2006-01-02") + `","paymentMethod":"efectivo"}`
	w := suite.doPut(suite.routerWithRules(1<<20, rules), body)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Error.Message)
}

func (suite *PipelineTestSuite) TestUpdateRejectionStopsHandler() {
	suite.allowAuth()
	suite.mockRules.On("EvaluateUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewAmountPolicyExceeded()).Once()

	w := suite.doPut(suite.router(1<<20), validBody())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.NotContains(w.Body.String(), "Groceries")
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}
