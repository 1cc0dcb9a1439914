package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
)

// authHandler handles registration and login.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleAuthSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:   services.User,
		tokenService:  services.Token,
		googleService: services.GoogleAuth,
	}
}

// registerAuthRoutes sets up the public authentication routes. Credential
// endpoints get a tighter per-IP rate limit than the rest of the API,
// rejected through the same envelope the global limiter uses.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services)

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		slog.Warn("Invalid auth rate limit, falling back to default",
			slog.String("value", cfg.AuthRateLimit), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	limitMiddleware := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.register)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/google", limitMiddleware, h.googleLogin)
		auth.POST("/google/exchange-code", limitMiddleware, h.googleExchangeCode)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a new local account and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User registration info"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// googleLogin godoc
// @Summary Google sign-in
// @Description Verifies a Google ID token, creating the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	identity, err := h.googleService.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.loginGoogleIdentity(c, identity)
}

// ExchangeCodeRequest carries the authorization code from the frontend
// redirect flow.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// googleExchangeCode godoc
// @Summary Exchange Google authorization code
// @Description Exchanges an authorization code for Google tokens and signs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *authHandler) googleExchangeCode(c *gin.Context) {
	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	identity, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.loginGoogleIdentity(c, identity)
}

func (h *authHandler) loginGoogleIdentity(c *gin.Context, identity *portssvc.GoogleIdentity) {
	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), identity.ProviderUserID, identity.Email, identity.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *authHandler) respondWithToken(c *gin.Context, status int, user *domain.User) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to generate token", ""))
		return
	}

	if err := h.userService.TouchLastLogin(c.Request.Context(), user.UserID); err != nil {
		logger.Warn("Failed to record last login", slog.String("error", err.Error()))
	}

	c.JSON(status, dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.ToUserResponse(user),
	})
}
