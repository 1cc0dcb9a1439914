package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
)

// AuthMiddleware validates the bearer token and loads the user it names.
// The loaded user becomes the request's principal; rules further down the
// pipeline judge account state, this middleware only establishes identity.
func AuthMiddleware(jwtSecret string, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authorization header format must be Bearer {token}", ""))
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(msg, ""))
			return
		}
		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token claims", ""))
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Warn("Token subject does not resolve to a user", slog.String("user_id", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token", ""))
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, enrichedLogger)
		ctx = context.WithValue(ctx, principalKey, user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
