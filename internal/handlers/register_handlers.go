package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fintrack-io/fintrack_backend/cmd/docs"
	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
	"github.com/fintrack-io/fintrack_backend/internal/validation"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	registerAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, services.User))

	pipeline := middleware.NewDraftPipeline(cfg.MaxBodyBytes, validation.New(), services.Rules)

	registerUserRoutes(v1, services.User)
	registerTransactionRoutes(v1, pipeline, services.Transaction)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// respondServiceError maps service-layer errors to the error envelope.
// Pipeline APIErrors keep their own status; sentinel errors map to the
// conventional codes.
func respondServiceError(c *gin.Context, err error) {
	if apiErr, ok := apperrors.AsAPIError(err); ok {
		c.JSON(apiErr.Status, dto.FromAPIError(apiErr))
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(404, dto.NewErrorResponse("Resource not found", ""))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(409, dto.NewErrorResponse("Resource already exists", ""))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(401, dto.NewErrorResponse("Invalid credentials", ""))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(403, dto.NewErrorResponse("Access denied", ""))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(400, dto.NewErrorResponse("Invalid request parameters", ""))
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", "error", err.Error())
		c.JSON(500, dto.NewErrorResponse("Internal server error", ""))
	}
}
