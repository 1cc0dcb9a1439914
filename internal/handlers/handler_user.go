package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// userHandler handles HTTP requests for user profiles.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("/:id", h.getUser)
		users.PUT("/me", h.updateMe)
		users.DELETE("/me", h.deleteMe)
	}
}

// getMe godoc
// @Summary Get own profile
// @Description Returns the authenticated user's profile.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(principal))
}

// getUser godoc
// @Summary Get a user profile
// @Description Returns a profile by ID. Profiles other than the caller's own read as not found.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	res := domain.UserProfileResource{UserID: c.Param("id")}
	user, err := h.userService.GetOwnedProfile(c.Request.Context(), res, principal.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update own profile
// @Description Updates the authenticated user's name or preferences.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), principal.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteMe godoc
// @Summary Deactivate own account
// @Description Soft-deletes the authenticated user's account.
// @Tags users
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), principal.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
