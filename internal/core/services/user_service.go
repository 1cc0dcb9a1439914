package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
)

// userService provides user registration, authentication and profile operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempted with existing email")
		return nil, apperrors.ErrDuplicate
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		Plan:         domain.PlanFree,
		Preferences:  domain.Preferences{Currency: "EUR", Locale: "es"},
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	now := time.Now()
	created := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          strings.ToLower(email),
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: providerUserID,
		Plan:           domain.PlanFree,
		Preferences:    domain.Preferences{Currency: "EUR", Locale: "es"},
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to save google user: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Google user created", slog.String("user_id", created.UserID))
	return &created, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Currency != nil {
		user.Preferences.Currency = *req.Currency
	}
	if req.Locale != nil {
		user.Preferences.Locale = *req.Locale
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) TouchLastLogin(ctx context.Context, userID string) error {
	return s.userRepo.UpdateLastLogin(ctx, userID, time.Now())
}

func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// GetOwnedProfile resolves a profile resource for the principal. A profile
// that belongs to someone else reads as absent, never as forbidden, so the
// response does not leak which user IDs exist.
func (s *userService) GetOwnedProfile(ctx context.Context, res domain.UserProfileResource, principalID string) (*domain.User, error) {
	if res.UserID != principalID {
		return nil, apperrors.ErrNotFound
	}
	return s.userRepo.FindUserByID(ctx, res.UserID)
}
