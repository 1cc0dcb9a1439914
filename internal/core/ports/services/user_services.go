package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetOwnedProfile resolves a profile resource for the principal,
	// reporting other users' profiles as not found.
	GetOwnedProfile(ctx context.Context, res domain.UserProfileResource, principalID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a new local user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a Google identity to a user, creating
	// the account on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error)

	// UpdateUser updates a user's own profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// TouchLastLogin records a successful authentication.
	TouchLastLogin(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeactivateUser marks a user as deleted (soft delete).
	DeactivateUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserLifecycleSvc
}
