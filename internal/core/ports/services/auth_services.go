package services

import (
	"context"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleIdentity is the verified subset of a Google ID token the app needs.
type GoogleIdentity struct {
	ProviderUserID string
	Email          string
	Name           string
}

// GoogleAuthSvcFacade verifies Google sign-in credentials.
type GoogleAuthSvcFacade interface {
	// VerifyIDToken validates a Google ID token and extracts the identity.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)

	// ExchangeCode trades an authorization code for Google tokens and
	// validates the ID token found in the response.
	ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error)
}
