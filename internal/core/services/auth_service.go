package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
)

// tokenService issues JWT access tokens. Verification lives in the auth
// middleware; this service only signs.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// googleAuthService validates Google ID tokens against the configured
// OAuth client ID and exchanges authorization codes from the frontend
// redirect flow.
type googleAuthService struct {
	cfg   *config.Config
	oauth *oauth2.Config
}

// NewGoogleAuthService creates a new Google auth service.
func NewGoogleAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

func (s *googleAuthService) VerifyIDToken(ctx context.Context, rawToken string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	payload, err := idtoken.Validate(ctx, rawToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	identity := &portssvc.GoogleIdentity{ProviderUserID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return identity, nil
}

// ExchangeCode trades the authorization code from the frontend redirect for
// Google tokens. The identity comes from the ID token inside the response,
// which is still validated like a directly-submitted one.
func (s *googleAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.VerifyIDToken(ctx, rawIDToken)
}
