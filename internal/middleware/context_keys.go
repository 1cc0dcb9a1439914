package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	principalKey = contextKey("principal")
	rawBodyKey   = contextKey("rawBody")
	payloadKey   = contextKey("payload")
	draftKey     = contextKey("draft")
)

// GetPrincipal retrieves the authenticated user loaded by the auth
// middleware. The bool is false on routes without authentication.
func GetPrincipal(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(principalKey).(*domain.User)
	return user, ok
}

func setPrincipal(c *gin.Context, user *domain.User) {
	ctx := context.WithValue(c.Request.Context(), principalKey, user)
	c.Request = c.Request.WithContext(ctx)
}

// GetRawBody retrieves the request body cached by the body guard.
func GetRawBody(c *gin.Context) ([]byte, bool) {
	body, ok := c.Request.Context().Value(rawBodyKey).([]byte)
	return body, ok
}

func setRawBody(c *gin.Context, body []byte) {
	ctx := context.WithValue(c.Request.Context(), rawBodyKey, body)
	c.Request = c.Request.WithContext(ctx)
}

// GetPayload retrieves the decoded, sanitized request payload.
func GetPayload(c *gin.Context) (map[string]any, bool) {
	payload, ok := c.Request.Context().Value(payloadKey).(map[string]any)
	return payload, ok
}

func setPayload(c *gin.Context, payload map[string]any) {
	ctx := context.WithValue(c.Request.Context(), payloadKey, payload)
	c.Request = c.Request.WithContext(ctx)
}

// GetDraft retrieves the validated transaction draft. Handlers behind the
// full pipeline can rely on it being present and fully checked.
func GetDraft(c *gin.Context) (*dto.TransactionDraft, bool) {
	draft, ok := c.Request.Context().Value(draftKey).(*dto.TransactionDraft)
	return draft, ok
}

func setDraft(c *gin.Context, draft *dto.TransactionDraft) {
	ctx := context.WithValue(c.Request.Context(), draftKey, draft)
	c.Request = c.Request.WithContext(ctx)
}
