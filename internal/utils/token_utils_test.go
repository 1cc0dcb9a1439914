package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "fintrack-backend")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "fintrack-backend", claims.Issuer)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "fintrack-backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", -time.Minute, "fintrack-backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}
