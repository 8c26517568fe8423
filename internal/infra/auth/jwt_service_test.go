package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKey{
			Access:  "test-access-secret",
			Refresh: "test-refresh-secret",
		},
	}
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestGenerateTokens_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	access, refresh, err := svc.GenerateTokens(userID, "gold")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, "gold", accessClaims.Status)
	assert.Equal(t, "access", accessClaims.Type)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Status)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	other, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{Access: "another", Refresh: "another"},
	})
	require.NoError(t, err)

	access, _, err := svc.GenerateTokens(uuid.New(), "silver")
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	h1 := svc.HashToken("some-refresh-token")
	h2 := svc.HashToken("some-refresh-token")
	h3 := svc.HashToken("another-token")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestGetRefreshTokenDuration(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	assert.Equal(t, time.Hour*24*7, svc.GetRefreshTokenDuration())
}
