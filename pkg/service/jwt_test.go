package service

import (
	"testing"
	"time"

	apperrors "erp-system/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens(7, 2)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, uint64(2), claims.RoleID)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	verifier := NewJWTService("other", time.Hour, time.Hour, zap.NewNop())

	access, _, err := issuer.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: 1})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	assert.Error(t, err)
}

func TestTTLGetters(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())
	assert.Equal(t, time.Minute, svc.GetAccessTokenTTL())
	assert.Equal(t, time.Hour, svc.GetRefreshTokenTTL())
}
