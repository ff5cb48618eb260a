package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "test.app",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(42, "janedoe", "alumni")
	require.NoError(t, err)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "janedoe", claims.Username)
	assert.Equal(t, "alumni", claims.Role)
	assert.Equal(t, "test.app", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(1, "user", "alumni")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateToken(1, "user", "alumni")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", TokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
