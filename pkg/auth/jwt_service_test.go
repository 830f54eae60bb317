package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	owner := uuid.New()

	token, err := svc.GenerateToken(owner, "dev@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, claims.OwnerID)

	id := claims.Identity()
	assert.Equal(t, owner, id.ID)
	assert.Equal(t, "dev@example.com", id.Email)
	assert.NotEmpty(t, id.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	owner := uuid.New()

	other, err := NewJWTService("other", time.Hour).GenerateToken(owner, "")
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.Error(t, err, "wrong secret")

	expired, err := NewJWTService("secret", -time.Minute).GenerateToken(owner, "")
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err, "expired")

	noOwner := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := noOwner.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err, "no owner")

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
