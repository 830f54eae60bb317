package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/talent-profile/internal/testutil"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/auth"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

func setup(t *testing.T) (*auth.JWTService, *testutil.SessionStore, *TokenResolver, *SignOutUseCase) {
	t.Helper()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	store := testutil.NewSessionStore()
	resolver := NewTokenResolver(jwtSvc, store, logger.NewNopLogger())
	return jwtSvc, store, resolver, NewSignOutUseCase(resolver, store, logger.NewNopLogger())
}

func TestTokenResolver_Resolve(t *testing.T) {
	jwtSvc, _, resolver, _ := setup(t)
	owner := uuid.New()
	token, err := jwtSvc.GenerateToken(owner, "a@b.c")
	require.NoError(t, err)

	id, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, owner, id.ID)

	_, err = resolver.Resolve(context.Background(), "garbage")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestSignOut_RevokesToken(t *testing.T) {
	jwtSvc, _, resolver, signOut := setup(t)
	token, err := jwtSvc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	require.NoError(t, signOut.Execute(context.Background(), SignOutInput{Token: token}))

	_, err = resolver.Resolve(context.Background(), token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	err = signOut.Execute(context.Background(), SignOutInput{Token: token})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized), "second sign-out sees a dead session")
}

func TestSignOut_StoreFailure(t *testing.T) {
	jwtSvc, store, resolver, _ := setup(t)
	token, err := jwtSvc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	store.Err = testutil.ErrBackend
	_, err = resolver.Resolve(context.Background(), token)
	assert.True(t, errors.Is(err, apperror.ErrInternal))
}
