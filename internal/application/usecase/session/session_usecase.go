package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/auth"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

var tracer = otel.Tracer("session_usecase")

type TokenValidator interface {
	ValidateToken(token string) (*auth.CustomClaims, error)
}

// TokenResolver resolves bearer tokens issued by the identity provider and
// refuses those revoked by sign-out.
type TokenResolver struct {
	validator TokenValidator
	store     identity.SessionStore
	logger    logger.Logger
}

func NewTokenResolver(v TokenValidator, store identity.SessionStore, log logger.Logger) *TokenResolver {
	return &TokenResolver{validator: v, store: store, logger: log}
}

func (r *TokenResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	claims, err := r.validator.ValidateToken(token)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewUnauthorized("invalid or expired session, please sign in again", err)
	}

	id := claims.Identity()
	if id.TokenID != "" {
		revoked, err := r.store.IsRevoked(ctx, id.TokenID)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to check session", err)
		}
		if revoked {
			return nil, apperror.NewUnauthorized("session has been signed out", nil)
		}
	}
	return id, nil
}

type SignOutUseCase struct {
	resolver identity.Resolver
	store    identity.SessionStore
	logger   logger.Logger
}

func NewSignOutUseCase(resolver identity.Resolver, store identity.SessionStore, log logger.Logger) *SignOutUseCase {
	return &SignOutUseCase{resolver: resolver, store: store, logger: log}
}

type SignOutInput struct {
	Token string
}

func (uc *SignOutUseCase) Execute(ctx context.Context, input SignOutInput) error {
	ctx, span := tracer.Start(ctx, "SignOut")
	defer span.End()

	id, err := uc.resolver.Resolve(ctx, input.Token)
	if err != nil {
		return err
	}
	if id.TokenID == "" {
		return apperror.NewInvalidInput("session token carries no id and cannot be revoked", nil)
	}

	until := id.ExpiresAt
	if until.IsZero() {
		until = time.Now().Add(24 * time.Hour)
	}
	if err := uc.store.Revoke(ctx, id.TokenID, until); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to sign out", err)
	}

	uc.logger.Info("Session signed out", zap.String("owner_id", id.ID.String()), zap.String("token_id", id.TokenID))
	return nil
}
