package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	resolver    identity.Resolver
	uploader    service.Uploader
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(
	repo profile.Repository,
	resolver identity.Resolver,
	uploader service.Uploader,
	publisher service.EventPublisher,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		resolver:    resolver,
		uploader:    uploader,
		publisher:   publisher,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	// Profile is nil when the owner has not saved one yet.
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type SaveProfileInput struct {
	Identity *identity.Identity
	Fields   profile.Fields
}

type SaveProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteSaveProfile(ctx context.Context, input SaveProfileInput) (*SaveProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "SaveProfile")
	defer span.End()

	if input.Identity == nil || input.Identity.ID == uuid.Nil {
		return nil, apperror.NewUnauthorized("you must be signed in to save a profile", nil)
	}
	ownerID := input.Identity.ID
	span.SetAttributes(attribute.String("owner_id", ownerID.String()))

	fields := input.Fields
	if fields.ExperienceLevel != nil && !fields.ExperienceLevel.Valid() {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("experience level must be one of intern, entry, mid, senior (got %q)", *fields.ExperienceLevel), nil)
	}
	if fields.ResumeURL != nil {
		key, ok := uc.uploader.KeyForURL(*fields.ResumeURL)
		if !ok || !resume.OwnsKey(ownerID, key) {
			return nil, apperror.NewPermissionDenied("resume does not belong to the current user")
		}
	}
	if fields.Skills == nil {
		fields.Skills = []string{}
	}
	if fields.Interests == nil {
		fields.Interests = []string{}
	}

	p, err := uc.profileRepo.Upsert(ctx, ownerID, fields)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save profile failed: %w", err)
	}

	event := service.ProfileEvent{
		EventType:  service.ProfileEventUpdated,
		OwnerID:    ownerID,
		ProfileID:  p.ID,
		OccurredAt: time.Now().UTC(),
	}
	if p.ResumeURL != nil {
		event.ResumeURL = *p.ResumeURL
	}
	if err := uc.publisher.PublishProfileEvent(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.String("owner_id", ownerID.String()), zap.Error(err))
	}

	return &SaveProfileOutput{Profile: p}, nil
}

type LoadCurrentInput struct {
	Token string
}

type LoadCurrentOutput struct {
	Identity *identity.Identity
	Profile  *profile.Profile
}

// ExecuteLoadCurrent resolves the caller and then loads their profile. Errors
// from either step are returned without further wrapping.
func (uc *ProfileUseCase) ExecuteLoadCurrent(ctx context.Context, input LoadCurrentInput) (*LoadCurrentOutput, error) {
	ctx, span := tracer.Start(ctx, "LoadCurrent")
	defer span.End()

	id, err := uc.ResolveIdentity(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	out, err := uc.ExecuteGetProfile(ctx, GetProfileInput{OwnerID: id.ID})
	if err != nil {
		return nil, err
	}
	return &LoadCurrentOutput{Identity: id, Profile: out.Profile}, nil
}

// ResolveIdentity maps a bearer token to the caller, or an unauthorized error.
func (uc *ProfileUseCase) ResolveIdentity(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, apperror.NewUnauthorized("no active session, please sign in", nil)
	}
	id, err := uc.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, apperror.NewUnauthorized("no active session, please sign in", nil)
	}
	return id, nil
}
