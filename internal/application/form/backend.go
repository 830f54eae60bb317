package form

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/application/usecase/profile"
	resumeUC "github.com/khoahotran/talent-profile/internal/application/usecase/resume"
	"github.com/khoahotran/talent-profile/internal/application/usecase/session"
	"github.com/khoahotran/talent-profile/internal/domain/identity"
	domain "github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
)

// Backend is what a Session needs from the outside world. Every method makes
// at most one round trip.
type Backend interface {
	LoadCurrent(ctx context.Context, token string) (*identity.Identity, *domain.Profile, error)
	UploadResume(ctx context.Context, ownerID uuid.UUID, file resume.File) (key, url string, err error)
	SaveProfile(ctx context.Context, id *identity.Identity, fields domain.Fields) (*domain.Profile, error)
	DiscardResume(ctx context.Context, key string) error
	SignOut(ctx context.Context, token string) error
}

type localBackend struct {
	profiles *profile.ProfileUseCase
	resumes  *resumeUC.UploadResumeUseCase
	signOut  *session.SignOutUseCase
	uploader service.Uploader
}

// NewLocalBackend runs a Session directly against the use cases, in process.
func NewLocalBackend(
	profiles *profile.ProfileUseCase,
	resumes *resumeUC.UploadResumeUseCase,
	signOut *session.SignOutUseCase,
	uploader service.Uploader,
) Backend {
	return &localBackend{profiles: profiles, resumes: resumes, signOut: signOut, uploader: uploader}
}

func (b *localBackend) LoadCurrent(ctx context.Context, token string) (*identity.Identity, *domain.Profile, error) {
	out, err := b.profiles.ExecuteLoadCurrent(ctx, profile.LoadCurrentInput{Token: token})
	if err != nil {
		return nil, nil, err
	}
	return out.Identity, out.Profile, nil
}

func (b *localBackend) UploadResume(ctx context.Context, ownerID uuid.UUID, file resume.File) (string, string, error) {
	out, err := b.resumes.Execute(ctx, resumeUC.UploadResumeInput{OwnerID: ownerID, File: file})
	if err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

func (b *localBackend) SaveProfile(ctx context.Context, id *identity.Identity, fields domain.Fields) (*domain.Profile, error) {
	out, err := b.profiles.ExecuteSaveProfile(ctx, profile.SaveProfileInput{Identity: id, Fields: fields})
	if err != nil {
		return nil, err
	}
	return out.Profile, nil
}

func (b *localBackend) DiscardResume(ctx context.Context, key string) error {
	return b.uploader.Delete(ctx, key)
}

func (b *localBackend) SignOut(ctx context.Context, token string) error {
	return b.signOut.Execute(ctx, session.SignOutInput{Token: token})
}
