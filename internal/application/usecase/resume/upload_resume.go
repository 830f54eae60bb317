package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

var tracer = otel.Tracer("resume_usecase")

type UploadResumeUseCase struct {
	uploader  service.Uploader
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewUploadResumeUseCase(u service.Uploader, p service.EventPublisher, log logger.Logger) *UploadResumeUseCase {
	return &UploadResumeUseCase{uploader: u, publisher: p, logger: log, now: time.Now}
}

// WithClock replaces the clock used to derive storage keys.
func (uc *UploadResumeUseCase) WithClock(now func() time.Time) *UploadResumeUseCase {
	uc.now = now
	return uc
}

type UploadResumeInput struct {
	OwnerID uuid.UUID
	File    resume.File
}

type UploadResumeOutput struct {
	Key string
	URL string
}

func (uc *UploadResumeUseCase) Execute(ctx context.Context, input UploadResumeInput) (*UploadResumeOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadResume")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewUnauthorized("an owner is required to upload a resume", nil)
	}
	if err := resume.Validate(input.File); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	key := resume.ObjectKey(input.OwnerID, uc.now(), input.File.Name)
	span.SetAttributes(attribute.String("resume.key", key), attribute.Int64("resume.size", input.File.Size))

	url, err := uc.uploader.Upload(ctx, key, input.File.Content, input.File.Size, input.File.ContentType)
	if errors.Is(err, service.ErrObjectExists) {
		span.RecordError(err)
		return nil, apperror.NewConflict("resume", "key", key)
	}
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to upload resume", err, zap.String("owner_id", input.OwnerID.String()), zap.String("key", key))
		return nil, apperror.NewInternal("failed to upload resume", err)
	}

	event := service.ProfileEvent{
		EventType:  service.ProfileEventResumeUploaded,
		OwnerID:    input.OwnerID,
		ResumeKey:  key,
		ResumeURL:  url,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.publisher.PublishProfileEvent(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish resume event", zap.String("key", key), zap.Error(err))
	}

	return &UploadResumeOutput{Key: key, URL: url}, nil
}
