package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileEventType string

const (
	ProfileEventUpdated        ProfileEventType = "profile.updated"
	ProfileEventResumeUploaded ProfileEventType = "resume.uploaded"
)

type ProfileEvent struct {
	EventType  ProfileEventType `json:"event_type"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	ProfileID  uuid.UUID        `json:"profile_id,omitempty"`
	ResumeKey  string           `json:"resume_key,omitempty"`
	ResumeURL  string           `json:"resume_url,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher is best effort: callers log failures and carry on.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, event ProfileEvent) error
}

type NopPublisher struct{}

func (NopPublisher) PublishProfileEvent(context.Context, ProfileEvent) error { return nil }
