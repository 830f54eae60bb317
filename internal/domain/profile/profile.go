package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	LevelIntern ExperienceLevel = "intern"
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

var experienceLevels = []ExperienceLevel{LevelIntern, LevelEntry, LevelMid, LevelSenior}

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for _, l := range experienceLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

func (l ExperienceLevel) Valid() bool {
	_, err := ParseExperienceLevel(string(l))
	return err == nil
}

// Profile is the single row a user identity owns.
type Profile struct {
	ID                uuid.UUID        `json:"id"`
	OwnerID           uuid.UUID        `json:"owner_id"`
	ResumeURL         *string          `json:"resume_url"`
	Skills            []string         `json:"skills"`
	Interests         []string         `json:"interests"`
	ExperienceLevel   *ExperienceLevel `json:"experience_level"`
	PreferredLocation *string          `json:"preferred_location"`
	Bio               *string          `json:"bio"`
	GithubURL         *string          `json:"github_url"`
	LinkedinURL       *string          `json:"linkedin_url"`
	PortfolioURL      *string          `json:"portfolio_url"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Fields holds everything a caller may write. Server-assigned columns
// (id, owner_id, updated_at) are deliberately absent.
type Fields struct {
	ResumeURL         *string
	Skills            []string
	Interests         []string
	ExperienceLevel   *ExperienceLevel
	PreferredLocation *string
	Bio               *string
	GithubURL         *string
	LinkedinURL       *string
	PortfolioURL      *string
}

func (p *Profile) Fields() Fields {
	return Fields{
		ResumeURL:         p.ResumeURL,
		Skills:            p.Skills,
		Interests:         p.Interests,
		ExperienceLevel:   p.ExperienceLevel,
		PreferredLocation: p.PreferredLocation,
		Bio:               p.Bio,
		GithubURL:         p.GithubURL,
		LinkedinURL:       p.LinkedinURL,
		PortfolioURL:      p.PortfolioURL,
	}
}

type Repository interface {
	// GetByOwnerID returns (nil, nil) when the owner has no profile yet.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	// Upsert inserts or updates the owner's row in one statement and returns
	// the row as stored.
	Upsert(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Profile, error)
}

// SplitList turns comma separated input into an ordered list. Segments are
// trimmed and empty ones dropped; duplicates are kept. The result is never nil.
func SplitList(text string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
