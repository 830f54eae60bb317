package http

import (
	"time"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/internal/domain/profile"
)

// Profile DTOs

type ProfileDTO struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	ResumeURL         *string   `json:"resume_url"`
	Skills            []string  `json:"skills"`
	Interests         []string  `json:"interests"`
	ExperienceLevel   *string   `json:"experience_level"`
	PreferredLocation *string   `json:"preferred_location"`
	Bio               *string   `json:"bio"`
	GithubURL         *string   `json:"github_url"`
	LinkedinURL       *string   `json:"linkedin_url"`
	PortfolioURL      *string   `json:"portfolio_url"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type IdentityDTO struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type CurrentProfileResponse struct {
	Identity IdentityDTO `json:"identity"`
	Profile  *ProfileDTO `json:"profile"`
}

type SaveProfileRequest struct {
	ResumeURL         *string  `json:"resume_url"`
	Skills            []string `json:"skills"`
	Interests         []string `json:"interests"`
	ExperienceLevel   *string  `json:"experience_level" binding:"omitempty,oneof=intern entry mid senior"`
	PreferredLocation *string  `json:"preferred_location"`
	Bio               *string  `json:"bio"`
	GithubURL         *string  `json:"github_url"`
	LinkedinURL       *string  `json:"linkedin_url"`
	PortfolioURL      *string  `json:"portfolio_url"`
}

// UploadResumeResponse mirrors the upload contract: a flag plus either a URL
// or an error.
type UploadResumeResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ToProfileDTO(p *profile.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	dto := &ProfileDTO{
		ID:                p.ID.String(),
		OwnerID:           p.OwnerID.String(),
		ResumeURL:         p.ResumeURL,
		Skills:            p.Skills,
		Interests:         p.Interests,
		PreferredLocation: p.PreferredLocation,
		Bio:               p.Bio,
		GithubURL:         p.GithubURL,
		LinkedinURL:       p.LinkedinURL,
		PortfolioURL:      p.PortfolioURL,
		UpdatedAt:         p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}
	if dto.Interests == nil {
		dto.Interests = []string{}
	}
	if p.ExperienceLevel != nil {
		lvl := string(*p.ExperienceLevel)
		dto.ExperienceLevel = &lvl
	}
	return dto
}

func ToIdentityDTO(id *identity.Identity) IdentityDTO {
	return IdentityDTO{ID: id.ID.String(), Email: id.Email}
}

func (req *SaveProfileRequest) ToDomainFields() profile.Fields {
	f := profile.Fields{
		ResumeURL:         req.ResumeURL,
		Skills:            req.Skills,
		Interests:         req.Interests,
		PreferredLocation: req.PreferredLocation,
		Bio:               req.Bio,
		GithubURL:         req.GithubURL,
		LinkedinURL:       req.LinkedinURL,
		PortfolioURL:      req.PortfolioURL,
	}
	if f.Skills == nil {
		f.Skills = []string{}
	}
	if f.Interests == nil {
		f.Interests = []string{}
	}
	if req.ExperienceLevel != nil {
		lvl := profile.ExperienceLevel(*req.ExperienceLevel)
		f.ExperienceLevel = &lvl
	}
	return f
}
