package form

import (
	"strings"

	domain "github.com/khoahotran/talent-profile/internal/domain/profile"
)

// Draft is the editable text of the form. Lists are held as the comma
// separated strings the user types.
type Draft struct {
	ResumeURL         string
	Skills            string
	Interests         string
	ExperienceLevel   string
	PreferredLocation string
	Bio               string
	GithubURL         string
	LinkedinURL       string
	PortfolioURL      string
}

func draftFromProfile(p *domain.Profile) Draft {
	if p == nil {
		return Draft{}
	}
	d := Draft{
		ResumeURL:         deref(p.ResumeURL),
		Skills:            domain.JoinList(p.Skills),
		Interests:         domain.JoinList(p.Interests),
		PreferredLocation: deref(p.PreferredLocation),
		Bio:               deref(p.Bio),
		GithubURL:         deref(p.GithubURL),
		LinkedinURL:       deref(p.LinkedinURL),
		PortfolioURL:      deref(p.PortfolioURL),
	}
	if p.ExperienceLevel != nil {
		d.ExperienceLevel = string(*p.ExperienceLevel)
	}
	return d
}

// fields converts the draft into a write. Blank text becomes unset.
func (d Draft) fields(resumeURL string) domain.Fields {
	f := domain.Fields{
		ResumeURL:         optional(resumeURL),
		Skills:            domain.SplitList(d.Skills),
		Interests:         domain.SplitList(d.Interests),
		PreferredLocation: optional(d.PreferredLocation),
		Bio:               optional(d.Bio),
		GithubURL:         optional(d.GithubURL),
		LinkedinURL:       optional(d.LinkedinURL),
		PortfolioURL:      optional(d.PortfolioURL),
	}
	if lvl := strings.TrimSpace(d.ExperienceLevel); lvl != "" {
		l := domain.ExperienceLevel(lvl)
		f.ExperienceLevel = &l
	}
	return f
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
