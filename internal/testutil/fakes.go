// Package testutil holds in-memory stand-ins for the storage, database and
// session ports, shared by use case, form and handler tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/pkg/apperror"
)

// ProfileRepo mimics the postgres upsert: one row per owner, id kept across
// updates, updated_at stamped by the "server".
type ProfileRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]profile.Profile
	clock   time.Time
	Err     error
	Upserts int
	Gets    int
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{rows: map[uuid.UUID]profile.Profile{}, clock: time.Unix(1700000000, 0).UTC()}
}

func (r *ProfileRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Gets++
	if r.Err != nil {
		return nil, apperror.NewInternal("failed to query profile", r.Err)
	}
	p, ok := r.rows[ownerID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, ownerID uuid.UUID, f profile.Fields) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Upserts++
	if r.Err != nil {
		return nil, apperror.NewInternal("failed to upsert profile", r.Err)
	}
	r.clock = r.clock.Add(time.Second)

	p, ok := r.rows[ownerID]
	if !ok {
		p = profile.Profile{ID: uuid.New(), OwnerID: ownerID}
	}
	p.ResumeURL = f.ResumeURL
	p.Skills = append([]string{}, f.Skills...)
	p.Interests = append([]string{}, f.Interests...)
	p.ExperienceLevel = f.ExperienceLevel
	p.PreferredLocation = f.PreferredLocation
	p.Bio = f.Bio
	p.GithubURL = f.GithubURL
	p.LinkedinURL = f.LinkedinURL
	p.PortfolioURL = f.PortfolioURL
	p.UpdatedAt = r.clock
	r.rows[ownerID] = p

	out := p
	return &out, nil
}

func (r *ProfileRepo) Count(ownerID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[ownerID]; ok {
		return 1
	}
	return 0
}

const BaseURL = "https://files.test/resumes/"

// Uploader keeps blobs in memory and refuses to overwrite a key.
type Uploader struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	Calls   int
	Err     error
}

func NewUploader() *Uploader {
	return &Uploader{Objects: map[string][]byte{}}
}

func (u *Uploader) Upload(_ context.Context, key string, file io.Reader, _ int64, _ string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Calls++
	if u.Err != nil {
		return "", u.Err
	}
	if _, exists := u.Objects[key]; exists {
		return "", service.ErrObjectExists
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	u.Objects[key] = buf.Bytes()
	return BaseURL + key, nil
}

func (u *Uploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.Objects, key)
	u.Deleted = append(u.Deleted, key)
	return nil
}

func (u *Uploader) KeyForURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, BaseURL)
	return key, ok && key != ""
}

// Resolver maps opaque tokens to identities.
type Resolver struct {
	Identities map[string]*identity.Identity
	Calls      int
}

func NewResolver() *Resolver {
	return &Resolver{Identities: map[string]*identity.Identity{}}
}

// Add registers a fresh identity for token and returns it.
func (r *Resolver) Add(token string) *identity.Identity {
	id := &identity.Identity{ID: uuid.New(), TokenID: "jti-" + token, ExpiresAt: time.Now().Add(time.Hour)}
	r.Identities[token] = id
	return id
}

func (r *Resolver) Resolve(_ context.Context, token string) (*identity.Identity, error) {
	r.Calls++
	id, ok := r.Identities[token]
	if !ok {
		return nil, apperror.NewUnauthorized("invalid or expired session, please sign in again", nil)
	}
	return id, nil
}

// SessionStore is an in-memory revocation list.
type SessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Err     error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{revoked: map[string]time.Time{}}
}

func (s *SessionStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *SessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	until, ok := s.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}

var ErrBackend = errors.New("backend unavailable")
