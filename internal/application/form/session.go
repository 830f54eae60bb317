// Package form drives the profile editing form: it loads the caller and
// their profile, keeps a local draft, and turns a submission into an
// optional resume upload followed by a profile save.
package form

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
	domain "github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type State string

const (
	StateIdle            State = "idle"
	StateLoading         State = "loading"
	StateReadyEmpty      State = "ready_empty"
	StateReady           State = "ready"
	StateSaving          State = "saving"
	StateError           State = "error"
	StateUnauthenticated State = "unauthenticated"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

const MessageSaved = "Profile saved successfully."

type Notice struct {
	Kind    NoticeKind
	Message string
}

// View is a snapshot of the session for rendering.
type View struct {
	State      State
	Identity   *identity.Identity
	Baseline   *domain.Profile
	Draft      Draft
	StagedFile string
	Notice     *Notice
}

// Session is one user's form. It is safe for concurrent use; at most one
// submission runs at a time.
type Session struct {
	backend Backend
	token   string
	logger  logger.Logger

	mu       sync.Mutex
	state    State
	identity *identity.Identity
	baseline *domain.Profile
	draft    Draft
	staged   *resume.File
	notice   *Notice
}

func NewSession(backend Backend, token string, log logger.Logger) *Session {
	return &Session{backend: backend, token: token, logger: log, state: StateIdle}
}

// Activate loads the caller and their profile into the draft.
func (s *Session) Activate(ctx context.Context) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	id, p, err := s.backend.LoadCurrent(ctx, s.token)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case errors.Is(err, apperror.ErrUnauthorized):
		s.state = StateUnauthenticated
		s.identity = nil
	case err != nil:
		s.state = StateError
		s.setNotice(NoticeError, apperror.UserMessage(err))
	default:
		s.identity = id
		s.baseline = p
		s.draft = draftFromProfile(p)
		s.state = s.readyState()
	}
}

// Update applies edit to the local draft. Nothing is written until Submit.
func (s *Session) Update(edit func(*Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	edit(&s.draft)
}

// StageFile queues a resume for the next submission and drops the current
// resume link from the draft.
func (s *Session) StageFile(f resume.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = &f
	s.draft.ResumeURL = ""
}

func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isReady()
}

// Submit uploads a staged resume, if any, then saves the draft. It reports
// whether the profile was saved; the outcome is also left in the notice.
// A call made while not ready does nothing and returns false.
func (s *Session) Submit(ctx context.Context) bool {
	s.mu.Lock()
	if !s.isReady() {
		s.mu.Unlock()
		return false
	}
	s.state = StateSaving
	id := s.identity
	draft := s.draft
	staged := s.staged
	s.mu.Unlock()

	resumeURL := draft.ResumeURL
	var uploadedKey string
	if staged != nil {
		if seeker, ok := staged.Content.(io.Seeker); ok {
			// a staged file may be resubmitted after a failed save
			_, _ = seeker.Seek(0, io.SeekStart)
		}
		key, url, err := s.backend.UploadResume(ctx, id.ID, *staged)
		if err != nil {
			s.finish(NoticeError, apperror.UserMessage(err))
			return false
		}
		uploadedKey, resumeURL = key, url
	}

	saved, err := s.backend.SaveProfile(ctx, id, draft.fields(resumeURL))
	if err != nil {
		if uploadedKey != "" {
			if derr := s.backend.DiscardResume(ctx, uploadedKey); derr != nil {
				s.logger.Warn("Failed to discard unsaved resume", zap.String("key", uploadedKey), zap.Error(derr))
			}
		}
		s.finish(NoticeError, apperror.UserMessage(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = saved
	s.draft = draftFromProfile(saved)
	s.staged = nil
	s.state = StateReady
	s.setNotice(NoticeSuccess, MessageSaved)
	return true
}

// SignOut ends the session with the identity provider. Form state is left
// as is.
func (s *Session) SignOut(ctx context.Context) bool {
	if err := s.backend.SignOut(ctx, s.token); err != nil {
		s.mu.Lock()
		s.setNotice(NoticeError, apperror.UserMessage(err))
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		State:    s.state,
		Identity: s.identity,
		Baseline: s.baseline,
		Draft:    s.draft,
	}
	if s.staged != nil {
		v.StagedFile = s.staged.Name
	}
	if s.notice != nil {
		n := *s.notice
		v.Notice = &n
	}
	return v
}

func (s *Session) finish(kind NoticeKind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.readyState()
	s.setNotice(kind, msg)
}

func (s *Session) readyState() State {
	if s.baseline == nil {
		return StateReadyEmpty
	}
	return StateReady
}

func (s *Session) isReady() bool {
	return s.state == StateReady || s.state == StateReadyEmpty
}

// setNotice replaces whatever notice was showing.
func (s *Session) setNotice(kind NoticeKind, msg string) {
	s.notice = &Notice{Kind: kind, Message: msg}
}
