package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"todohub/internal/modules/auth/domain"
	"todohub/internal/modules/auth/dto"
	authin "todohub/internal/modules/auth/port/in"
	authout "todohub/internal/modules/auth/port/out"
	"todohub/internal/modules/auth/service"
	apperrors "todohub/internal/platform/errors"
)

// Store is the session state store. It is the single writer of the session
// slice; every action settles the status it set to pending, and remote
// rejections are captured into LastError rather than thrown past the action
// boundary. Actions are not serialized against each other (callers guard
// against redundant dispatch); the mutex only protects the state words.
type Store struct {
	validator service.Validator
	api       authout.API

	mu        sync.RWMutex
	identity  *domain.User
	status    domain.Status
	lastError string
}

func NewStore(validator service.Validator, api authout.API) authin.Usecase {
	return &Store{validator: validator, api: api, status: domain.StatusUnauthenticated}
}

func (s *Store) Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error) {
	if err := s.validator.ValidateLogin(input.Email, input.Password); err != nil {
		return s.output(), err
	}
	s.begin()
	user, err := s.api.Login(ctx, input.Email, input.Password)
	if err != nil {
		s.reject(err)
		return s.output(), err
	}
	s.establish(user)
	return s.output(), nil
}

func (s *Store) Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error) {
	if err := s.validator.ValidateRegistration(input.Username, input.Email, input.Password); err != nil {
		return s.output(), err
	}
	s.begin()
	user, err := s.api.Register(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		s.reject(err)
		return s.output(), err
	}
	s.establish(user)
	return s.output(), nil
}

func (s *Store) LoginWithGoogle(ctx context.Context, input dto.GoogleLoginInput) (dto.SessionOutput, error) {
	if err := s.validator.ValidateGoogleToken(input.IDToken); err != nil {
		return s.output(), err
	}
	s.begin()
	user, err := s.api.GoogleLogin(ctx, input.IDToken)
	if err != nil {
		s.reject(err)
		return s.output(), err
	}
	s.establish(user)
	return s.output(), nil
}

// VerifyCurrentIdentity resolves an unknown session against the backend. A 401
// settles to a clean unauthenticated state: absence of a session is not an
// error the user should see.
func (s *Store) VerifyCurrentIdentity(ctx context.Context) (dto.SessionOutput, error) {
	s.begin()
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.reset()
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return s.output(), nil
		}
		return s.output(), err
	}
	s.establish(user)
	return s.output(), nil
}

// Logout invalidates the remote session, then resets local state regardless of
// the outcome. A network blip must never leave the user stuck logged in.
func (s *Store) Logout(ctx context.Context) error {
	s.begin()
	if err := s.api.Logout(ctx); err != nil {
		slog.Warn("remote logout failed, resetting local session anyway", "error", err)
	}
	s.reset()
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL})
	}
	return out, nil
}

func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := domain.Session{Status: s.status, LastError: s.lastError}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	return snap
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
	if s.status == domain.StatusFailed {
		s.status = domain.StatusUnauthenticated
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = domain.StatusPending
	s.lastError = ""
}

func (s *Store) establish(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &user
	s.status = domain.StatusAuthenticated
	s.lastError = ""
}

func (s *Store) reject(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.status = domain.StatusFailed
	s.lastError = err.Error()
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.status = domain.StatusUnauthenticated
	s.lastError = ""
}

func (s *Store) output() dto.SessionOutput {
	snap := s.Snapshot()
	out := dto.SessionOutput{Status: string(snap.Status), LastError: snap.LastError}
	if snap.Identity != nil {
		out.UserID = snap.Identity.ID
		out.Name = snap.Identity.Name
		out.Email = snap.Identity.Email
		out.AvatarURL = snap.Identity.AvatarURL
	}
	return out
}
