package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// SessionStore is the single source of truth for "who is logged in". It is
// an explicit dependency, not a package global: construct one and hand it to
// whatever needs it.
//
// Every mutation of user/token/isAuthenticated is written through the
// persistence boundary; the loading flag is in-memory only. Overlapping
// Login calls are not deduplicated: the last completion wins, and a Logout
// issued while a Login is pending can be clobbered by that login's eventual
// success.
type SessionStore struct {
	mu      sync.Mutex
	session domain.Session

	auth    ports.AuthService
	persist ports.SessionPersistence
	log     zerolog.Logger
}

// NewSessionStore builds a store and rehydrates the last persisted session.
// A missing or unreadable record yields an empty (unauthenticated) session.
func NewSessionStore(ctx context.Context, auth ports.AuthService, persist ports.SessionPersistence, log zerolog.Logger) *SessionStore {
	s := &SessionStore{auth: auth, persist: persist, log: log}

	restored, err := persist.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session rehydrate failed, starting unauthenticated")
		return s
	}
	restored.IsLoading = false
	if !restored.Valid() {
		log.Warn().Msg("persisted session violates invariant, discarding")
		return s
	}
	s.session = restored
	return s
}

// Current returns a snapshot of the session.
func (s *SessionStore) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// IsAuthenticated reports whether a user and token are both present.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Current().IsAuthenticated
}

// IsLoading reports whether a login is currently in flight.
func (s *SessionStore) IsLoading() bool {
	return s.Current().IsLoading
}

// HasRole reports whether a user is present and its role is in roles. An
// empty roles list returns false; "empty means any authenticated user" is a
// caller convention, deliberately not folded in here.
func (s *SessionStore) HasRole(roles ...domain.Role) bool {
	return s.Current().HasRole(roles...)
}

// Login authenticates against the identity provider. While the call is
// outstanding IsLoading is true and other operations proceed unblocked. On
// failure the session is left unauthenticated, not loading, and the error is
// ErrInvalidCredentials regardless of why the provider refused.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.session.IsLoading = true
	s.mu.Unlock()

	token, user, err := s.auth.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.IsLoading = false

	if err != nil {
		s.session.User = nil
		s.session.Token = ""
		s.session.IsAuthenticated = false
		s.persistLocked(ctx)
		return domain.ErrInvalidCredentials
	}

	s.session.User = user
	s.session.Token = token
	s.session.IsAuthenticated = true
	s.persistLocked(ctx)

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("session established")
	return nil
}

// Logout clears the session synchronously. Calling it when already logged
// out is a no-op.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated && s.session.User == nil {
		return
	}

	s.session.User = nil
	s.session.Token = ""
	s.session.IsAuthenticated = false
	if err := s.persist.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
}

// persistLocked writes the current session through the persistence
// boundary. Callers must hold s.mu. Persistence failures are logged, never
// surfaced: the in-memory session is authoritative for this process.
func (s *SessionStore) persistLocked(ctx context.Context) {
	if err := s.persist.Save(ctx, s.session); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}
